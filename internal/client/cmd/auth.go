package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ljxowen/movie-recommender/internal/client/session"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type authStatus struct {
	LoggedIn  bool       `json:"logged_in"`
	TokenFile string     `json:"token_file"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired,omitempty"`
}

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}

	var username, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			user := username
			if user == "" {
				var err error
				if user, err = a.readLine(cmd, "Email: "); err != nil {
					return nil, err
				}
			}
			pass, err := a.readSecret(cmd, "Password: ", password)
			if err != nil {
				return nil, err
			}
			if _, err := a.client.SignIn(ctx, user, pass); err != nil {
				return nil, err
			}
			return message("Logged in as " + user), nil
		}),
	}
	login.Flags().StringVarP(&username, "username", "u", "", "account email")
	login.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	cmd.AddCommand(login)

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: a.run(func(context.Context, *cobra.Command, []string) (any, error) {
			if err := a.client.SignOut(); err != nil {
				return nil, err
			}
			return message("Logged out"), nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored token's subject and expiry",
		RunE: a.run(func(context.Context, *cobra.Command, []string) (any, error) {
			st := authStatus{TokenFile: a.tokens.Path()}
			tok, ok := a.tokens.Get()
			if !ok {
				return st, nil
			}
			st.LoggedIn = true
			claims, err := session.Inspect(tok)
			if err != nil {
				a.logger.Warn().Err(err).Msg("stored token is not a readable JWT")
				return st, nil
			}
			st.Subject = claims.Subject
			if !claims.ExpiresAt.IsZero() {
				exp := claims.ExpiresAt
				st.ExpiresAt = &exp
				st.Expired = claims.Expired(time.Now())
			}
			return st, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test-token",
		Short: "Check the stored token against the server",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			return a.client.Login.TestToken(ctx)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recover <email>",
		Short: "Request a password recovery email",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			return a.client.Login.RecoverPassword(ctx, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recover-html <email>",
		Short: "Print the password recovery email body (superuser)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			return a.client.Login.RecoverPasswordHTML(ctx, args[0])
		}),
	})

	var resetToken, newPassword string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a recovery token",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			pass, err := a.readSecret(cmd, "New password: ", newPassword)
			if err != nil {
				return nil, err
			}
			return a.client.Login.ResetPassword(ctx, models.NewPassword{Token: resetToken, NewPassword: pass})
		}),
	}
	reset.Flags().StringVar(&resetToken, "token", "", "recovery token")
	reset.Flags().StringVar(&newPassword, "new-password", "", "new password (prompted when empty)")
	_ = reset.MarkFlagRequired("token")
	cmd.AddCommand(reset)

	return cmd
}
