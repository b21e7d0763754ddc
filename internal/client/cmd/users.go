package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ljxowen/movie-recommender/internal/client/api"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type listFlags struct{ skip, limit int }

func addListFlags(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().IntVar(&f.skip, "skip", 0, "records to skip")
	cmd.Flags().IntVar(&f.limit, "limit", api.DefaultLimit, "maximum records to return")
}

// params sends --limit only when given so the server default applies otherwise.
func (f *listFlags) params(cmd *cobra.Command) api.ListParams {
	p := api.ListParams{Skip: f.skip}
	if cmd.Flags().Changed("limit") {
		p.Limit = &f.limit
	}
	return p
}

// optString returns a pointer to v only when the flag was given.
func optString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func optBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage user accounts"}

	var list listFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users (superuser)",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			return a.client.Users.List(ctx, list.params(cmd))
		}),
	}
	addListFlags(listCmd, &list)
	cmd.AddCommand(listCmd)

	var (
		email, password, fullName string
		superuser, inactive       bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user (superuser)",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			pass, err := a.readSecret(cmd, "Password: ", password)
			if err != nil {
				return nil, err
			}
			return a.client.Users.Create(ctx, models.UserCreate{
				Email:       email,
				IsActive:    optBool(cmd, "inactive", !inactive),
				IsSuperuser: optBool(cmd, "superuser", superuser),
				FullName:    optString(cmd, "full-name", fullName),
				Password:    pass,
			})
		}),
	}
	create.Flags().StringVar(&email, "email", "", "account email")
	create.Flags().StringVar(&password, "password", "", "password (prompted when empty)")
	create.Flags().StringVar(&fullName, "full-name", "", "display name")
	create.Flags().BoolVar(&superuser, "superuser", false, "grant superuser")
	create.Flags().BoolVar(&inactive, "inactive", false, "create the account disabled")
	_ = create.MarkFlagRequired("email")
	cmd.AddCommand(create)

	var regEmail, regPassword, regName string
	signup := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account without logging in",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			pass, err := a.readSecret(cmd, "Password: ", regPassword)
			if err != nil {
				return nil, err
			}
			return a.client.Users.Register(ctx, models.UserRegister{
				Email:    regEmail,
				Password: pass,
				FullName: optString(cmd, "full-name", regName),
			})
		}),
	}
	signup.Flags().StringVar(&regEmail, "email", "", "account email")
	signup.Flags().StringVar(&regPassword, "password", "", "password (prompted when empty)")
	signup.Flags().StringVar(&regName, "full-name", "", "display name")
	_ = signup.MarkFlagRequired("email")
	cmd.AddCommand(signup)

	cmd.AddCommand(&cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			return a.client.Users.Me(ctx)
		}),
	})

	var meEmail, meName string
	updateMe := &cobra.Command{
		Use:   "update-me",
		Short: "Change the current user's email or name",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			return a.client.Users.UpdateMe(ctx, models.UserUpdateMe{
				Email:    optString(cmd, "email", meEmail),
				FullName: optString(cmd, "full-name", meName),
			})
		}),
	}
	updateMe.Flags().StringVar(&meEmail, "email", "", "new email")
	updateMe.Flags().StringVar(&meName, "full-name", "", "new display name")
	cmd.AddCommand(updateMe)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-me",
		Short: "Delete the current user",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			return a.client.Users.DeleteMe(ctx)
		}),
	})

	var current, next string
	passwd := &cobra.Command{
		Use:   "password",
		Short: "Change the current user's password",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			cur, err := a.readSecret(cmd, "Current password: ", current)
			if err != nil {
				return nil, err
			}
			nxt, err := a.readSecret(cmd, "New password: ", next)
			if err != nil {
				return nil, err
			}
			return a.client.Users.UpdatePasswordMe(ctx, models.UpdatePassword{CurrentPassword: cur, NewPassword: nxt})
		}),
	}
	passwd.Flags().StringVar(&current, "current", "", "current password (prompted when empty)")
	passwd.Flags().StringVar(&next, "new", "", "new password (prompted when empty)")
	cmd.AddCommand(passwd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.client.Users.Get(ctx, id)
		}),
	})

	var (
		updEmail, updName, updPassword string
		updActive, updSuper            bool
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user (superuser); only given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.client.Users.Update(ctx, id, models.UserUpdate{
				Email:       optString(cmd, "email", updEmail),
				FullName:    optString(cmd, "full-name", updName),
				Password:    optString(cmd, "password", updPassword),
				IsActive:    optBool(cmd, "active", updActive),
				IsSuperuser: optBool(cmd, "superuser", updSuper),
			})
		}),
	}
	update.Flags().StringVar(&updEmail, "email", "", "new email")
	update.Flags().StringVar(&updName, "full-name", "", "new display name")
	update.Flags().StringVar(&updPassword, "password", "", "new password")
	update.Flags().BoolVar(&updActive, "active", true, "enable or disable the account")
	update.Flags().BoolVar(&updSuper, "superuser", false, "grant or revoke superuser")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user (superuser)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.client.Users.Delete(ctx, id)
		}),
	})

	return cmd
}
