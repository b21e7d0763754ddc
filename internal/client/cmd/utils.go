package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newUtilsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "utils", Short: "Server utilities"}
	cmd.AddCommand(&cobra.Command{
		Use:   "test-email <address>",
		Short: "Ask the server to send a test email (superuser)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			return a.client.Utils.TestEmail(ctx, args[0])
		}),
	})
	return cmd
}
