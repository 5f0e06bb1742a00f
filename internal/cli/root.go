package cli

import (
	"github.com/spf13/cobra"
)

var addr string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formhive",
		Short: "Forms and quiz collection platform",
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.AddCommand(newServeCmd(&addr))
	cmd.AddCommand(newCreateAdminCmd())
	return cmd
}
