// Package cli wires configuration, storage and transport into the server's
// cobra commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command.  Without a subcommand it runs the
// HTTP server, so the bare binary behaves like `server serve`.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Blood donor network API",
		Long:          "Registry of volunteer blood donors with an admin-gated delete.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional dotenv file read before the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewInitDBCommand(opts))
	cmd.AddCommand(NewConsumeEventsCommand(opts))

	return cmd
}
