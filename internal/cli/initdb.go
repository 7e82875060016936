package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/repository"
)

// NewInitDBCommand creates the init-db command, which creates the tables and
// seeds the admin account without starting the server.  Running it again is
// harmless.
func NewInitDBCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create tables and seed the admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(rootOpts.EnvFile)
			if err != nil {
				return err
			}
			db, dialect, err := database.OpenConfig(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.CreateSchema(cmd.Context(), db, dialect, seedFrom(cfg)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", dialect.Name)
			return nil
		},
	}
}
