package cli

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/queue"
)

// NewConsumeEventsCommand creates the consume-events command.  It runs the
// donor event consumer until interrupted.
func NewConsumeEventsCommand(rootOpts *RootOptions) *cobra.Command {
	var logDir string

	cmd := &cobra.Command{
		Use:   "consume-events",
		Short: "Append donor events from RabbitMQ to a log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(rootOpts.EnvFile)
			if err != nil {
				return err
			}
			log.Printf("consuming %s into %s/donors.log", queue.DonorEventsQueue, logDir)
			err = queue.StartDonorEventConsumer(cmd.Context(), cfg.RabbitURL, logDir)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "directory for donors.log")
	return cmd
}
