package main // Entry point package

import (
	"context"   // root context cancelled by signals
	"log"       // fatal startup errors
	"os"        // os.Interrupt
	"os/signal" // signal-aware context
	"syscall"   // SIGTERM sent by container runtimes

	"github.com/iliyamo/blood-donor-network/internal/cli" // cobra commands (serve, init-db, consume-events)
)

func main() {
	// Cancel the root context on Ctrl+C or SIGTERM; serve shuts down gracefully on it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a subcommand the root runs the HTTP server.
	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()         // deferred calls do not run after log.Fatal
		log.Fatal(err) // Log and exit with a non-zero status
	}
}
