package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/repository"
	"github.com/iliyamo/blood-donor-network/internal/router"
	"github.com/iliyamo/blood-donor-network/internal/service"
	"github.com/iliyamo/blood-donor-network/internal/session"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFile(opts.EnvFile)
	if err != nil {
		return err
	}

	db, dialect, err := database.OpenConfig(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.CreateSchema(ctx, db, dialect, seedFrom(cfg)); err != nil {
		return err
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; listing cache disabled")
	} else {
		defer rdb.Close()
	}

	e := router.New(router.Deps{
		DB:          db,
		Dialect:     dialect,
		Sessions:    sessionManager(cfg, rdb),
		Cookies:     session.NewCookieCodec(cfg.SessionCookieName, cfg.SessionSecret, cfg.IsProd()),
		Events:      eventPublisher(cfg),
		Redis:       rdb,
		Cache:       config.LoadCacheConfig(),
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, dialect.Name)

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func seedFrom(cfg config.Config) repository.SeedAdmin {
	return repository.SeedAdmin{Username: cfg.AdminSeedUsername, Password: cfg.AdminSeedPassword}
}

// sessionManager honours SESSION_BACKEND, falling back to the in-process
// store when Redis was requested but is not reachable.
func sessionManager(cfg config.Config, rdb *redis.Client) session.Manager {
	if cfg.SessionBackend == "redis" {
		if rdb != nil {
			return session.NewRedisManager(rdb, cfg.SessionTTL, "sess")
		}
		log.Printf("SESSION_BACKEND=redis but redis is unavailable; using memory sessions")
	}
	return session.NewMemoryManager(cfg.SessionTTL)
}

func eventPublisher(cfg config.Config) service.EventPublisher {
	if !cfg.EventsEnabled {
		return service.NoopPublisher{}
	}
	return service.NewAMQPPublisher(cfg.RabbitURL)
}
