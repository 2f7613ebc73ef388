package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/ignite/internal/app"
	"github.com/okian/ignite/internal/config"
	"github.com/okian/ignite/internal/server"
	"github.com/okian/ignite/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "service failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run loads configuration, trains the models and serves the read API until
// ctx is cancelled.
func run(ctx context.Context) error {
	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(log.Named("service")),
	)
	if _, err := svc.Initialize(ctx); err != nil {
		return err
	}

	return server.Run(ctx, server.New(ctx, cfg, svc))
}
