// Package main implements the entry point for the Leitner practice server,
// which schedules flashcards with the Leitner box system and serves the
// practice workflow over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/leitner/internal/config"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "leitner: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration, prepares the database and serves
// until ctx is canceled. With --migrate it runs that migration command and
// returns instead of serving.
func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("leitner-server", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	migrateCmd := flags.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("database_url", database.MaskURL(cfg.Database.URL)),
		slog.Int("max_bucket", cfg.Scheduler.MaxBucket))

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if *migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return database.Migrate(ctx, db, *migrateCmd, log)
	}

	if err := database.Migrate(ctx, db, "up", log); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
