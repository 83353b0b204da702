package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/config"
	"github.com/phrazzld/leitner/internal/domain/leitner"
	"github.com/phrazzld/leitner/internal/platform/daycron"
	"github.com/phrazzld/leitner/internal/platform/sqlstore"
	"github.com/phrazzld/leitner/internal/service"
	"github.com/phrazzld/leitner/internal/service/practice"
	"github.com/phrazzld/leitner/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	cardStore    store.CardStore
	bucketStore  store.BucketStore
	historyStore store.HistoryStore
	stateStore   store.StateStore

	cardService     service.CardService
	practiceService practice.Service

	// dayCron is nil unless scheduler.advance_cron is set.
	dayCron *daycron.Scheduler
}

// newApplication wires stores, services and the optional day scheduler
// around an open, migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.cardStore = sqlstore.NewCardStore(db, logger)
	app.bucketStore = sqlstore.NewBucketStore(db, logger)
	app.historyStore = sqlstore.NewHistoryStore(db, logger)
	app.stateStore = sqlstore.NewStateStore(db, logger)

	scheduler, err := leitner.NewSchedulerWithParams(
		leitner.NewParams(leitner.ParamsConfig{MaxBucket: cfg.Scheduler.MaxBucket}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	app.cardService, err = service.NewCardService(db, app.cardStore, app.bucketStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.practiceService, err = practice.NewService(db, practice.Stores{
		Cards:   app.cardStore,
		Buckets: app.bucketStore,
		History: app.historyStore,
		State:   app.stateStore,
	}, scheduler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice service: %w", err)
	}

	if cfg.Scheduler.AdvanceCron != "" {
		app.dayCron, err = daycron.New(cfg.Scheduler.AdvanceCron, app.practiceService, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create day scheduler: %w", err)
		}
	}

	logger.Info("application initialized",
		slog.Int("max_bucket", scheduler.Params().MaxBucket),
		slog.Bool("auto_advance", app.dayCron != nil))
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	if app.dayCron != nil {
		app.dayCron.Start()
		app.logger.Info("automatic day advance enabled",
			slog.Time("next_run", app.dayCron.NextRun()))
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.dayCron != nil {
		app.dayCron.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
