package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/memos-api/internal/config"
	"github.com/phrazzld/memos-api/internal/service"
	"github.com/phrazzld/memos-api/internal/store"
)

// application holds the shared dependencies of a running server and
// releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the in-memory store is in use.
	db *sql.DB

	memoStore   store.MemoStore
	memoService service.MemoService
}

// newApplication wires the store and service layers from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	memoStore, db, err := newMemoStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		memoStore: memoStore,
	}

	app.memoService, err = service.NewMemoService(
		memoStore,
		logger,
		service.WithMaxListLimit(cfg.API.MaxLimit),
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create memo service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// runServer builds the application and serves HTTP until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.Run(ctx)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
