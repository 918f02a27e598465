package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/memos-api/internal/config"
	"github.com/phrazzld/memos-api/internal/platform/memory"
	"github.com/phrazzld/memos-api/internal/platform/postgres"
	"github.com/phrazzld/memos-api/internal/redact"
	"github.com/phrazzld/memos-api/internal/store"
)

// errNoDatabaseURL is returned by commands that need PostgreSQL when no URL
// is configured.
var errNoDatabaseURL = errors.New("database.url is not configured")

const connMaxLifetime = 5 * time.Minute

// openDatabase opens a pgx connection pool sized from cfg and verifies it
// with a ping bounded by the connect timeout.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, errNoDatabaseURL
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(max(1, cfg.MaxConnections/2))
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database after ping failure",
				slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.String("url", redact.String(cfg.URL)),
		slog.Int("max_connections", cfg.MaxConnections))
	return db, nil
}

// newMemoStore selects the store backend. With no database URL memos live
// in process memory and the returned *sql.DB is nil.
func newMemoStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (store.MemoStore, *sql.DB, error) {
	if cfg.URL == "" {
		log.Warn("database.url is empty, using the in-memory store; memos will not survive a restart")
		return memory.NewMemoStore(log), nil, nil
	}

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewPostgresMemoStore(db, log), db, nil
}
