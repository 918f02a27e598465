package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/phrazzld/memos-api/internal/config"
	"github.com/phrazzld/memos-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// migrationsDir is the directory inside migrations.FS holding the SQL files.
const migrationsDir = "."

// migrationCommands lists the goose commands accepted by "migrate".
var migrationCommands = []string{"up", "down", "status", "version", "reset"}

// errUnknownMigrationCommand is returned for a command outside migrationCommands.
var errUnknownMigrationCommand = errors.New("unknown migration command")

// validateMigrationCommand rejects commands that are not in migrationCommands.
func validateMigrationCommand(command string) error {
	if !slices.Contains(migrationCommands, command) {
		return fmt.Errorf("%w %q: expected one of %s",
			errUnknownMigrationCommand, command, strings.Join(migrationCommands, ", "))
	}
	return nil
}

// configureGoose points goose at the embedded migrations and routes its
// output through log.
func configureGoose(log *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	goose.SetLogger(&slogGooseLogger{logger: log})
	return goose.SetDialect("postgres")
}

// runMigrations executes a goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, log *slog.Logger, command string) error {
	if err := validateMigrationCommand(command); err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("cannot run migrations: %w", errNoDatabaseURL)
	}

	log = log.With(slog.String("component", "migrations"), slog.String("command", command))

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := configureGoose(log); err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}

	start := time.Now()
	if err := runGooseCommand(ctx, db, command); err != nil {
		log.Error("migration failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration completed", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// runGooseCommand dispatches a validated command to goose.
func runGooseCommand(ctx context.Context, db *sql.DB, command string) error {
	switch command {
	case "up":
		return goose.UpContext(ctx, db, migrationsDir)
	case "down":
		return goose.DownContext(ctx, db, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, db, migrationsDir)
	case "version":
		return goose.VersionContext(ctx, db, migrationsDir)
	case "reset":
		return goose.ResetContext(ctx, db, migrationsDir)
	default:
		return validateMigrationCommand(command)
	}
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress output at info level.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. It does not exit; the failure is returned
// to the caller by goose.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
