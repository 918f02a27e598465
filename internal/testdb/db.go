package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/memos-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/memos-api/internal/redact"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Environment variables consulted for the test database, in order.
const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvMemosTestDBURL    = "MEMOS_TEST_DB_URL"
	EnvMemosDatabaseURL  = "MEMOS_DATABASE_URL"
	skipMessageFormatter = "%s not set - skipping integration test"
)

var urlEnvVars = []string{EnvDatabaseURL, EnvMemosTestDBURL, EnvMemosDatabaseURL}

// migrateOnce guards goose's package-level state; migrations run once per
// test binary.
var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" when none is set.
func GetTestDatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT returns a database connection for testing with the schema
// migrated. It skips the test when no database URL is configured and closes
// the connection when the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf(skipMessageFormatter, strings.Join(urlEnvVars, ", "))
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection to %s", maskDatabaseURL(dbURL))

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed for %s", maskDatabaseURL(dbURL))

	require.NoError(t, ApplyMigrations(db), "Failed to run migrations")

	return db
}

// ApplyMigrations brings the schema up to date using the embedded migrations.
func ApplyMigrations(db *sql.DB) error {
	migrateOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		goose.SetTableName(migrations.TableName)
		goose.SetLogger(goose.NopLogger())

		if err := goose.SetDialect("postgres"); err != nil {
			migrateErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}
		if err := goose.Up(db, "."); err != nil {
			migrateErr = fmt.Errorf("failed to run migrations: %w", err)
		}
	})
	return migrateErr
}

// ResetMemos deletes every memo so a test starts from an empty table.
func ResetMemos(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE memos")
	require.NoError(t, err, "Failed to truncate memos")
}

// maskDatabaseURL hides credentials in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	return redact.String(dbURL)
}
