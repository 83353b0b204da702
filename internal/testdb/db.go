package testdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/config"
	"github.com/phrazzld/leitner/internal/platform/database"
)

// EnvDatabaseURL names the variable selecting a PostgreSQL test database.
const EnvDatabaseURL = "LEITNER_TEST_DB_URL"

// TestTimeout bounds setup operations.
const TestTimeout = 10 * time.Second

// Config returns the database configuration tests should use.
func Config() config.DatabaseConfig {
	if url := os.Getenv(EnvDatabaseURL); url != "" {
		return config.DatabaseConfig{Driver: "postgres", URL: url, MaxOpenConns: 4}
	}
	return config.DatabaseConfig{Driver: "sqlite", URL: ":memory:", MaxOpenConns: 1}
}

// IsPostgres reports whether tests run against PostgreSQL.
func IsPostgres() bool {
	return os.Getenv(EnvDatabaseURL) != ""
}

// Open returns a freshly migrated database that is closed when the test ends.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(ctx, Config(), quiet)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	if IsPostgres() {
		if err := database.Migrate(ctx, db, "reset", quiet); err != nil {
			t.Fatalf("Failed to reset test database: %v", err)
		}
	}
	if err := database.Migrate(ctx, db, "up", quiet); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so changes
// made by fn never persist.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	tx, err := db.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			t.Logf("Warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
