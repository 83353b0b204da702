package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Dialect identifies the SQL flavour behind a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// database/sql driver names registered by the blank imports above.
const (
	pgxDriver    = "pgx"
	sqliteDriver = "sqlite"
)

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 5 * time.Second

// DriverName returns the database/sql driver registered for d.
func (d Dialect) DriverName() (string, error) {
	switch d {
	case Postgres:
		return pgxDriver, nil
	case SQLite:
		return sqliteDriver, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", string(d))
}

// DialectOf reports the dialect of an open connection or transaction,
// based on its driver name.
func DialectOf(db interface{ DriverName() string }) Dialect {
	if db.DriverName() == pgxDriver {
		return Postgres
	}
	return SQLite
}

// Open connects to the configured database and verifies the connection.
//
// SQLite allows a single writer, so its pool is capped at one connection and
// foreign key enforcement is switched on for it. With one connection an
// in-memory database also lives as long as the pool.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sqlx.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	dialect := Dialect(cfg.Driver)
	driverName, err := dialect.DriverName()
	if err != nil {
		return nil, err
	}

	dsn := cfg.URL
	maxOpen := cfg.MaxOpenConns
	if dialect == SQLite {
		dsn = withForeignKeys(dsn)
		maxOpen = 1
	}
	if maxOpen < 1 {
		maxOpen = 1
	}

	log.Info("opening database connection",
		slog.String("driver", string(dialect)),
		slog.String("url", MaskURL(cfg.URL)))

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	if dialect == Postgres {
		db.SetMaxIdleConns(min(maxOpen, 5))
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.String("driver", string(dialect)),
		slog.Int("max_open_conns", maxOpen))
	return db, nil
}

// withForeignKeys adds the foreign_keys pragma to a SQLite DSN.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// MaskURL hides the password of a connection URL for logging. Strings that
// are not URLs with user info are returned unchanged.
func MaskURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	return parsed.Redacted()
}
