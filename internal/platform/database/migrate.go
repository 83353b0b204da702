package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose records applied versions in.
const MigrationTableName = "schema_migrations"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its dialect, table name and filesystem in package globals.
var gooseMu sync.Mutex

// Migration commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "reset", "status", "version"}

// ErrUnknownMigrationCommand is returned for commands outside MigrationCommands.
var ErrUnknownMigrationCommand = errors.New("unknown migration command")

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. It does NOT exit; the failure is returned to
// the caller by goose.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func gooseDialect(d Dialect) (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported database driver %q", string(d))
}

// Migrate runs a goose command against db using the embedded migrations for
// its dialect.
func Migrate(ctx context.Context, db *sqlx.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	dialect := DialectOf(db)
	migrationLogger := log.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", string(dialect)),
	)

	gooseName, err := gooseDialect(dialect)
	if err != nil {
		return err
	}
	dir := path.Join("migrations", string(dialect))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{log: migrationLogger})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect(gooseName); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	migrationLogger.Info("starting migration command")

	switch command {
	case "up":
		err = goose.UpContext(ctx, db.DB, dir)
	case "down":
		err = goose.DownContext(ctx, db.DB, dir)
	case "reset":
		err = goose.ResetContext(ctx, db.DB, dir)
	case "status":
		err = goose.StatusContext(ctx, db.DB, dir)
	case "version":
		err = goose.VersionContext(ctx, db.DB, dir)
	default:
		return fmt.Errorf("%w: %s (expected one of %s)",
			ErrUnknownMigrationCommand, command, strings.Join(MigrationCommands, ", "))
	}

	if err != nil {
		migrationLogger.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
