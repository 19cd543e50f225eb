// Package database provides the sqlite storage driver: an in-memory
// database whose schema is managed by embedded migrations, and a key/value
// table that backs the chat stores.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/keeperbot/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// DSN returns the connection string of a named in-memory database. The
// shared cache keeps the database alive for as long as one connection is
// open, and it is gone when the process exits.
func DSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(name))
}

// NewDB opens the in-memory database called name and applies migrations.
func NewDB(name string) (*sqlx.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}

	db, err := sqlx.Connect("sqlite", DSN(name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection serializes writers and, with no lifetime limit, keeps
	// the in-memory database from being dropped between queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ApplyMigrations(db.DB, name); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database after migration failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Database connected and migrations applied successfully", "name", name)
	return db, nil
}

// CloseDB closes the database connection pool, discarding its contents.
func CloseDB(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("Error closing database connection", "error", err)
	} else {
		slog.Info("Database connection closed successfully.")
	}
}

// ApplyMigrations runs database migrations using embedded files.
func ApplyMigrations(db *sql.DB, dbName string) error {
	if db == nil {
		return errors.New("database connection is nil, cannot apply migrations")
	}

	slog.Info("Applying database migrations...", "database_name", dbName)

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create embed source driver instance: %w", err)
	}

	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("failed to create sqlite database driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("No database migrations to apply.")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Database migrations applied successfully.")
	return nil
}

// RunMaintenance lets sqlite refresh its query planner statistics.
func RunMaintenance(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}
	return nil
}

// BucketSizes returns the number of stored entries per bucket.
func BucketSizes(ctx context.Context, db *sqlx.DB) (map[string]int, error) {
	var rows []struct {
		Bucket string `db:"bucket"`
		Count  int    `db:"n"`
	}
	if err := db.SelectContext(ctx, &rows, "SELECT bucket, COUNT(*) AS n FROM entries GROUP BY bucket;"); err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Bucket] = r.Count
	}
	return out, nil
}
