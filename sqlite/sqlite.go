// Package sqlite provides SQLite-based storage implementations for cardeals services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds on lock contention instead of failing immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases. Not supported for in-memory.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS dealers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			make TEXT NOT NULL DEFAULT '',
			specials_url TEXT NOT NULL,
			platform TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			verified INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS offers (
			id TEXT PRIMARY KEY,
			dealer_id TEXT NOT NULL REFERENCES dealers(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			make TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL,
			trim TEXT NOT NULL DEFAULT '',
			offer_type TEXT NOT NULL,
			monthly_payment REAL,
			down_payment REAL,
			term_months INTEGER,
			annual_mileage INTEGER,
			apr REAL,
			msrp REAL,
			selling_price REAL,
			offer_end_date TEXT NOT NULL DEFAULT '',
			disclaimer TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			confidence REAL NOT NULL DEFAULT 0,
			extraction_method TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			verified_by_human INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			dealer_slug TEXT NOT NULL,
			status TEXT NOT NULL,
			bytes_fetched INTEGER NOT NULL DEFAULT 0,
			extracted INTEGER NOT NULL DEFAULT 0,
			valid INTEGER NOT NULL DEFAULT 0,
			saved INTEGER NOT NULL DEFAULT 0,
			content_hash TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_offers_dealer_id ON offers(dealer_id);
		CREATE INDEX IF NOT EXISTS idx_offers_active ON offers(active);
		CREATE INDEX IF NOT EXISTS idx_offers_model ON offers(model);
		CREATE INDEX IF NOT EXISTS idx_runs_dealer_slug ON runs(dealer_slug);
	`

	_, err := db.db.Exec(schema)
	return err
}
