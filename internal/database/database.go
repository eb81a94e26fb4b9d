// Package database owns the PostgreSQL connection pool. It opens the pool,
// verifies connectivity with a round-trip query, applies the embedded schema
// script once per process start, and drains the pool on shutdown. The rest
// of the application treats the returned handle as an opaque query executor.
package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.

	"github.com/nvasquez/libris/internal/config"
)

// schemaSQL is the idempotent schema-initialization script. It creates the
// books table, its indexes, and the count_books_by_year aggregation
// function, and is safe to re-run on every startup.
//
//go:embed migrations/init.sql
var schemaSQL string

// startupTimeout bounds the connectivity check and schema application.
const startupTimeout = 5 * time.Second

// DB wraps the sqlx connection pool together with a structured logger.
type DB struct {
	*sqlx.DB
	logger *slog.Logger
}

// Open establishes the connection pool, applies the pool sizing knobs from
// cfg, verifies the database is reachable, and runs the schema script.
// Any failure here is fatal to startup: the caller should not continue in
// a partially degraded mode.
func Open(cfg config.Database, logger *slog.Logger) (*DB, error) {
	// sqlx.Open only validates the DSN format; it does not connect yet.
	pool, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("verify database connectivity: %w", err)
	}
	logger.Info("database connection pool established", "host", cfg.Host, "database", cfg.Name)

	if _, err := pool.ExecContext(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema script: %w", err)
	}
	logger.Info("database schema applied")

	return &DB{DB: pool, logger: logger}, nil
}

// Close releases all pooled connections. Call this after the HTTP server
// has finished draining in-flight requests.
func (db *DB) Close() error {
	db.logger.Info("closing database connection pool")
	return db.DB.Close()
}
