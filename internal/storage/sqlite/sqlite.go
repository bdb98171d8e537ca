// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/ottshare/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var (
	_ storage.Store   = (*SQLiteStore)(nil)
	_ storage.MatchTx = (*queries)(nil)
)

// busyTimeoutMillis bounds how long a writer waits for another writer's
// transaction before failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

// dbtx is the subset of *sql.DB and *sql.Tx used by queries.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every statement the store runs. It is bound either to the
// database or to an open transaction.
type queries struct {
	db dbtx
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	*queries
	conn *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
//
// Transactions are opened with BEGIN IMMEDIATE so that a group formation
// holds the write lock from its first read; two formations can never read
// the same waiting entries.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{queries: &queries{db: db}, conn: db}, nil
}

// dsn builds the connection string. Pragmas are set per connection by the
// driver, so every pooled connection gets them.
func dsn(dbPath string) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMillis),
		"_pragma=journal_mode(WAL)",
		"_txlock=immediate",
	}
	return dbPath + "?" + strings.Join(params, "&")
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// RunInTx runs fn in a single write transaction, rolling back on error or panic.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(tx storage.MatchTx) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&queries{db: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// placeholders returns "?, ?, ?" with n placeholders.
// Used for building IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nullable maps zero values to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
