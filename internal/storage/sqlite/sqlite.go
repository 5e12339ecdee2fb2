// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/kindnest/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite in WAL mode.
// Writes go through a single connection so Update calls are serialized in
// the order SQLite grants the write lock; reads use a separate pool.
type SQLiteStore struct {
	writer *sql.DB
	reader *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	pragmas := "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	// Open database with pure Go driver
	writer, err := sql.Open("sqlite", "file:"+dbPath+"?"+pragmas+"&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	writer.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(writer); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	reader, err := sql.Open("sqlite", "file:"+dbPath+"?"+pragmas)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to open read pool: %w", err)
	}

	return &SQLiteStore{writer: writer, reader: reader}, nil
}

// Close closes both connection pools.
func (s *SQLiteStore) Close() error {
	return errors.Join(s.reader.Close(), s.writer.Close())
}

// View runs fn in a read-only transaction.
func (s *SQLiteStore) View(ctx context.Context, fn func(tx storage.ReadTx) error) error {
	tx, err := s.reader.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&sqlTx{ctx: ctx, tx: tx})
}

// Update runs fn in a write transaction; any error rolls everything back.
func (s *SQLiteStore) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// sqlTx implements storage.Tx on top of a database transaction.
type sqlTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlTx) exec(query string, args ...any) error {
	_, err := t.tx.ExecContext(t.ctx, query, args...)
	return err
}

func (t *sqlTx) Height() (uint64, error) {
	var height uint64
	err := t.tx.QueryRowContext(t.ctx, "SELECT value FROM ledger_meta WHERE key = 'height'").Scan(&height)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get height: %w", err)
	}
	return height, nil
}

func (t *sqlTx) SetHeight(height uint64) error {
	err := t.exec(
		`INSERT INTO ledger_meta (key, value) VALUES ('height', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		height,
	)
	if err != nil {
		return fmt.Errorf("failed to set height: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
