package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"fjacquet/khoroch-khata/internal/models"
)

const createSlotTable = `
CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteBackend stores the document as one row of a key-value table.
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

// NewSQLiteBackend opens (creating if needed) the database at dbPath and
// uses key as the document slot.
func NewSQLiteBackend(dbPath, key string) (*SQLiteBackend, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath cannot be empty")
	}
	if key == "" {
		key = models.StorageKey
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(createSlotTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &SQLiteBackend{db: db, key: key}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return []byte(value), nil
}

func (b *SQLiteBackend) Write(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		b.key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
