package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"playground/internal/storage"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// SQLite is the default device storage: a single key/value table in a local file.
type SQLite struct {
	db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// InitDB открывает файл базы и создает таблицу, если ее нет.
func InitDB(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// SQLite пишет из одного соединения, иначе получаем "database is locked"
	db.SetMaxOpenConns(1)

	zap.L().Info("connected to sqlite", zap.String("dsn", dsn))

	s := &SQLite{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// createTables создает таблицу key/value.
func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_items (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	zap.L().Debug("kv_items table ready")
	return nil
}

func (s *SQLite) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_items WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("%w: failed to read %q: %v", storage.ErrUnavailable, key, err)
	}
	return value, nil
}

func (s *SQLite) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_items (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("%w: failed to write %q: %v", storage.ErrUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_items WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to remove %q: %v", storage.ErrUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
