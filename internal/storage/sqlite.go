package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SqliteStore persists key/value pairs in a single-table sqlite database.
type SqliteStore struct {
	db *sql.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite [%s]: %w", path, err)
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

func (ss *SqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := ss.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get key [%s]: %w", key, err)
	}
	return value, true, nil
}

func (ss *SqliteStore) Set(ctx context.Context, key, value string) error {
	if _, err := ss.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	); err != nil {
		return fmt.Errorf("set key [%s]: %w", key, err)
	}
	return nil
}

func (ss *SqliteStore) Remove(ctx context.Context, key string) error {
	if _, err := ss.db.ExecContext(ctx,
		`DELETE FROM kv_store WHERE key = ?`, key,
	); err != nil {
		return fmt.Errorf("remove key [%s]: %w", key, err)
	}
	return nil
}

func (ss *SqliteStore) Close() error {
	return ss.db.Close()
}
