package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"WishlistX/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// kvDDL — схема таблицы kv.
//
//go:embed migrations/001_init.sql
var kvDDL string

// KVStore — key-value хранилище клиента в локальном файле SQLite.
type KVStore struct {
	db *sql.DB
}

var _ repo.KVStore = (*KVStore)(nil)

// Open открывает (и создаёт при необходимости) файл БД и выполняет миграции.
func Open(path string) (*KVStore, error) {
	if path == "" {
		return nil, errors.New("empty sqlite store path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &KVStore{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate гарантирует наличие таблицы kv.
func (s *KVStore) Migrate() error {
	_, err := s.db.Exec(kvDDL)
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repo.ErrNotFound
	}
	return v, err
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close закрывает соединение с БД.
func (s *KVStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
