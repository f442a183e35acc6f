package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"WishlistX/internal/cli/repo"
)

// KVStore — файловое key-value хранилище: один файл на ключ в каталоге Dir.
type KVStore struct {
	Dir string
}

var _ repo.KVStore = (*KVStore)(nil)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// New создаёт хранилище в каталоге dir (каталог создаётся с правами 0700).
func New(dir string) (*KVStore, error) {
	if dir == "" {
		return nil, errors.New("empty store dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &KVStore{Dir: dir}, nil
}

func (s *KVStore) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(s.Dir, key), nil
}

// Get читает значение ключа; завершающие пробелы и переводы строки обрезаются.
func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b), nil
}

// Set атомарно записывает значение: временный файл, fsync, rename.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, "."+key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Remove удаляет ключ; отсутствие файла не считается ошибкой.
func (s *KVStore) Remove(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *KVStore) Close() error { return nil }
