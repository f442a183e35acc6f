package memory

import (
	"context"
	"sync"

	"WishlistX/internal/cli/repo"
)

// KVStore — in-memory хранилище, используется в тестах и как запасной вариант.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ repo.KVStore = (*KVStore)(nil)

func New() *KVStore {
	return &KVStore{data: map[string]string{}}
}

func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Close() error { return nil }
