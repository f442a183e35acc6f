package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"WishlistX/internal/cli/repo"

	goredis "github.com/redis/go-redis/v9"
)

const keyNamespace = "wishlistx"

type cmdable interface {
	Get(context.Context, string) *goredis.StringCmd
	Set(context.Context, string, any, time.Duration) *goredis.StatusCmd
	Del(context.Context, ...string) *goredis.IntCmd
}

// KVStore хранит значения клиента в Redis под пространством имён wishlistx.
type KVStore struct {
	store cmdable
	raw   *goredis.Client
}

var _ repo.KVStore = (*KVStore)(nil)

// Open подключается к Redis по URL (redis://host:port/db) и проверяет соединение.
func Open(ctx context.Context, url string) (*KVStore, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := goredis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &KVStore{store: raw, raw: raw}, nil
}

// NewWithClient оборачивает уже созданный клиент.
func NewWithClient(c *goredis.Client) *KVStore {
	return &KVStore{store: c, raw: c}
}

func namespaced(key string) string {
	return keyNamespace + ":" + key
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, namespaced(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repo.ErrNotFound
	}
	return v, err
}

// Set записывает значение без TTL: у токена нет срока жизни на клиенте.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, namespaced(key), value, 0).Err()
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return s.store.Del(ctx, namespaced(key)).Err()
}

func (s *KVStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
