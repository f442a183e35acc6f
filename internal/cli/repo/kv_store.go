package repo

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда ключ отсутствует в хранилище.
var ErrNotFound = errors.New("key not found")

// KVStore описывает абстракцию key-value хранилища на клиенте.
// Клиент хранит в нём только auth-токен, но контракт общий.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
