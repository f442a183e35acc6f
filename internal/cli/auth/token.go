package auth

import (
	"context"
	"errors"
	"strings"

	"WishlistX/internal/cli/repo"
)

// TokenKey — ключ, под которым auth-токен лежит в KV-хранилище.
const TokenKey = "wishlistx_auth_token"

// TokenStore — единственный владелец bearer-токена клиента.
// Токен непрозрачен: он не разбирается и срок его жизни не отслеживается.
type TokenStore struct {
	kv repo.KVStore
}

func NewTokenStore(kv repo.KVStore) *TokenStore {
	return &TokenStore{kv: kv}
}

// Get возвращает токен; ok=false, если он отсутствует или пуст.
func (s *TokenStore) Get(ctx context.Context) (string, bool, error) {
	v, err := s.kv.Get(ctx, TokenKey)
	if errors.Is(err, repo.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v = strings.TrimSpace(v)
	return v, v != "", nil
}

// Set сохраняет токен; последняя запись выигрывает.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return s.kv.Set(ctx, TokenKey, token)
}

// Clear удаляет токен.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, TokenKey)
}
