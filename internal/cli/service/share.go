package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"WishlistX/internal/cli/clipboard"

	"go.uber.org/zap"
)

// ErrUnexpectedShareURL — сервер вернул ссылку, не подходящую под SHARE_URL_PATTERN.
var ErrUnexpectedShareURL = errors.New("share url does not match the configured pattern")

// Sharer создаёт ссылку на wishlist (реализуется api.Client).
type Sharer interface {
	ShareWishlist(ctx context.Context, id int64) (string, error)
}

// ShareService создаёт публичную ссылку и копирует её в буфер обмена.
type ShareService struct {
	api     Sharer
	clip    clipboard.Writer
	pattern *regexp.Regexp
	log     *zap.SugaredLogger
}

func NewShareService(api Sharer, clip clipboard.Writer, pattern string, log *zap.SugaredLogger) (*ShareService, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("SHARE_URL_PATTERN: %w", err)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ShareService{api: api, clip: clip, pattern: re, log: log}, nil
}

// ShareAndCopy возвращает ссылку на wishlist и записывает её в буфер обмена.
// Если запись в буфер не удалась, ссылка всё равно возвращается вместе с ошибкой.
func (s *ShareService) ShareAndCopy(ctx context.Context, id int64, name string) (string, error) {
	link, err := s.api.ShareWishlist(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.pattern.MatchString(link) {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedShareURL, link)
	}
	if err := s.clip.WriteAll(link); err != nil {
		s.log.Warnw("clipboard write failed", "wishlist_id", id, "error", err)
		return link, fmt.Errorf("copy share link: %w", err)
	}
	s.log.Infow("share link copied", "wishlist_id", id, "wishlist", name)
	return link, nil
}
