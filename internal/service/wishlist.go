package service

import (
	"context"
	"errors"
	"strings"

	"WishlistX/internal/model"
	"WishlistX/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistService — wishlist'ы пользователя и публичные ссылки на них.
type WishlistService struct {
	wishlists    repo.WishlistRepository
	favorites    repo.FavoriteRepository
	shares       repo.ShareRepository
	shareBaseURL string
	log          *zap.SugaredLogger
}

func NewWishlistService(w repo.WishlistRepository, f repo.FavoriteRepository, s repo.ShareRepository, shareBaseURL string, log *zap.SugaredLogger) *WishlistService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &WishlistService{
		wishlists:    w,
		favorites:    f,
		shares:       s,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		log:          log,
	}
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]model.WishlistSummary, error) {
	return s.wishlists.ListWithCounts(ctx, userID)
}

// Create создаёт wishlist; имя обязательно.
func (s *WishlistService) Create(ctx context.Context, userID int64, name string) (*model.Wishlist, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return nil, &InputError{Err: errors.New("wishlist name must be 1..255 characters")}
	}
	w := &model.Wishlist{UserID: userID, Name: name}
	if err := s.wishlists.Create(ctx, w); err != nil {
		return nil, err
	}
	s.log.Infow("wishlist created", "user_id", userID, "wishlist_id", w.ID)
	return w, nil
}

// Get возвращает wishlist пользователя вместе с товарами.
func (s *WishlistService) Get(ctx context.Context, userID, id int64) (*model.Wishlist, []model.Favorite, error) {
	w, err := s.wishlists.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	favs, err := s.favorites.List(ctx, userID, &w.ID)
	if err != nil {
		return nil, nil, err
	}
	return w, favs, nil
}

func (s *WishlistService) Delete(ctx context.Context, userID, id int64, deleteFavorites bool) error {
	if err := s.wishlists.Delete(ctx, userID, id, deleteFavorites); err != nil {
		return err
	}
	s.log.Infow("wishlist deleted", "user_id", userID, "wishlist_id", id, "delete_favorites", deleteFavorites)
	return nil
}

// Share создаёт публичную ссылку вида <SHARE_BASE_URL>/<slug>.
func (s *WishlistService) Share(ctx context.Context, userID, id int64) (string, error) {
	if _, err := s.wishlists.GetByID(ctx, userID, id); err != nil {
		return "", err
	}
	share := &model.Share{UserID: userID, WishlistID: id, Slug: uuid.NewString()}
	if err := s.shares.Create(ctx, share); err != nil {
		return "", err
	}
	return s.shareBaseURL + "/" + share.Slug, nil
}

// Shared возвращает wishlist по публичной ссылке.
func (s *WishlistService) Shared(ctx context.Context, slug string) (*model.Wishlist, []model.Favorite, error) {
	share, err := s.shares.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if share.Wishlist == nil {
		return nil, nil, ErrNotFound
	}
	favs, err := s.favorites.List(ctx, share.UserID, &share.WishlistID)
	if err != nil {
		return nil, nil, err
	}
	return share.Wishlist, favs, nil
}
