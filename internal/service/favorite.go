package service

import (
	"context"
	"strings"

	"WishlistX/internal/model"
	"WishlistX/internal/repo"
	"WishlistX/internal/validate"

	"go.uber.org/zap"
)

// FavoriteInput — новый товар из формы.
type FavoriteInput struct {
	Name         string `form:"favorite[name]" validate:"required,max=255"`
	URL          string `form:"favorite[url]" validate:"required,http_url"`
	Description  string `form:"favorite[description]"`
	TargetAmount string `form:"favorite[target_amount]" validate:"decimal"`
	FavoriteType string `form:"favorite[favorite_type]"`
	TrackingURL  string `form:"favorite[tracking_url]" validate:"omitempty,http_url"`
	WishlistID   *int64 `form:"favorite[wishlist_id]"`

	ImageName string
	ImageType string
	Image     []byte
}

// FavoriteService — избранное пользователя.
type FavoriteService struct {
	favorites repo.FavoriteRepository
	wishlists repo.WishlistRepository
	log       *zap.SugaredLogger
}

func NewFavoriteService(f repo.FavoriteRepository, w repo.WishlistRepository, log *zap.SugaredLogger) *FavoriteService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FavoriteService{favorites: f, wishlists: w, log: log}
}

// List возвращает всё избранное или товары одного wishlist.
func (s *FavoriteService) List(ctx context.Context, userID int64, wishlistID *int64) ([]model.Favorite, error) {
	if wishlistID != nil {
		if _, err := s.wishlists.GetByID(ctx, userID, *wishlistID); err != nil {
			return nil, err
		}
	}
	return s.favorites.List(ctx, userID, wishlistID)
}

func (s *FavoriteService) Create(ctx context.Context, userID int64, in FavoriteInput) (*model.Favorite, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	in.TargetAmount = strings.TrimSpace(in.TargetAmount)
	if err := validate.Struct(in); err != nil {
		return nil, &InputError{Err: err}
	}
	if in.WishlistID != nil {
		if _, err := s.wishlists.GetByID(ctx, userID, *in.WishlistID); err != nil {
			return nil, err
		}
	}
	f := &model.Favorite{
		UserID:       userID,
		WishlistID:   in.WishlistID,
		Name:         in.Name,
		Description:  in.Description,
		URL:          in.URL,
		TargetAmount: in.TargetAmount,
		FavoriteType: in.FavoriteType,
		ImageName:    in.ImageName,
		ImageType:    in.ImageType,
		Image:        in.Image,
	}
	if in.TrackingURL != "" {
		f.TrackingURL = &in.TrackingURL
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Infow("favorite created", "user_id", userID, "favorite_id", f.ID, "image_bytes", len(in.Image))
	return f, nil
}

// SetWishlist перемещает товар; nil открепляет его от wishlist.
func (s *FavoriteService) SetWishlist(ctx context.Context, userID, id int64, wishlistID *int64) error {
	if wishlistID != nil {
		if _, err := s.wishlists.GetByID(ctx, userID, *wishlistID); err != nil {
			return err
		}
	}
	return s.favorites.SetWishlist(ctx, userID, id, wishlistID)
}

func (s *FavoriteService) Delete(ctx context.Context, userID, id int64) error {
	return s.favorites.Delete(ctx, userID, id)
}

// Image возвращает картинку товара.
func (s *FavoriteService) Image(ctx context.Context, id int64) (*model.Favorite, error) {
	f, err := s.favorites.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.HasImage() {
		return nil, ErrNotFound
	}
	return f, nil
}
