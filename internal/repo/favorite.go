package repo

import (
	"context"

	"WishlistX/internal/model"

	"gorm.io/gorm"
)

// FavoriteRepository — доступ к избранному пользователя.
type FavoriteRepository interface {
	Create(ctx context.Context, f *model.Favorite) error
	// List возвращает избранное в порядке добавления; wishlistID != nil ограничивает выборку.
	List(ctx context.Context, userID int64, wishlistID *int64) ([]model.Favorite, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Favorite, error)
	// GetImage возвращает товар с картинкой без проверки владельца (публичные ссылки на картинки).
	GetImage(ctx context.Context, id int64) (*model.Favorite, error)
	SetWishlist(ctx context.Context, userID, id int64, wishlistID *int64) error
	Delete(ctx context.Context, userID, id int64) error
}

type favoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepo) List(ctx context.Context, userID int64, wishlistID *int64) ([]model.Favorite, error) {
	out := []model.Favorite{}
	q := r.db.WithContext(ctx).Omit("image").Where("user_id = ?", userID)
	if wishlistID != nil {
		q = q.Where("wishlist_id = ?", *wishlistID)
	}
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *favoriteRepo) GetByID(ctx context.Context, userID, id int64) (*model.Favorite, error) {
	var f model.Favorite
	if err := r.db.WithContext(ctx).Omit("image").Where("id = ? AND user_id = ?", id, userID).Take(&f).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *favoriteRepo) GetImage(ctx context.Context, id int64) (*model.Favorite, error) {
	var f model.Favorite
	if err := r.db.WithContext(ctx).Select("id", "image_name", "image_type", "image").Where("id = ?", id).Take(&f).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *favoriteRepo) SetWishlist(ctx context.Context, userID, id int64, wishlistID *int64) error {
	res := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("wishlist_id", wishlistID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// значение могло совпасть; отличаем от отсутствующей записи
		var n int64
		if err := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("id = ? AND user_id = ?", id, userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
