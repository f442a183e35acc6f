package repo

import (
	"context"

	"WishlistX/internal/model"

	"gorm.io/gorm"
)

// WishlistRepository — доступ к wishlist'ам пользователя.
type WishlistRepository interface {
	Create(ctx context.Context, w *model.Wishlist) error
	// ListWithCounts возвращает wishlist'ы в порядке создания вместе с количеством товаров.
	ListWithCounts(ctx context.Context, userID int64) ([]model.WishlistSummary, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Wishlist, error)
	// Delete удаляет wishlist; товары удаляются при deleteFavorites, иначе открепляются.
	Delete(ctx context.Context, userID, id int64, deleteFavorites bool) error
}

type wishlistRepo struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) Create(ctx context.Context, w *model.Wishlist) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *wishlistRepo) ListWithCounts(ctx context.Context, userID int64) ([]model.WishlistSummary, error) {
	out := []model.WishlistSummary{}
	err := r.db.WithContext(ctx).
		Model(&model.Wishlist{}).
		Select("wishlists.id, wishlists.name, COUNT(favorites.id) AS count").
		Joins("LEFT JOIN favorites ON favorites.wishlist_id = wishlists.id").
		Where("wishlists.user_id = ?", userID).
		Group("wishlists.id, wishlists.name").
		Order("wishlists.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wishlistRepo) GetByID(ctx context.Context, userID, id int64) (*model.Wishlist, error) {
	var w model.Wishlist
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&w).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (r *wishlistRepo) Delete(ctx context.Context, userID, id int64, deleteFavorites bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w model.Wishlist
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Take(&w).Error; err != nil {
			return notFound(err)
		}
		// сначала зависимые записи: внешние ключи могут быть включены
		favs := tx.Model(&model.Favorite{}).Where("wishlist_id = ? AND user_id = ?", id, userID)
		if deleteFavorites {
			if err := favs.Delete(&model.Favorite{}).Error; err != nil {
				return err
			}
		} else if err := favs.Update("wishlist_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("wishlist_id = ?", id).Delete(&model.Share{}).Error; err != nil {
			return err
		}
		return tx.Delete(&w).Error
	})
}
