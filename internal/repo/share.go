package repo

import (
	"context"

	"WishlistX/internal/model"

	"gorm.io/gorm"
)

// ShareRepository — публичные ссылки на wishlist'ы.
type ShareRepository interface {
	Create(ctx context.Context, s *model.Share) error
	GetBySlug(ctx context.Context, slug string) (*model.Share, error)
}

type shareRepo struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepo{db: db}
}

func (r *shareRepo) Create(ctx context.Context, s *model.Share) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shareRepo) GetBySlug(ctx context.Context, slug string) (*model.Share, error) {
	var s model.Share
	if err := r.db.WithContext(ctx).Preload("Wishlist").Where("slug = ?", slug).Take(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}
