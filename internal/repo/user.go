package repo

import (
	"context"
	"errors"

	"WishlistX/internal/model"

	"gorm.io/gorm"
)

// UserRepository — доступ к пользователям.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByPhone возвращает (nil, nil), если пользователя нет.
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	// GetUserByConfirmationCode ищет неподтверждённого пользователя по коду.
	GetUserByConfirmationCode(ctx context.Context, code string) (*model.User, error)
	MarkConfirmed(ctx context.Context, id int64) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByConfirmationCode(ctx context.Context, code string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("confirmation_code = ? AND confirmed = ?", code, false).
		Take(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepo) MarkConfirmed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"confirmed": true, "confirmation_code": nil}).Error
}
