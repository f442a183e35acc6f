package model

import "time"

// Favorite — сохранённый товар. WishlistID == nil — товар вне wishlist.
type Favorite struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	WishlistID *int64    `gorm:"index"`
	Wishlist   *Wishlist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Name         string `gorm:"not null"`
	Description  string
	URL          string `gorm:"not null"`
	TrackingURL  *string
	TargetAmount string // десятичная строка, пусто — не задана
	FavoriteType string

	ImageName string
	ImageType string
	Image     []byte

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// HasImage сообщает, сохранена ли картинка товара.
func (f *Favorite) HasImage() bool { return len(f.Image) > 0 }
