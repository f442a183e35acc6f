package model

import "time"

// Share — публичная ссылка на wishlist.
type Share struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"not null;index"`
	WishlistID int64     `gorm:"not null;index"`
	Wishlist   *Wishlist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Slug       string    `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
