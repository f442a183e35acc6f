package model

import "time"

// Wishlist — именованная коллекция избранного пользователя.
type Wishlist struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// WishlistSummary — wishlist с количеством товаров.
type WishlistSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
