package model

import "time"

// User — владелец wishlist'ов и избранного.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Phone     string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"not null"`
	FirstName string
	LastName  string
	Password  string `gorm:"not null"` // bcrypt hash

	Confirmed        bool    `gorm:"not null;default:false"`
	ConfirmationCode *string `gorm:"uniqueIndex"` // nil после подтверждения

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
