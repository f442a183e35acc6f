package model

// Wishlist — именованная коллекция на сервере; count считается сервером.
type Wishlist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
