package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Image — вложенный объект картинки в ответе сервера.
type Image struct {
	URL string `json:"url"`
}

// Amount — денежная сумма, которую сервер присылает строкой (иногда числом или null).
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("target_amount: %w", err)
		}
		*a = Amount(n.String())
	}
	return nil
}

// SavedItem — сохранённый товар (favorite), опционально привязанный к wishlist.
type SavedItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	TargetAmount Amount  `json:"target_amount"`
	Image        *Image  `json:"image,omitempty"`
	URL          string  `json:"url"`
	TrackingURL  *string `json:"tracking_url,omitempty"`
	WishlistID   *int64  `json:"wishlist_id,omitempty"` // nil = без wishlist
}

// ImageURL возвращает ссылку на картинку, если она есть.
func (s SavedItem) ImageURL() *string {
	if s.Image == nil || s.Image.URL == "" {
		return nil
	}
	u := s.Image.URL
	return &u
}

// OpenURL — ссылка для открытия в браузере: tracking_url приоритетнее url.
func (s SavedItem) OpenURL() string {
	if s.TrackingURL != nil && *s.TrackingURL != "" {
		return *s.TrackingURL
	}
	return s.URL
}

// Amount разбирает target_amount; ok=false, если сумма пустая или некорректная.
func (s SavedItem) Amount() (decimal.Decimal, bool) {
	if s.TargetAmount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(string(s.TargetAmount))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// InWishlist сообщает, совпадает ли членство элемента с фильтром (nil = без wishlist).
func (s SavedItem) InWishlist(id *int64) bool {
	if s.WishlistID == nil || id == nil {
		return s.WishlistID == nil && id == nil
	}
	return *s.WishlistID == *id
}
