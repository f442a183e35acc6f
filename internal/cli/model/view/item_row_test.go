package view

import (
	"testing"

	"WishlistX/internal/cli/model"

	"github.com/stretchr/testify/assert"
)

func TestNewItemRow_FormatsPriceAndWishlist(t *testing.T) {
	five, nine := int64(5), int64(9)
	tr := "https://track/1"
	names := map[int64]string{5: "Birthday"}

	r := NewItemRow(model.SavedItem{ID: 1, Name: "Lamp", TargetAmount: "19.9", URL: "https://x", TrackingURL: &tr, WishlistID: &five}, names)
	assert.Equal(t, "19.90 €", r.Price)
	assert.Equal(t, "Birthday", r.Wishlist)
	assert.Equal(t, "https://track/1", r.Link)
	assert.Equal(t, "- 1  Lamp  19.90 €  [Birthday]  https://track/1", r.String())

	r = NewItemRow(model.SavedItem{ID: 2, Name: "Desk", URL: "https://y", WishlistID: &nine}, names)
	assert.Equal(t, "#9", r.Wishlist)
	assert.Contains(t, r.String(), "  -  ")

	r = NewItemRow(model.SavedItem{ID: 3, Name: "Pen", URL: "https://z"}, names)
	assert.Equal(t, "—", r.Wishlist)
}
