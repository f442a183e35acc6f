package view

import (
	"fmt"

	"WishlistX/internal/cli/model"
)

// ItemRow — DTO для отображения сохранённого товара в CLI.
type ItemRow struct {
	ID       int64
	Name     string
	Price    string // "19.90 €" или пусто
	Wishlist string // имя wishlist или "—"
	Link     string
}

// NewItemRow собирает строку отображения; names сопоставляет id wishlist с именем.
func NewItemRow(it model.SavedItem, names map[int64]string) ItemRow {
	row := ItemRow{ID: it.ID, Name: it.Name, Wishlist: "—", Link: it.OpenURL()}
	if d, ok := it.Amount(); ok {
		row.Price = d.StringFixed(2) + " €"
	}
	if it.WishlistID != nil {
		if n, ok := names[*it.WishlistID]; ok {
			row.Wishlist = n
		} else {
			row.Wishlist = fmt.Sprintf("#%d", *it.WishlistID)
		}
	}
	return row
}

func (r ItemRow) String() string {
	price := r.Price
	if price == "" {
		price = "-"
	}
	return fmt.Sprintf("- %d  %s  %s  [%s]  %s", r.ID, r.Name, price, r.Wishlist, r.Link)
}
