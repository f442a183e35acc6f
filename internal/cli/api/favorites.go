package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"WishlistX/internal/cli/model"
)

// FavoriteTypeImported помечает товары, добавленные этим клиентом.
const FavoriteTypeImported = "imported_from_extension"

const imageFileName = "product_image.jpg"

// ListSavedItems возвращает все товары (wishlistID == nil) или товары одного wishlist.
func (c *Client) ListSavedItems(ctx context.Context, wishlistID *int64) ([]model.SavedItem, error) {
	const op = "listSavedItems"
	req := &request{op: op, method: http.MethodGet, path: "/favorites", apiVersion: true}
	path := "favorites"
	if wishlistID != nil {
		if err := checkInput(idInput{ID: *wishlistID}); err != nil {
			return nil, err
		}
		req.path = "/wishlists/" + strconv.FormatInt(*wishlistID, 10)
		path = "wishlist.favorites"
	}
	resp, err := c.doAuthorized(ctx, req)
	if err != nil {
		return nil, err
	}
	out := []model.SavedItem{}
	if err := decodePayload(op, resp, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewItem — поля нового товара. Пустые необязательные поля не отправляются.
type NewItem struct {
	Name         string `form:"favorite[name]" validate:"required,max=255"`
	URL          string `form:"favorite[url]" validate:"required,http_url"`
	Description  string `form:"favorite[description]"`
	TargetAmount string `form:"favorite[target_amount]" validate:"decimal"`
	ImageURL     string `form:"favorite[image]" validate:"omitempty,http_url"`
}

// AddItem сохраняет товар (POST /favorites). Если задан ImageURL, картинка скачивается
// один раз до запроса и прикладывается файлом product_image.jpg.
func (c *Client) AddItem(ctx context.Context, it NewItem) error {
	const op = "addItem"
	it.Name = strings.TrimSpace(it.Name)
	it.URL = strings.TrimSpace(it.URL)
	it.TargetAmount = strings.TrimSpace(it.TargetAmount)
	if err := checkInput(it); err != nil {
		return err
	}

	f := newForm().
		add("favorite[name]", it.Name).
		add("favorite[url]", it.URL).
		add("favorite[favorite_type]", FavoriteTypeImported).
		addOptional("favorite[description]", it.Description).
		addOptional("favorite[target_amount]", it.TargetAmount)

	if it.ImageURL != "" {
		img, err := c.fetchImage(ctx, op, it.ImageURL)
		if err != nil {
			return err
		}
		f.addFile("favorite[image]", imageFileName, img.contentType, img.data)
	}

	_, err := c.doAuthorized(ctx, &request{op: op, method: http.MethodPost, path: "/favorites", apiVersion: true, form: f})
	return err
}

// UpdateItemWishlist переносит товар в wishlist; nil убирает его из wishlist.
func (c *Client) UpdateItemWishlist(ctx context.Context, itemID int64, wishlistID *int64) error {
	const op = "updateItemWishlist"
	if err := checkInput(idInput{ID: itemID}); err != nil {
		return err
	}
	value := ""
	if wishlistID != nil {
		if err := checkInput(idInput{ID: *wishlistID}); err != nil {
			return err
		}
		value = strconv.FormatInt(*wishlistID, 10)
	}
	_, err := c.doAuthorized(ctx, &request{
		op:         op,
		method:     http.MethodPatch,
		path:       "/favorites/" + strconv.FormatInt(itemID, 10),
		apiVersion: true,
		form:       newForm().add("favorite[wishlist_id]", value),
	})
	return err
}

// DeleteItem удаляет товар.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	const op = "deleteItem"
	if err := checkInput(idInput{ID: itemID}); err != nil {
		return err
	}
	_, err := c.doAuthorized(ctx, &request{
		op:         op,
		method:     http.MethodDelete,
		path:       "/favorites/" + strconv.FormatInt(itemID, 10),
		apiVersion: true,
	})
	return err
}
