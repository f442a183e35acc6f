package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"WishlistX/internal/cli/model"
)

type idInput struct {
	ID int64 `form:"id" validate:"gt=0"`
}

// ListWishlists возвращает wishlist'ы пользователя в порядке сервера.
func (c *Client) ListWishlists(ctx context.Context) ([]model.Wishlist, error) {
	const op = "listWishlists"
	resp, err := c.doAuthorized(ctx, &request{op: op, method: http.MethodGet, path: "/wishlists", apiVersion: true})
	if err != nil {
		return nil, err
	}
	var out []model.Wishlist
	if err := decodePayload(op, resp, "wishlists", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createWishlistInput struct {
	Name string `form:"wishlist[name]" validate:"required,max=255"`
}

// CreateWishlist создаёт wishlist с именем name.
func (c *Client) CreateWishlist(ctx context.Context, name string) error {
	const op = "createWishlist"
	name = strings.TrimSpace(name)
	if err := checkInput(createWishlistInput{Name: name}); err != nil {
		return err
	}
	_, err := c.doAuthorized(ctx, &request{
		op:         op,
		method:     http.MethodPost,
		path:       "/wishlists",
		apiVersion: true,
		form:       newForm().add("wishlist[name]", name),
	})
	return err
}

// DeleteWishlist удаляет wishlist; deleteItems=true удаляет и его товары.
func (c *Client) DeleteWishlist(ctx context.Context, id int64, deleteItems bool) error {
	const op = "deleteWishlist"
	if err := checkInput(idInput{ID: id}); err != nil {
		return err
	}
	_, err := c.doAuthorized(ctx, &request{
		op:         op,
		method:     http.MethodDelete,
		path:       "/wishlists/" + strconv.FormatInt(id, 10),
		query:      url.Values{"delete_favorites": {strconv.FormatBool(deleteItems)}},
		apiVersion: true,
	})
	return err
}

// ShareWishlist создаёт публичную ссылку на wishlist. Пустой ссылки при успехе не бывает:
// вызывающий код должен считать ошибку единственным исходом неудачи.
func (c *Client) ShareWishlist(ctx context.Context, id int64) (string, error) {
	const op = "shareWishlist"
	if err := checkInput(idInput{ID: id}); err != nil {
		return "", err
	}
	resp, err := c.doAuthorized(ctx, &request{
		op:         op,
		method:     http.MethodPost,
		path:       "/shares",
		apiVersion: true,
		form:       newForm().add("wishlist_id", strconv.FormatInt(id, 10)),
	})
	if err != nil {
		return "", err
	}
	var link string
	if err := decodePayload(op, resp, "share.share_url", &link); err != nil {
		return "", err
	}
	if link == "" {
		return "", &RequestError{Op: op, Status: resp.status, Message: "empty share url"}
	}
	return link, nil
}
