package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/cli/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func TestFavorite_CreateWithImage(t *testing.T) {
	e := newTestEnv(t)
	uid := e.seedUser(t, "+491234567890", "password123")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("favorite[name]", "Lamp"))
	require.NoError(t, mw.WriteField("favorite[url]", "https://shop.example/lamp"))
	require.NoError(t, mw.WriteField("favorite[tracking_url]", "https://aff.example/lamp"))
	fw, err := mw.CreateFormFile("favorite[image]", "product_image.jpg")
	require.NoError(t, err)
	_, err = fw.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/favorites", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token(t, uid))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	items, err := e.client(t, uid).ListSavedItems(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	require.NotNil(t, it.Image)
	assert.Equal(t, e.srv.URL+"/images/"+strconv.FormatInt(it.ID, 10), it.Image.URL)
	assert.Equal(t, "https://aff.example/lamp", it.OpenURL())

	// картинка отдаётся без авторизации
	img, err := http.Get(it.Image.URL)
	require.NoError(t, err)
	defer img.Body.Close()
	require.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
	got, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
}

func TestFavorite_ImageMissing(t *testing.T) {
	e := newTestEnv(t)
	uid := e.seedUser(t, "+491234567890", "password123")
	require.NoError(t, e.client(t, uid).AddItem(context.Background(), api.NewItem{Name: "Mug", URL: "https://shop.example/mug"}))
	items, err := e.client(t, uid).ListSavedItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items[0].Image)

	resp := e.do(t, http.MethodGet, "/images/"+strconv.FormatInt(items[0].ID, 10), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFavorite_CreateValidation(t *testing.T) {
	e := newTestEnv(t)
	tok := e.token(t, e.seedUser(t, "+491234567890", "password123"))

	cases := []struct {
		name string
		form url.Values
		want int
	}{
		{"no name", url.Values{"favorite[url]": {"https://x.example"}}, http.StatusUnprocessableEntity},
		{"bad url", url.Values{"favorite[name]": {"A"}, "favorite[url]": {"not a url"}}, http.StatusUnprocessableEntity},
		{"bad amount", url.Values{"favorite[name]": {"A"}, "favorite[url]": {"https://x.example"}, "favorite[target_amount]": {"12,5"}}, http.StatusUnprocessableEntity},
		{"bad wishlist id", url.Values{"favorite[name]": {"A"}, "favorite[url]": {"https://x.example"}, "favorite[wishlist_id]": {"abc"}}, http.StatusUnprocessableEntity},
		{"unknown wishlist", url.Values{"favorite[name]": {"A"}, "favorite[url]": {"https://x.example"}, "favorite[wishlist_id]": {"999"}}, http.StatusNotFound},
		{"ok", url.Values{"favorite[name]": {"A"}, "favorite[url]": {"https://x.example"}}, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := e.do(t, http.MethodPost, "/favorites", tok, tc.form)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestFavorite_UpdateAndDelete(t *testing.T) {
	e := newTestEnv(t)
	uid := e.seedUser(t, "+491234567890", "password123")
	c := e.client(t, uid)
	ctx := context.Background()
	require.NoError(t, c.AddItem(ctx, api.NewItem{Name: "Book", URL: "https://shop.example/book"}))
	items, err := c.ListSavedItems(ctx, nil)
	require.NoError(t, err)
	id := strconv.FormatInt(items[0].ID, 10)
	tok := e.token(t, uid)

	// поле wishlist_id обязательно, пустое значение открепляет
	resp := e.do(t, http.MethodPatch, "/favorites/"+id, tok, url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp = e.do(t, http.MethodPatch, "/favorites/"+id, tok, url.Values{"favorite[wishlist_id]": {""}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = e.do(t, http.MethodPatch, "/favorites/"+id, tok, url.Values{"favorite[wishlist_id]": {"12345"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// чужой пользователь не видит товар
	other := e.token(t, e.seedUser(t, "+491234567891", "password123"))
	resp = e.do(t, http.MethodDelete, "/favorites/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/favorites/"+id, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])

	resp = e.do(t, http.MethodDelete, "/favorites/"+id, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	items, err = c.ListSavedItems(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.SavedItem{}, items)
}
