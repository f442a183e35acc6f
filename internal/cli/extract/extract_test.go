package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParse(t *testing.T) {
	info, err := Parse("```json\n{\"name\":\"Lamp\",\"description\":\"Warm\",\"price\":19.9,\"imageUrl\":\"https://img/1.jpg\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", info.Name)
	assert.Equal(t, "Warm", info.Description)
	assert.Equal(t, "https://img/1.jpg", info.ImageURL)
	require.NotNil(t, info.Price)
	assert.Equal(t, "19.90", info.Price.StringFixed(2))

	info, err = Parse(`{"name":"Desk","price":"120,50"}`)
	require.NoError(t, err)
	assert.Equal(t, "120.5", info.Price.String())

	info, err = Parse(`{"name":"Pen","price":null}`)
	require.NoError(t, err)
	assert.Nil(t, info.Price)

	_, err = Parse("Sorry, I cannot browse")
	assert.Error(t, err)
	_, err = Parse(`{"description":"no name"}`)
	assert.Error(t, err)
}

func TestParse_PriceSeparators(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `"19.99"`, want: "19.99"},
		{raw: `"120,50"`, want: "120.5"},
		{raw: `"1,299.99"`, want: "1299.99"},
		{raw: `"1.299,99"`, want: "1299.99"},
		{raw: `"1,299"`, want: "1299"},
		{raw: `"1,234,567"`, want: "1234567"},
		{raw: `"1.234.567"`, want: "1234567"},
		{raw: `"1 299,99"`, want: "1299.99"},
		{raw: `"1'299.50"`, want: "1299.5"},
		{raw: `1299.99`, want: "1299.99"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			info, err := Parse(`{"name":"Sofa","price":` + tt.raw + `}`)
			require.NoError(t, err)
			require.NotNil(t, info.Price)
			assert.Equal(t, tt.want, info.Price.String())
		})
	}

	info, err := Parse(`{"name":"Sofa","price":"about 1,299.99"}`)
	require.NoError(t, err)
	assert.Nil(t, info.Price)
}

func TestClient_Extract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])
		raw, _ := json.Marshal(body)
		assert.Contains(t, gjson.GetBytes(raw, "messages.0.content").String(), "https://shop/lamp")

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"name\":\"Lamp\",\"price\":5}"}}]}`))
	}))
	defer ts.Close()

	c := New(Options{URL: ts.URL, APIKey: "key", Model: "test-model"})
	info, err := c.Extract(context.Background(), "https://shop/lamp")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", info.Name)
	assert.Equal(t, "5", info.Price.String())
}

func TestClient_ExtractErrors(t *testing.T) {
	_, err := New(Options{}).Extract(context.Background(), "https://x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer ts.Close()
	_, err = New(Options{URL: ts.URL}).Extract(context.Background(), "https://x")
	assert.ErrorContains(t, err, "rate limited")
}
