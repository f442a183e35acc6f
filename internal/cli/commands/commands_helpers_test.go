package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"WishlistX/internal/cli/clipboard"
	"WishlistX/internal/cli/model"
	"WishlistX/internal/config"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// withStdin подставляет ввод пользователя.
func withStdin(t *testing.T, input string) {
	t.Helper()
	old := In
	In = strings.NewReader(input)
	t.Cleanup(func() { In = old })
}

// withClipboard подменяет буфер обмена на память.
func withClipboard(t *testing.T) *clipboard.Memory {
	t.Helper()
	old := Clipboard
	m := &clipboard.Memory{}
	Clipboard = m
	t.Cleanup(func() { Clipboard = old })
	return m
}

type recordingOpener struct{ opened []string }

func (r *recordingOpener) Open(url string) error {
	r.opened = append(r.opened, url)
	return nil
}

func withBrowser(t *testing.T) *recordingOpener {
	t.Helper()
	old := Browser
	r := &recordingOpener{}
	Browser = r
	t.Cleanup(func() { Browser = old })
	return r
}

// testConfig — настройки клиента с файловым хранилищем токена во временном каталоге.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL:    serverURL,
		APIVersion:   "1.1",
		DeviceName:   "wxcli",
		StoreBackend: config.StoreFS,
		StorePath:    t.TempDir(),
		SharePattern: `^https?://`,
		LogLevel:     "error",
	}
}

// fakeBackend — упрощённый сервер WishlistX в памяти.
type fakeBackend struct {
	mu        sync.Mutex
	password  string
	signIns   int
	nextID    int64
	wishlists []model.Wishlist
	items     []model.SavedItem
	// failMutations — PATCH/DELETE /favorites отвечают 500
	failMutations bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	five := int64(5)
	tracking := "https://track.example/1"
	b := &fakeBackend{
		password:  "secret",
		nextID:    100,
		wishlists: []model.Wishlist{{ID: 5, Name: "Birthday"}, {ID: 7, Name: "Home"}},
		items: []model.SavedItem{
			{ID: 1, Name: "Lamp", TargetAmount: "19.9", URL: "https://shop.example/lamp", TrackingURL: &tracking, WishlistID: &five},
			{ID: 2, Name: "Mug", TargetAmount: "7", URL: "https://shop.example/mug", WishlistID: &five},
			{ID: 3, Name: "Book", URL: "https://shop.example/book"},
		},
	}
	ts := httptest.NewServer(b.routes())
	t.Cleanup(ts.Close)
	return b, ts
}

func (b *fakeBackend) signInCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signIns
}

func (b *fakeBackend) setFailMutations(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failMutations = v
}

func (b *fakeBackend) item(id int64) (model.SavedItem, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, it := range b.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.SavedItem{}, false
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/sign_in", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.FormValue("password") != b.password {
			http.Error(w, `{"error":"invalid"}`, http.StatusUnauthorized)
			return
		}
		b.signIns++
		w.Header().Set("Authorization", "Bearer tok-"+strconv.Itoa(b.signIns))
	})
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /auth/confirmation", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirmation_token") != "123456" {
			http.Error(w, `{"error":"bad code"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Authorization", "Bearer tok-verified")
	})
	mux.HandleFunc("GET /wishlists", b.authed(func(w http.ResponseWriter, r *http.Request) {
		lists := make([]model.Wishlist, len(b.wishlists))
		for i, wl := range b.wishlists {
			wl.Count = 0
			for _, it := range b.items {
				if it.InWishlist(&wl.ID) {
					wl.Count++
				}
			}
			lists[i] = wl
		}
		writeJSON(w, map[string]any{"success": true, "wishlists": lists})
	}))
	mux.HandleFunc("POST /wishlists", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.nextID++
		b.wishlists = append(b.wishlists, model.Wishlist{ID: b.nextID, Name: r.FormValue("wishlist[name]")})
		w.WriteHeader(http.StatusCreated)
	}))
	mux.HandleFunc("GET /wishlists/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var out []model.SavedItem
		for _, it := range b.items {
			if it.InWishlist(&id) {
				out = append(out, it)
			}
		}
		writeJSON(w, map[string]any{"wishlist": map[string]any{"id": id, "favorites": out}})
	}))
	mux.HandleFunc("DELETE /wishlists/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		withItems := r.URL.Query().Get("delete_favorites") == "true"
		var lists []model.Wishlist
		for _, wl := range b.wishlists {
			if wl.ID != id {
				lists = append(lists, wl)
			}
		}
		b.wishlists = lists
		var items []model.SavedItem
		for _, it := range b.items {
			if it.InWishlist(&id) {
				if withItems {
					continue
				}
				it.WishlistID = nil
			}
			items = append(items, it)
		}
		b.items = items
	}))
	mux.HandleFunc("GET /favorites", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"favorites": b.items})
	}))
	mux.HandleFunc("POST /favorites", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.nextID++
		b.items = append(b.items, model.SavedItem{
			ID:           b.nextID,
			Name:         r.FormValue("favorite[name]"),
			URL:          r.FormValue("favorite[url]"),
			TargetAmount: model.Amount(r.FormValue("favorite[target_amount]")),
		})
		w.WriteHeader(http.StatusCreated)
	}))
	mux.HandleFunc("PATCH /favorites/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		if b.failMutations {
			http.Error(w, `{"error":"database unavailable"}`, http.StatusInternalServerError)
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var target *int64
		if v := r.FormValue("favorite[wishlist_id]"); v != "" {
			n, _ := strconv.ParseInt(v, 10, 64)
			target = &n
		}
		for i := range b.items {
			if b.items[i].ID == id {
				b.items[i].WishlistID = target
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	mux.HandleFunc("DELETE /favorites/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		if b.failMutations {
			http.Error(w, `{"error":"database unavailable"}`, http.StatusInternalServerError)
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var items []model.SavedItem
		for _, it := range b.items {
			if it.ID != id {
				items = append(items, it)
			}
		}
		b.items = items
	}))
	mux.HandleFunc("POST /shares", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"share": map[string]any{"share_url": "https://share.example/s/" + r.FormValue("wishlist_id")}})
	}))
	return mux
}

// authed проверяет bearer-токен и держит мьютекс на время обработчика.
func (b *fakeBackend) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-") {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
