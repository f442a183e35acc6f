package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/config"
	"WishlistX/internal/handlers"
	"WishlistX/internal/middleware"
	"WishlistX/internal/model"
	"WishlistX/internal/repo"
	"WishlistX/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

type testEnv struct {
	srv *httptest.Server
	db  *gorm.DB
	cfg *config.Config
}

// newTestEnv поднимает сервер поверх in-memory SQLite
func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:h_" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	logger := zap.NewNop().Sugar()
	middleware.SetLogger(logger)
	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour, ShareBaseURL: "http://share.test/s"}
	for _, opt := range opts {
		opt(cfg)
	}

	users := service.NewUserService(repo.NewUserRepository(db), logger)
	wishlistRepo := repo.NewWishlistRepository(db)
	favoriteRepo := repo.NewFavoriteRepository(db)
	wishlists := service.NewWishlistService(wishlistRepo, favoriteRepo, repo.NewShareRepository(db), cfg.ShareBaseURL, logger)
	favorites := service.NewFavoriteService(favoriteRepo, wishlistRepo, logger)

	h := handlers.NewHandler(users, wishlists, favorites, logger, cfg)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, db: db, cfg: cfg}
}

// seedUser создаёт подтверждённого пользователя и возвращает его id
func (e *testEnv) seedUser(t *testing.T, phone, password string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Phone: phone, Email: phone + "@example.com", FirstName: "T", LastName: "U", Password: string(hash), Confirmed: true}
	require.NoError(t, e.db.Create(u).Error)
	return u.ID
}

func (e *testEnv) token(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := middleware.IssueToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

// do отправляет запрос с bearer-токеном (если задан)
func (e *testEnv) do(t *testing.T, method, path, token string, form url.Values) *http.Response {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, e.srv.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// staticAuth отдаёт заранее выпущенный токен
type staticAuth struct{ token string }

func (a staticAuth) EnsureToken(context.Context) (string, error)    { return a.token, nil }
func (a staticAuth) Reauthenticate(context.Context) (string, error) { return a.token, nil }

func (e *testEnv) client(t *testing.T, userID int64) *api.Client {
	t.Helper()
	return api.NewClient(api.Options{BaseURL: e.srv.URL}).WithAuthenticator(staticAuth{token: e.token(t, userID)})
}
