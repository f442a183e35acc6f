package bootstrap

import (
	"context"
	"fmt"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/cli/auth"
	"WishlistX/internal/cli/extract"
	"WishlistX/internal/cli/repo"
	fsrepo "WishlistX/internal/cli/repo/fs"
	redisrepo "WishlistX/internal/cli/repo/redis"
	sqliterepo "WishlistX/internal/cli/repo/sqlite"
	"WishlistX/internal/config"
	"WishlistX/internal/logger"

	"go.uber.org/zap"
)

// App — собранные зависимости клиента для одной команды.
type App struct {
	Logger    *zap.SugaredLogger
	Store     repo.KVStore
	Session   *auth.Session
	Client    *api.Client
	Extractor extract.Extractor
}

// OpenStore открывает KV-хранилище, выбранное в настройках.
func OpenStore(ctx context.Context, cfg *config.Config) (repo.KVStore, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		s, err := sqliterepo.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.StoreRedis:
		s, err := redisrepo.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return s, nil
	default:
		s, err := fsrepo.New(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	}
}

// New собирает логгер, хранилище токена, сессию и клиент API.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть хранилище и сбросить логи.
func New(ctx context.Context, cfg *config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	raw := api.NewClient(api.Options{
		BaseURL:        cfg.ServerURL,
		APIVersion:     cfg.APIVersion,
		DeviceName:     cfg.DeviceName,
		Timeout:        cfg.HTTPTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		Logger:         log,
	})
	sess := auth.NewSession(
		auth.NewTokenStore(store),
		auth.Credentials{Phone: cfg.Phone, Password: cfg.Password},
		raw,
		log,
	)
	app := &App{
		Logger:  log,
		Store:   store,
		Session: sess,
		Client:  raw.WithAuthenticator(sess),
		Extractor: extract.New(extract.Options{
			URL:    cfg.ExtractorURL,
			APIKey: cfg.ExtractorAPIKey,
			Model:  cfg.ExtractorModel,
			Logger: log,
		}),
	}
	log.Debugw("client ready", "api", cfg.ServerURL, "store", cfg.StoreBackend)

	cleanup := func() error {
		_ = log.Sync()
		return store.Close()
	}
	return app, cleanup, nil
}
