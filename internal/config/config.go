package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store backends supported by the client.
const (
	StoreFS     = "fs"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Лимит попыток входа и подтверждения на IP по умолчанию.
const (
	DefaultAuthRPS   = 0.2
	DefaultAuthBurst = 10
)

type Config struct {
	// Server-side settings
	DatabaseDSN  string        `env:"DATABASE_URI"`
	AuthSecret   string        `env:"AUTH_SECRET"`
	ShareBaseURL string        `env:"SHARE_BASE_URL"`
	TokenTTL     time.Duration `env:"TOKEN_TTL"`
	AuthRPS      float64       `env:"AUTH_RPS"`   // sign-in и подтверждение, запросов в секунду на IP
	AuthBurst    int           `env:"AUTH_BURST"` // всплеск для AuthRPS

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	APIVersion  string `env:"API_VERSION"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Client-side settings
	ServerURL       string        `env:"API_URL"` // full URL; overrides BASE_URL/ENABLE_HTTPS when set
	Phone           string        `env:"WISHLISTX_PHONE"`
	Password        string        `env:"WISHLISTX_PASSWORD"`
	DeviceName      string        `env:"DEVICE_NAME"`
	StoreBackend    string        `env:"STORE_BACKEND"`
	StorePath       string        `env:"STORE_PATH"`
	RedisURL        string        `env:"REDIS_URL"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT"`
	RequestsPerSec  float64       `env:"API_RPS"`
	SharePattern    string        `env:"SHARE_URL_PATTERN"`
	ExtractorURL    string        `env:"EXTRACTOR_URL"`
	ExtractorAPIKey string        `env:"EXTRACTOR_API_KEY"`
	ExtractorModel  string        `env:"EXTRACTOR_MODEL"`
	LogFile         string        `env:"LOG_FILE"`
	Version         bool          `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют значения из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres://... or sqlite file path)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret used to sign JWT tokens")
	flag.StringVar(&cfg.ShareBaseURL, "share-base-url", cfg.ShareBaseURL, "public base URL for share links")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the WishlistX API (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for BaseURL")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	// Client flags
	flag.StringVar(&cfg.ServerURL, "api-url", cfg.ServerURL, "full API URL, overrides --base-url")
	flag.StringVar(&cfg.Phone, "phone", cfg.Phone, "account phone used for silent sign-in")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "account password used for silent sign-in")
	flag.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "token store backend: fs|sqlite|redis")
	flag.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "directory (fs) or file (sqlite) of the token store")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to a rotating file")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills empty settings and derives ServerURL.
func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.AuthRPS <= 0 {
		cfg.AuthRPS = DefaultAuthRPS
	}
	if cfg.AuthBurst <= 0 {
		cfg.AuthBurst = DefaultAuthBurst
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "1.1"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = "wxcli"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.SharePattern == "" {
		cfg.SharePattern = `^https?://`
	}
	if cfg.ExtractorModel == "" {
		cfg.ExtractorModel = "gpt-4o-mini"
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.ServerURL == "" {
		if cfg.EnableHTTPS {
			cfg.ServerURL = "https://" + cfg.BaseURL
		} else {
			cfg.ServerURL = "http://" + cfg.BaseURL
		}
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = cfg.ServerURL + "/s"
	}

	switch cfg.StoreBackend {
	case StoreFS, StoreSQLite, StoreRedis:
	default:
		cfg.StoreBackend = StoreFS
	}
	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, _ = os.UserHomeDir()
		}
		switch cfg.StoreBackend {
		case StoreSQLite:
			cfg.StorePath = filepath.Join(dir, "WishlistX", "store.sqlite")
		default:
			cfg.StorePath = filepath.Join(dir, "WishlistX")
		}
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
}

// HasCredentials reports whether preferences carry a phone and password for silent sign-in.
func (cfg *Config) HasCredentials() bool {
	return cfg.Phone != "" && cfg.Password != ""
}
