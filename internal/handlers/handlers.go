package handlers

import (
	"WishlistX/internal/config"
	"WishlistX/internal/middleware"
	"WishlistX/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	wishlistService *service.WishlistService,
	favoriteService *service.FavoriteService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(userService, logger, config)
	wishlistHandler := NewWishlistHandler(wishlistService, logger, config)
	favoriteHandler := NewFavoriteHandler(favoriteService, logger, config)

	r.Handle("/metrics", promhttp.Handler())

	// Auth routes; вход и подтверждение ограничены по IP против перебора
	authLimiter := middleware.NewRateLimiter(authRate(config))
	r.Post("/auth", authHandler.Signup)
	r.With(authLimiter.Limit).Post("/auth/sign_in", authHandler.SignIn)
	r.With(authLimiter.Limit).Get("/auth/confirmation", authHandler.Confirm)

	// Public routes
	r.Get("/s/{slug}", wishlistHandler.Shared)
	r.Get("/images/{id}", favoriteHandler.Image)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/wishlists", wishlistHandler.List)
		r.Post("/wishlists", wishlistHandler.Create)
		r.Get("/wishlists/{id}", wishlistHandler.Get)
		r.Delete("/wishlists/{id}", wishlistHandler.Delete)
		r.Post("/shares", wishlistHandler.Share)

		r.Get("/favorites", favoriteHandler.List)
		r.Post("/favorites", favoriteHandler.Create)
		r.Patch("/favorites/{id}", favoriteHandler.Update)
		r.Delete("/favorites/{id}", favoriteHandler.Delete)
	})

	return &Handler{Router: r}
}

func authRate(cfg *config.Config) (rate.Limit, int) {
	rps, burst := cfg.AuthRPS, cfg.AuthBurst
	if rps <= 0 {
		rps = config.DefaultAuthRPS
	}
	if burst <= 0 {
		burst = config.DefaultAuthBurst
	}
	return rate.Limit(rps), burst
}
