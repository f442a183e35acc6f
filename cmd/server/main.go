package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"WishlistX/internal/config"
	"WishlistX/internal/handlers"
	"WishlistX/internal/middleware"
	"WishlistX/internal/repo"
	"WishlistX/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	//context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	wishlistRepo := repo.NewWishlistRepository(gormDB)
	favoriteRepo := repo.NewFavoriteRepository(gormDB)
	shareRepo := repo.NewShareRepository(gormDB)

	userService := service.NewUserService(userRepo, sugar)
	wishlistService := service.NewWishlistService(wishlistRepo, favoriteRepo, shareRepo, cfg.ShareBaseURL, sugar)
	favoriteService := service.NewFavoriteService(favoriteRepo, wishlistRepo, sugar)

	h := handlers.NewHandler(userService, wishlistService, favoriteService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"ShareBaseURL", cfg.ShareBaseURL,
		"TokenTTL", cfg.TokenTTL,
	)

	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
