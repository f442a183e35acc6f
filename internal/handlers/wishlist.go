package handlers

import (
	"net/http"
	"strconv"

	"WishlistX/internal/config"
	"WishlistX/internal/middleware"
	"WishlistX/internal/model"
	"WishlistX/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistHandler — wishlist'ы и публичные ссылки.
type WishlistHandler struct {
	WishlistService *service.WishlistService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewWishlistHandler(wishlistService *service.WishlistService, logger *zap.SugaredLogger, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{WishlistService: wishlistService, Logger: logger, Config: cfg}
}

// List список wishlist'ов с количеством товаров (GET /wishlists)
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	lists, err := h.WishlistService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListWishlists", err)
		return
	}
	if lists == nil {
		lists = []model.WishlistSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"wishlists": lists})
}

// Create создание wishlist (POST /wishlists, поле wishlist[name])
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := parseForm(w, r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	wl, err := h.WishlistService.Create(r.Context(), userID, r.FormValue("wishlist[name]"))
	if err != nil {
		writeServiceError(w, h.Logger, "CreateWishlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"wishlist": map[string]any{"id": wl.ID, "name": wl.Name, "count": 0},
	})
}

// Get wishlist с товарами (GET /wishlists/{id})
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	wl, favs, err := h.WishlistService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, "GetWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wishlist": map[string]any{
			"id":        wl.ID,
			"name":      wl.Name,
			"count":     len(favs),
			"favorites": toFavoriteDTOs(r, favs),
		},
	})
}

// Delete удаление wishlist (DELETE /wishlists/{id}?delete_favorites=bool)
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	deleteFavorites := false
	if v := r.URL.Query().Get("delete_favorites"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "delete_favorites must be a boolean")
			return
		}
		deleteFavorites = b
	}
	if err := h.WishlistService.Delete(r.Context(), userID, id, deleteFavorites); err != nil {
		writeServiceError(w, h.Logger, "DeleteWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// Share публичная ссылка на wishlist (POST /shares, поле wishlist_id)
func (h *WishlistHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := parseForm(w, r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	id, ok := optionalID(r.FormValue("wishlist_id"))
	if !ok || id == nil {
		writeError(w, http.StatusUnprocessableEntity, "wishlist_id is required")
		return
	}
	link, err := h.WishlistService.Share(r.Context(), userID, *id)
	if err != nil {
		writeServiceError(w, h.Logger, "ShareWishlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"share": map[string]any{"wishlist_id": *id, "share_url": link},
	})
}

// Shared публичный просмотр wishlist по ссылке (GET /s/{slug})
func (h *WishlistHandler) Shared(w http.ResponseWriter, r *http.Request) {
	wl, favs, err := h.WishlistService.Shared(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.Logger, "Shared", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wishlist": map[string]any{
			"name":      wl.Name,
			"count":     len(favs),
			"favorites": toFavoriteDTOs(r, favs),
		},
	})
}
