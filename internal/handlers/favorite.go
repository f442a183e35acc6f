package handlers

import (
	"errors"
	"io"
	"net/http"

	"WishlistX/internal/config"
	"WishlistX/internal/middleware"
	"WishlistX/internal/service"

	"go.uber.org/zap"
)

// maxImageBytes — лимит картинки товара.
const maxImageBytes = 10 << 20

// FavoriteHandler — избранное пользователя.
type FavoriteHandler struct {
	FavoriteService *service.FavoriteService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, logger *zap.SugaredLogger, cfg *config.Config) *FavoriteHandler {
	return &FavoriteHandler{FavoriteService: favoriteService, Logger: logger, Config: cfg}
}

// List всё избранное (GET /favorites)
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	favs, err := h.FavoriteService.List(r.Context(), userID, nil)
	if err != nil {
		writeServiceError(w, h.Logger, "ListFavorites", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": toFavoriteDTOs(r, favs)})
}

// Create сохранение товара (POST /favorites, multipart с необязательным файлом favorite[image])
func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := parseForm(w, r); err != nil {
		h.Logger.Warnw("CreateFavorite: invalid form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	wishlistID, ok := optionalID(r.FormValue("favorite[wishlist_id]"))
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid favorite[wishlist_id]")
		return
	}
	in := service.FavoriteInput{
		Name:         r.FormValue("favorite[name]"),
		URL:          r.FormValue("favorite[url]"),
		Description:  r.FormValue("favorite[description]"),
		TargetAmount: r.FormValue("favorite[target_amount]"),
		FavoriteType: r.FormValue("favorite[favorite_type]"),
		TrackingURL:  r.FormValue("favorite[tracking_url]"),
		WishlistID:   wishlistID,
	}

	// Картинка файлом
	if file, header, err := r.FormFile("favorite[image]"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read image")
			return
		}
		if len(data) > maxImageBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		in.Image = data
		in.ImageName = header.Filename
		in.ImageType = header.Header.Get("Content-Type")
		if in.ImageType == "" || in.ImageType == "application/octet-stream" {
			in.ImageType = http.DetectContentType(data)
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid image part")
		return
	}

	fav, err := h.FavoriteService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, "CreateFavorite", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"favorite": toFavoriteDTO(publicBase(r), fav)})
}

// Update перемещение товара в wishlist (PATCH /favorites/{id}); пустой favorite[wishlist_id] открепляет
func (h *FavoriteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := parseForm(w, r); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	if _, present := r.Form["favorite[wishlist_id]"]; !present {
		writeError(w, http.StatusUnprocessableEntity, "favorite[wishlist_id] is required")
		return
	}
	wishlistID, ok := optionalID(r.FormValue("favorite[wishlist_id]"))
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid favorite[wishlist_id]")
		return
	}
	if err := h.FavoriteService.SetWishlist(r.Context(), userID, id, wishlistID); err != nil {
		writeServiceError(w, h.Logger, "UpdateFavorite", err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// Delete удаление товара (DELETE /favorites/{id})
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := h.FavoriteService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, "DeleteFavorite", err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// Image картинка товара (GET /images/{id}), без авторизации
func (h *FavoriteHandler) Image(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	fav, err := h.FavoriteService.Image(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "Image", err)
		return
	}
	w.Header().Set("Content-Type", fav.ImageType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(fav.Image)
}
