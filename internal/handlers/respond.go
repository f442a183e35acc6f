package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"WishlistX/internal/model"
	"WishlistX/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxFormBytes — лимит тела multipart-запроса (картинка до 10 MiB плюс поля).
const maxFormBytes = 12 << 20

// writeJSON отвечает {"success": true, ...payload}.
func writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError отвечает {"success": false, "error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// writeServiceError переводит ошибку сервиса в HTTP-статус.
func writeServiceError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	var ie *service.InputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusUnprocessableEntity, ie.Err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrPhoneTaken):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidCode):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotConfirmed):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		log.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseForm читает multipart или urlencoded тело с ограничением размера.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	err := r.ParseMultipartForm(maxFormBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// pathID разбирает {id} из пути.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// optionalID разбирает необязательный id; пустая строка — nil.
func optionalID(s string) (*int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

// publicBase — схема и хост, по которым клиент обратился к серверу.
func publicBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

type imageDTO struct {
	URL string `json:"url"`
}

type favoriteDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TargetAmount string    `json:"target_amount"`
	Image        *imageDTO `json:"image,omitempty"`
	URL          string    `json:"url"`
	TrackingURL  *string   `json:"tracking_url,omitempty"`
	WishlistID   *int64    `json:"wishlist_id,omitempty"`
}

func toFavoriteDTOs(r *http.Request, favs []model.Favorite) []favoriteDTO {
	base := publicBase(r)
	out := make([]favoriteDTO, 0, len(favs))
	for i := range favs {
		out = append(out, toFavoriteDTO(base, &favs[i]))
	}
	return out
}

func toFavoriteDTO(base string, f *model.Favorite) favoriteDTO {
	dto := favoriteDTO{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		TargetAmount: f.TargetAmount,
		URL:          f.URL,
		TrackingURL:  f.TrackingURL,
		WishlistID:   f.WishlistID,
	}
	if f.ImageName != "" {
		dto.Image = &imageDTO{URL: base + "/images/" + strconv.FormatInt(f.ID, 10)}
	}
	return dto
}
