package handlers

import (
	"net/http"

	"WishlistX/internal/config"
	"WishlistX/internal/middleware"
	"WishlistX/internal/model"
	"WishlistX/internal/service"

	"go.uber.org/zap"
)

// AuthHandler — регистрация, подтверждение и вход.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

func userView(u *model.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"phone":      u.Phone,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

// Signup регистрация (POST /auth)
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.Logger.Warnw("Signup: invalid form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	user, err := h.UserService.Register(r.Context(), service.SignupInput{
		Email:                r.FormValue("email"),
		FirstName:            r.FormValue("first_name"),
		LastName:             r.FormValue("last_name"),
		Password:             r.FormValue("password"),
		PasswordConfirmation: r.FormValue("password_confirmation"),
		Phone:                r.FormValue("phone"),
	})
	if err != nil {
		writeServiceError(w, h.Logger, "Signup", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": userView(user)})
}

// SignIn вход по телефону и паролю (POST /auth/sign_in); токен в заголовке authorization
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.Logger.Warnw("SignIn: invalid form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	user, err := h.UserService.Login(r.Context(), r.FormValue("phone"), r.FormValue("password"))
	if err != nil {
		writeServiceError(w, h.Logger, "SignIn", err)
		return
	}
	if err := middleware.SetAuthHeader(w, user.ID, h.Config.AuthSecret, h.Config.TokenTTL); err != nil {
		h.Logger.Errorw("SignIn: issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Logger.Infow("signed in", "user_id", user.ID, "device", r.FormValue("device_name"))
	writeJSON(w, http.StatusOK, map[string]any{"user": userView(user)})
}

// Confirm подтверждение телефона кодом (GET /auth/confirmation?confirmation_token=)
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Confirm(r.Context(), r.URL.Query().Get("confirmation_token"))
	if err != nil {
		writeServiceError(w, h.Logger, "Confirm", err)
		return
	}
	if err := middleware.SetAuthHeader(w, user.ID, h.Config.AuthSecret, h.Config.TokenTTL); err != nil {
		h.Logger.Errorw("Confirm: issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": userView(user)})
}
