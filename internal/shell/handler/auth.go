package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/api"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/httputil"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// AuthHandler serves login, logout, registration, and the newsletter form.
type AuthHandler struct {
	api    *api.Client
	vault  *session.Vault
	logger *slog.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(apiClient *api.Client, vault *session.Vault, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{api: apiClient, vault: vault, logger: logger}
}

// loginResult is what a successful login returns to the caller: enough to
// route to the right dashboard.
type loginResult struct {
	User *session.User `json:"user"`
	Role session.Role  `json:"role"`
}

// LoginPrompt handles GET /login: the signed-out landing state guarded
// routes redirect to.
func (h *AuthHandler) LoginPrompt(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "please log in to continue"},
	})
}

// Login handles POST /login. Form validation runs client-side (here) before
// the backend sees the request; a validation failure never leaves the shell.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input api.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess, err := h.api.Login(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	role := h.vault.Role(r.Context())
	h.logger.InfoContext(r.Context(), "login succeeded",
		slog.String("username", input.Username),
		slog.String("role", string(role)),
	)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: loginResult{User: sess.User, Role: role},
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess, err := h.api.Register(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: loginResult{User: sess.User, Role: h.vault.Role(r.Context())},
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.api.Logout(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "signed out"},
	})
}

// Subscribe handles POST /newsletter/subscribe from the landing page.
func (h *AuthHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input api.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.api.SubscribeNewsletter(r.Context(), input); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "subscribed"},
	})
}
