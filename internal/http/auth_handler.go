package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olivier-loorius/reza-server/internal/application"
)

// AuthService captures the application operations needed by the auth handler.
type AuthService interface {
	Login(ctx context.Context, params application.LoginParams) (application.Profile, error)
}

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	service   AuthService
	responder responder
	logger    *slog.Logger
}

// NewAuthHandler creates an auth handler backed by the given service.
func NewAuthHandler(service AuthService, logger *slog.Logger) *AuthHandler {
	logger = defaultLogger(logger)
	return &AuthHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type loginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	User    profilePayload `json:"user"`
}

type profilePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login handles POST /login. An unknown email registers a new account, a
// known one must present the matching password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "AuthHandler", "Login")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "failed to decode login request", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	profile, err := h.service.Login(ctx, application.LoginParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, loginResponse{
		Success: true,
		User:    profilePayload{Name: profile.Name, Email: profile.Email},
	})
}
