package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/olivier-loorius/reza-server/internal/application"
)

var (
	errBadRequestBody       = errors.New("Format de requête invalide")
	errInvalidRoomID        = errors.New("Identifiant de salle invalide")
	errInvalidReservationID = errors.New("Identifiant de réservation invalide")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps application errors onto the HTTP error taxonomy:
// MissingFields 400, InvalidCredentials 401, Forbidden 403, NotFound 404,
// SlotConflict 409, everything else 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
		return
	}

	r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err, "error_kind", application.ErrorKind(err))

	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Message: "Mot de passe incorrect"})
	case errors.Is(err, application.ErrForbidden):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{Message: "Seul le créateur de la salle peut la supprimer"})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: localizedStatusMessage(http.StatusNotFound)})
	case errors.Is(err, application.ErrSlotConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Ce créneau est déjà réservé"})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
				Message: validationMessage(vErr),
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requête invalide"
	case http.StatusUnauthorized:
		return "Mot de passe incorrect"
	case http.StatusForbidden:
		return "Action non autorisée"
	case http.StatusNotFound:
		return "Ressource introuvable"
	case http.StatusConflict:
		return "Ce créneau est déjà réservé"
	default:
		return "Erreur serveur"
	}
}

// validationMessage builds the single user-facing message the mobile client
// displays. The login form keeps its historical wording.
func validationMessage(vErr *application.ValidationError) string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return localizedStatusMessage(http.StatusBadRequest)
	}

	fields := make([]string, 0, len(vErr.FieldErrors))
	for field := range vErr.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	if isLoginFieldSet(fields) {
		return "Nom, email et mot de passe requis"
	}

	return "Champs obligatoires manquants ou invalides : " + strings.Join(fields, ", ")
}

func isLoginFieldSet(fields []string) bool {
	for _, field := range fields {
		switch field {
		case "name", "email", "password":
		default:
			return false
		}
	}
	return len(fields) > 0
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "name is required":
		return "Le nom est requis"
	case "email is required":
		return "L'email est requis"
	case "password is required":
		return "Le mot de passe est requis"
	case "capacity is required":
		return "La capacité est requise"
	case "roomId is required":
		return "L'identifiant de la salle est requis"
	case "roomName is required":
		return "Le nom de la salle est requis"
	case "userName is required":
		return "Le nom de l'utilisateur est requis"
	case "userEmail is required":
		return "L'email de l'utilisateur est requis"
	case "date is required":
		return "La date est requise"
	case "date must be YYYY-MM-DD":
		return "La date doit être au format AAAA-MM-JJ"
	case "time is required":
		return "L'heure est requise"
	case "time must be an hourly slot between 09:00 and 20:00":
		return "L'heure doit être un créneau entre 09:00 et 20:00"
	case "duration must be 1, 2, 3, 4 or 8 hours":
		return "La durée doit être de 1, 2, 3, 4 ou 8 heures"
	default:
		return message
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
