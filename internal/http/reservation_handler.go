package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olivier-loorius/reza-server/internal/application"
)

// BookingService captures the application operations needed by the
// reservation handler.
type BookingService interface {
	CreateReservation(ctx context.Context, input application.ReservationInput) ([]application.Reservation, error)
	ListReservations(ctx context.Context) ([]application.Reservation, error)
	ListReservationsForRoom(ctx context.Context, roomID string) ([]application.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// ReservationHandler serves the booking endpoints.
type ReservationHandler struct {
	service   BookingService
	responder responder
	logger    *slog.Logger
}

// NewReservationHandler creates a reservation handler backed by the given
// service.
func NewReservationHandler(service BookingService, logger *slog.Logger) *ReservationHandler {
	logger = defaultLogger(logger)
	return &ReservationHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type reservationPayload struct {
	ID        string `json:"id"`
	RoomID    string `json:"roomId"`
	RoomName  string `json:"roomName"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	CreatedAt string `json:"createdAt"`
}

type createReservationRequest struct {
	RoomID    string `json:"roomId"`
	RoomName  string `json:"roomName"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Duration  int    `json:"duration"`
}

type reservationListResponse struct {
	Success      bool                 `json:"success"`
	Reservations []reservationPayload `json:"reservations"`
}

// reservationCreatedResponse anchors on the first slot; a multi-hour booking
// additionally carries the whole batch.
type reservationCreatedResponse struct {
	Success      bool                 `json:"success"`
	Reservation  reservationPayload   `json:"reservation"`
	Reservations []reservationPayload `json:"reservations,omitempty"`
}

// ListReservations handles GET /reservations.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reservations, err := h.service.ListReservations(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, reservationListResponse{
		Success:      true,
		Reservations: toReservationPayloads(reservations),
	})
}

// ListReservationsForRoom handles GET /reservations/room/{roomID}.
func (h *ReservationHandler) ListReservationsForRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roomID := strings.TrimSpace(chi.URLParam(r, "roomID"))
	if roomID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	reservations, err := h.service.ListReservationsForRoom(ctx, roomID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, reservationListResponse{
		Success:      true,
		Reservations: toReservationPayloads(reservations),
	})
}

// CreateReservation handles POST /reservations. Without a duration the
// request books a single hourly slot; durations above one book consecutive
// hours atomically, and 8 books the whole day.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "ReservationHandler", "CreateReservation")

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "failed to decode reservation request", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	reservations, err := h.service.CreateReservation(ctx, application.ReservationInput{
		RoomID:    req.RoomID,
		RoomName:  req.RoomName,
		Date:      req.Date,
		Time:      req.Time,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Duration:  req.Duration,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}
	if len(reservations) == 0 {
		h.responder.writeError(ctx, w, http.StatusInternalServerError, nil)
		return
	}

	response := reservationCreatedResponse{
		Success:     true,
		Reservation: toReservationPayload(reservations[0]),
	}
	if len(reservations) > 1 {
		response.Reservations = toReservationPayloads(reservations)
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, response)
}

// DeleteReservation handles DELETE /reservations/{reservationID}.
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reservationID := strings.TrimSpace(chi.URLParam(r, "reservationID"))
	if reservationID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	if err := h.service.DeleteReservation(ctx, reservationID); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, messageResponse{Success: true, Message: "Réservation supprimée avec succès"})
}

func toReservationPayload(reservation application.Reservation) reservationPayload {
	return reservationPayload{
		ID:        reservation.ID,
		RoomID:    reservation.RoomID,
		RoomName:  reservation.RoomName,
		Date:      reservation.Date,
		Time:      reservation.Time,
		UserName:  reservation.UserName,
		UserEmail: reservation.UserEmail,
		CreatedAt: reservation.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReservationPayloads(reservations []application.Reservation) []reservationPayload {
	payload := make([]reservationPayload, 0, len(reservations))
	for _, reservation := range reservations {
		payload = append(payload, toReservationPayload(reservation))
	}
	return payload
}
