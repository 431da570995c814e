package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olivier-loorius/reza-server/internal/application"
)

// RoomService captures the application operations needed by the room handler.
type RoomService interface {
	CreateRoom(ctx context.Context, input application.RoomInput) (application.Room, error)
	ListRooms(ctx context.Context) ([]application.Room, error)
	DeleteRoom(ctx context.Context, roomID, requesterEmail string) error
}

// RoomHandler serves the room catalog endpoints.
type RoomHandler struct {
	service   RoomService
	responder responder
	logger    *slog.Logger
}

// NewRoomHandler creates a room handler backed by the given service.
func NewRoomHandler(service RoomService, logger *slog.Logger) *RoomHandler {
	logger = defaultLogger(logger)
	return &RoomHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type roomPayload struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Capacity        string   `json:"capacity"`
	Floor           string   `json:"floor,omitempty"`
	Equipment       []string `json:"equipment"`
	CustomEquipment []string `json:"customEquipment,omitempty"`
	Description     string   `json:"description,omitempty"`
	CreatorName     string   `json:"creatorName,omitempty"`
	CreatorEmail    string   `json:"creatorEmail,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

type createRoomRequest struct {
	Name            string   `json:"name"`
	Capacity        string   `json:"capacity"`
	Floor           string   `json:"floor"`
	Equipment       []string `json:"equipment"`
	CustomEquipment []string `json:"customEquipment"`
	Description     string   `json:"description"`
	CreatorName     string   `json:"creatorName"`
	CreatorEmail    string   `json:"creatorEmail"`
}

type deleteRoomRequest struct {
	CreatorEmail string `json:"creatorEmail"`
}

type roomListResponse struct {
	Success bool          `json:"success"`
	Rooms   []roomPayload `json:"rooms"`
}

type roomCreatedResponse struct {
	Success bool        `json:"success"`
	Room    roomPayload `json:"room"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListRooms handles GET /rooms.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rooms, err := h.service.ListRooms(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := make([]roomPayload, 0, len(rooms))
	for _, room := range rooms {
		payload = append(payload, toRoomPayload(room))
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, roomListResponse{Success: true, Rooms: payload})
}

// CreateRoom handles POST /rooms.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "RoomHandler", "CreateRoom")

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "failed to decode room request", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	room, err := h.service.CreateRoom(ctx, application.RoomInput{
		Name:            req.Name,
		Capacity:        req.Capacity,
		Floor:           req.Floor,
		Equipment:       req.Equipment,
		CustomEquipment: req.CustomEquipment,
		Description:     req.Description,
		CreatorName:     req.CreatorName,
		CreatorEmail:    req.CreatorEmail,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, roomCreatedResponse{Success: true, Room: toRoomPayload(room)})
}

// DeleteRoom handles DELETE /rooms/{roomID}. The body carries the requester's
// email; only the recorded creator may delete.
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "RoomHandler", "DeleteRoom")

	roomID := strings.TrimSpace(chi.URLParam(r, "roomID"))
	if roomID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	// An absent body simply leaves creatorEmail empty, which the service
	// refuses with a 403.
	var req deleteRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.ErrorContext(ctx, "failed to decode delete request", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.service.DeleteRoom(ctx, roomID, req.CreatorEmail); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, messageResponse{Success: true, Message: "Salle supprimée avec succès"})
}

func toRoomPayload(room application.Room) roomPayload {
	equipment := room.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return roomPayload{
		ID:              room.ID,
		Name:            room.Name,
		Capacity:        room.Capacity,
		Floor:           room.Floor,
		Equipment:       equipment,
		CustomEquipment: room.CustomEquipment,
		Description:     room.Description,
		CreatorName:     room.CreatorName,
		CreatorEmail:    room.CreatorEmail,
		CreatedAt:       room.CreatedAt.UTC().Format(time.RFC3339),
	}
}
