package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig bundles the handlers mounted on the API router.
type RouterConfig struct {
	Auth         *AuthHandler
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Logger       *slog.Logger
}

// NewRouter builds the HTTP routing table. CORS is open to all origins, as
// the mobile client is served from a different host.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)
	rsp := newResponder(logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		rsp.writeJSON(req.Context(), w, http.StatusOK, messageResponse{Success: true, Message: "Serveur RéZa opérationnel"})
	})

	if cfg.Auth != nil {
		r.Post("/login", cfg.Auth.Login)
	}

	if cfg.Rooms != nil {
		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", cfg.Rooms.ListRooms)
			r.Post("/", cfg.Rooms.CreateRoom)
			r.Delete("/{roomID}", cfg.Rooms.DeleteRoom)
		})
	}

	if cfg.Reservations != nil {
		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", cfg.Reservations.ListReservations)
			r.Post("/", cfg.Reservations.CreateReservation)
			r.Delete("/{reservationID}", cfg.Reservations.DeleteReservation)
			r.Get("/room/{roomID}", cfg.Reservations.ListReservationsForRoom)
		})
	}

	return r
}
