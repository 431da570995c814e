package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olivier-loorius/reza-server/internal/booking"
	"github.com/olivier-loorius/reza-server/internal/persistence"
)

// ReservationRepository captures the persistence interactions needed by the
// booking service. CreateReservations is atomic over the whole batch.
type ReservationRepository interface {
	CreateReservations(ctx context.Context, reservations []Reservation) ([]Reservation, error)
	ListReservations(ctx context.Context) ([]Reservation, error)
	ListReservationsForRoom(ctx context.Context, roomID string) ([]Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// BookingService enforces the one genuine domain rule: a room cannot hold
// two reservations for the same (date, time) slot.
type BookingService struct {
	reservations ReservationRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(reservations ReservationRepository, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(reservations, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(reservations ReservationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		reservations: reservations,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateReservation books the requested slots. A duration above one hour is
// expanded server side and persisted in a single atomic batch: either every
// hourly slot is written or none is. The conflict check runs against the
// room's existing reservations, and the storage layer's slot uniqueness is
// the backstop for concurrent bookings of the same slot.
func (s *BookingService) CreateReservation(ctx context.Context, input ReservationInput) (reservations []Reservation, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.reservations == nil {
		err = fmt.Errorf("reservation repository not configured")
		return
	}

	duration := input.Duration
	if duration == 0 {
		duration = 1
	}

	logger := s.loggerWith(ctx, "CreateReservation",
		"room_id", input.RoomID,
		"date", input.Date,
		"time", input.Time,
		"duration", duration,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("slot_count", len(reservations)).InfoContext(ctx, "reservation created")
	}()

	if err = validateReservationInput(input, duration); err != nil {
		return
	}

	hours, expandErr := booking.ExpandHours(input.Time, duration)
	if expandErr != nil {
		vErr := &ValidationError{}
		vErr.add("duration", expandErr.Error())
		err = vErr
		return
	}

	existing, listErr := s.reservations.ListReservationsForRoom(ctx, input.RoomID)
	if listErr != nil {
		err = listErr
		return
	}

	conflicts := booking.DetectConflicts(toBookingViews(existing), input.Date, hours, booking.IsFullDay(duration))
	if len(conflicts) > 0 {
		logger.With("conflict_count", len(conflicts)).WarnContext(ctx, "slot already reserved")
		err = ErrSlotConflict
		return
	}

	createdAt := s.now()
	batch := make([]Reservation, 0, len(hours))
	for _, hour := range hours {
		batch = append(batch, Reservation{
			ID:        s.idGenerator(),
			RoomID:    input.RoomID,
			RoomName:  strings.TrimSpace(input.RoomName),
			Date:      input.Date,
			Time:      hour,
			UserName:  strings.TrimSpace(input.UserName),
			UserEmail: strings.TrimSpace(input.UserEmail),
			CreatedAt: createdAt,
		})
	}

	reservations, err = s.reservations.CreateReservations(ctx, batch)
	if err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			err = ErrSlotConflict
		}
		return
	}

	return
}

// ListReservations returns every reservation across all rooms.
func (s *BookingService) ListReservations(ctx context.Context) (reservations []Reservation, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.reservations == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListReservations")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list reservations", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(reservations)).InfoContext(ctx, "reservations listed")
	}()

	reservations, err = s.reservations.ListReservations(ctx)
	return
}

// ListReservationsForRoom returns the reservations held on a single room,
// used by the client to render busy slots.
func (s *BookingService) ListReservationsForRoom(ctx context.Context, roomID string) (reservations []Reservation, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.reservations == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListReservationsForRoom", "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list reservations for room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(reservations)).InfoContext(ctx, "room reservations listed")
	}()

	reservations, err = s.reservations.ListReservationsForRoom(ctx, roomID)
	return
}

// DeleteReservation cancels a reservation by id. Cancellation is a hard
// delete; no history is kept. The API accepts any valid id from any caller,
// matching the original contract.
func (s *BookingService) DeleteReservation(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.reservations == nil {
		return fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteReservation", "reservation_id", id)

	if err := s.reservations.DeleteReservation(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to delete reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reservation deleted")
	return nil
}

func validateReservationInput(input ReservationInput, duration int) error {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("roomId", "roomId is required")
	}
	if strings.TrimSpace(input.RoomName) == "" {
		vErr.add("roomName", "roomName is required")
	}
	if strings.TrimSpace(input.UserName) == "" {
		vErr.add("userName", "userName is required")
	}
	if strings.TrimSpace(input.UserEmail) == "" {
		vErr.add("userEmail", "userEmail is required")
	}

	switch {
	case strings.TrimSpace(input.Date) == "":
		vErr.add("date", "date is required")
	case !booking.ValidDate(input.Date):
		vErr.add("date", "date must be YYYY-MM-DD")
	}

	switch {
	case strings.TrimSpace(input.Time) == "":
		vErr.add("time", "time is required")
	case !booking.ValidTime(input.Time):
		vErr.add("time", "time must be an hourly slot between 09:00 and 20:00")
	}

	if !booking.ValidDuration(duration) {
		vErr.add("duration", "duration must be 1, 2, 3, 4 or 8 hours")
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func toBookingViews(reservations []Reservation) []booking.Reservation {
	if len(reservations) == 0 {
		return nil
	}
	views := make([]booking.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		views = append(views, booking.Reservation{
			ID:   reservation.ID,
			Date: reservation.Date,
			Time: reservation.Time,
		})
	}
	return views
}
