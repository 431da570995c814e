package application

import (
	"context"
	"errors"
	"testing"

	"github.com/olivier-loorius/reza-server/internal/persistence"
)

type stubReservationRepository struct {
	byRoom map[string][]Reservation

	created   [][]Reservation
	deleted   []string
	createErr error
}

func newStubReservationRepository() *stubReservationRepository {
	return &stubReservationRepository{byRoom: make(map[string][]Reservation)}
}

func (s *stubReservationRepository) CreateReservations(ctx context.Context, reservations []Reservation) ([]Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, reservations)
	for _, reservation := range reservations {
		s.byRoom[reservation.RoomID] = append(s.byRoom[reservation.RoomID], reservation)
	}
	return reservations, nil
}

func (s *stubReservationRepository) ListReservations(ctx context.Context) ([]Reservation, error) {
	var all []Reservation
	for _, reservations := range s.byRoom {
		all = append(all, reservations...)
	}
	return all, nil
}

func (s *stubReservationRepository) ListReservationsForRoom(ctx context.Context, roomID string) ([]Reservation, error) {
	return s.byRoom[roomID], nil
}

func (s *stubReservationRepository) DeleteReservation(ctx context.Context, id string) error {
	for roomID, reservations := range s.byRoom {
		for i, reservation := range reservations {
			if reservation.ID == id {
				s.byRoom[roomID] = append(reservations[:i], reservations[i+1:]...)
				s.deleted = append(s.deleted, id)
				return nil
			}
		}
	}
	return persistence.ErrNotFound
}

func validInput() ReservationInput {
	return ReservationInput{
		RoomID:    "room-1",
		RoomName:  "Salle Ada",
		Date:      "2025-03-12",
		Time:      "10:00",
		UserName:  "Olivier",
		UserEmail: "olivier@reza.fr",
	}
}

func TestBookingServiceCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("books a single slot by default", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		reservations, err := service.CreateReservation(ctx, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reservations) != 1 {
			t.Fatalf("expected one slot, got %d", len(reservations))
		}
		if reservations[0].Time != "10:00" {
			t.Errorf("expected slot at 10:00, got %q", reservations[0].Time)
		}
		if reservations[0].ID != "id-1" {
			t.Errorf("expected generated id, got %q", reservations[0].ID)
		}
	})

	t.Run("expands a multi hour booking into consecutive slots", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		input := validInput()
		input.Duration = 3

		reservations, err := service.CreateReservation(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reservations) != 3 {
			t.Fatalf("expected three slots, got %d", len(reservations))
		}
		for i, want := range []string{"10:00", "11:00", "12:00"} {
			if reservations[i].Time != want {
				t.Errorf("slot %d: expected %q, got %q", i, want, reservations[i].Time)
			}
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one atomic batch, got %d", len(repo.created))
		}
	})

	t.Run("full day books every bookable hour", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		input := validInput()
		input.Duration = 8

		reservations, err := service.CreateReservation(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reservations) != 12 {
			t.Fatalf("expected twelve slots, got %d", len(reservations))
		}
		if reservations[0].Time != "09:00" || reservations[11].Time != "20:00" {
			t.Errorf("expected 09:00..20:00, got %q..%q", reservations[0].Time, reservations[11].Time)
		}
	})

	t.Run("refuses an already held slot", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		if _, err := service.CreateReservation(ctx, validInput()); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		_, err := service.CreateReservation(ctx, validInput())
		if !errors.Is(err, ErrSlotConflict) {
			t.Fatalf("expected ErrSlotConflict, got %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected no second batch, got %d", len(repo.created))
		}
	})

	t.Run("full day is refused when any hour is taken", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		taken := validInput()
		taken.Time = "15:00"
		if _, err := service.CreateReservation(ctx, taken); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		fullDay := validInput()
		fullDay.Duration = 8

		_, err := service.CreateReservation(ctx, fullDay)
		if !errors.Is(err, ErrSlotConflict) {
			t.Fatalf("expected ErrSlotConflict, got %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected no slots written, got %d batches", len(repo.created))
		}
	})

	t.Run("storage duplicate maps to a slot conflict", func(t *testing.T) {
		repo := newStubReservationRepository()
		repo.createErr = persistence.ErrDuplicate
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		_, err := service.CreateReservation(ctx, validInput())
		if !errors.Is(err, ErrSlotConflict) {
			t.Fatalf("expected ErrSlotConflict, got %v", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		_, err := service.CreateReservation(ctx, ReservationInput{Date: "12/03/2025", Time: "10h"})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"roomId", "roomName", "userName", "userEmail", "date", "time"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %q, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rejects a booking running past closing", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		input := validInput()
		input.Time = "19:00"
		input.Duration = 3

		_, err := service.CreateReservation(ctx, input)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["duration"]; !ok {
			t.Errorf("expected duration error, got %v", vErr.FieldErrors)
		}
		if len(repo.created) != 0 {
			t.Fatalf("expected nothing persisted, got %d", len(repo.created))
		}
	})
}

func TestBookingServiceDeleteReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing reservation", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		reservations, err := service.CreateReservation(ctx, validInput())
		if err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		if err := service.DeleteReservation(ctx, reservations[0].ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		remaining, err := service.ListReservationsForRoom(ctx, "room-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 0 {
			t.Fatalf("expected empty room, got %d reservations", len(remaining))
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newStubReservationRepository()
		service := NewBookingService(repo, sequentialIDs(), fixedClock)

		err := service.DeleteReservation(ctx, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
