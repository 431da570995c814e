// Package memory provides a mutex-guarded in-memory implementation of every
// repository interface. It backs the test suites and keeps the same slot
// uniqueness guarantee as the SQLite store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/olivier-loorius/reza-server/internal/persistence"
)

// Store holds all three entity collections behind one lock so that a
// reservation batch is checked and written atomically.
type Store struct {
	mu           sync.RWMutex
	users        map[string]persistence.User
	rooms        map[string]persistence.Room
	reservations map[string]persistence.Reservation
	slots        map[string]string // slot key -> reservation id
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]persistence.User),
		rooms:        make(map[string]persistence.Room),
		reservations: make(map[string]persistence.Reservation),
		slots:        make(map[string]string),
	}
}

// --- UserRepository implementation ---

// CreateUser stores a new user. Emails are unique.
func (s *Store) CreateUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return persistence.ErrDuplicate
	}
	lower := strings.ToLower(user.Email)
	for _, existing := range s.users {
		if strings.ToLower(existing.Email) == lower {
			return persistence.ErrDuplicate
		}
	}

	s.users[user.ID] = user
	return nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(email)
	for _, user := range s.users {
		if strings.ToLower(user.Email) == lower {
			return user, nil
		}
	}

	return persistence.User{}, persistence.ErrNotFound
}

// --- RoomRepository implementation ---

// CreateRoom stores a new room.
func (s *Store) CreateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return persistence.ErrDuplicate
	}

	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

// GetRoom retrieves a room by ID.
func (s *Store) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}

	return cloneRoom(room), nil
}

// ListRooms returns all rooms in creation order.
func (s *Store) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]persistence.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, cloneRoom(room))
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})

	return rooms, nil
}

// DeleteRoom removes a room by ID. Its reservations are kept, matching the
// original server.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return persistence.ErrNotFound
	}

	delete(s.rooms, id)
	return nil
}

// --- ReservationRepository implementation ---

// CreateReservations stores a batch of reservations atomically: every slot
// is checked before any write happens.
func (s *Store) CreateReservations(ctx context.Context, reservations []persistence.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(reservations))
	for _, reservation := range reservations {
		if _, ok := s.reservations[reservation.ID]; ok {
			return persistence.ErrDuplicate
		}
		key := slotKey(reservation.RoomID, reservation.Date, reservation.Time)
		if _, ok := s.slots[key]; ok {
			return persistence.ErrDuplicate
		}
		if _, ok := seen[key]; ok {
			return persistence.ErrDuplicate
		}
		seen[key] = struct{}{}
	}

	for _, reservation := range reservations {
		s.reservations[reservation.ID] = reservation
		s.slots[slotKey(reservation.RoomID, reservation.Date, reservation.Time)] = reservation.ID
	}

	return nil
}

// ListReservations returns all reservations in creation order.
func (s *Store) ListReservations(ctx context.Context) ([]persistence.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservations := make([]persistence.Reservation, 0, len(s.reservations))
	for _, reservation := range s.reservations {
		reservations = append(reservations, reservation)
	}

	sortReservations(reservations)
	return reservations, nil
}

// ListReservationsForRoom returns the reservations held on one room.
func (s *Store) ListReservationsForRoom(ctx context.Context, roomID string) ([]persistence.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservations := make([]persistence.Reservation, 0)
	for _, reservation := range s.reservations {
		if reservation.RoomID != roomID {
			continue
		}
		reservations = append(reservations, reservation)
	}

	sortReservations(reservations)
	return reservations, nil
}

// DeleteReservation removes a reservation by ID and frees its slot.
func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return persistence.ErrNotFound
	}

	delete(s.reservations, id)
	delete(s.slots, slotKey(reservation.RoomID, reservation.Date, reservation.Time))
	return nil
}

func slotKey(roomID, date, timeSlot string) string {
	return fmt.Sprintf("%s|%s|%s", roomID, date, timeSlot)
}

func sortReservations(reservations []persistence.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].CreatedAt.Equal(reservations[j].CreatedAt) {
			if reservations[i].Date == reservations[j].Date {
				if reservations[i].Time == reservations[j].Time {
					return reservations[i].ID < reservations[j].ID
				}
				return reservations[i].Time < reservations[j].Time
			}
			return reservations[i].Date < reservations[j].Date
		}
		return reservations[i].CreatedAt.Before(reservations[j].CreatedAt)
	})
}

func cloneRoom(room persistence.Room) persistence.Room {
	clone := room
	clone.Equipment = append([]string(nil), room.Equipment...)
	clone.CustomEquipment = append([]string(nil), room.CustomEquipment...)
	return clone
}
