package persistence

import "context"

// UserRepository stores accounts registered through login.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// RoomRepository exposes the room catalog operations.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// ReservationRepository stores booked slots.
//
// CreateReservations must be atomic: either every reservation in the batch is
// persisted or none is. A batch that collides with an already held
// (room, date, time) slot fails with ErrDuplicate.
type ReservationRepository interface {
	CreateReservations(ctx context.Context, reservations []Reservation) error
	ListReservations(ctx context.Context) ([]Reservation, error)
	ListReservationsForRoom(ctx context.Context, roomID string) ([]Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}
