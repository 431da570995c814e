package main

import (
	"context"
	"errors"

	"github.com/olivier-loorius/reza-server/internal/application"
	"github.com/olivier-loorius/reza-server/internal/persistence"
)

// credentialStoreAdapter exposes the user repository through the auth
// service's CredentialStore interface.
type credentialStoreAdapter struct {
	users persistence.UserRepository
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return application.UserCredentials{}, application.ErrNotFound
		}
		return application.UserCredentials{}, err
	}
	return toApplicationCredentials(user), nil
}

func (a *credentialStoreAdapter) CreateUser(ctx context.Context, creds application.UserCredentials) (application.UserCredentials, error) {
	user := persistence.User{
		ID:           creds.User.ID,
		Name:         creds.User.Name,
		Email:        creds.User.Email,
		PasswordHash: creds.PasswordHash,
		CreatedAt:    creds.User.CreatedAt,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return application.UserCredentials{}, err
	}
	return toApplicationCredentials(user), nil
}

func toApplicationCredentials(user persistence.User) application.UserCredentials {
	return application.UserCredentials{
		User: application.User{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		PasswordHash: user.PasswordHash,
	}
}

// roomRepositoryAdapter converts between the application and persistence room
// models.
type roomRepositoryAdapter struct {
	rooms persistence.RoomRepository
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.rooms.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	return room, nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	room, err := a.rooms.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(room), nil
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]application.Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toApplicationRoom(room))
	}
	return out, nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.rooms.DeleteRoom(ctx, id)
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:              room.ID,
		Name:            room.Name,
		Capacity:        room.Capacity,
		Floor:           room.Floor,
		Equipment:       room.Equipment,
		CustomEquipment: room.CustomEquipment,
		Description:     room.Description,
		CreatorName:     room.CreatorName,
		CreatorEmail:    room.CreatorEmail,
		CreatedAt:       room.CreatedAt,
	}
}

func toApplicationRoom(room persistence.Room) application.Room {
	return application.Room{
		ID:              room.ID,
		Name:            room.Name,
		Capacity:        room.Capacity,
		Floor:           room.Floor,
		Equipment:       room.Equipment,
		CustomEquipment: room.CustomEquipment,
		Description:     room.Description,
		CreatorName:     room.CreatorName,
		CreatorEmail:    room.CreatorEmail,
		CreatedAt:       room.CreatedAt,
	}
}

// reservationRepositoryAdapter converts between the application and
// persistence reservation models. The batch create keeps the storage layer's
// atomicity guarantee.
type reservationRepositoryAdapter struct {
	reservations persistence.ReservationRepository
}

func (a *reservationRepositoryAdapter) CreateReservations(ctx context.Context, reservations []application.Reservation) ([]application.Reservation, error) {
	batch := make([]persistence.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		batch = append(batch, toPersistenceReservation(reservation))
	}
	if err := a.reservations.CreateReservations(ctx, batch); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (a *reservationRepositoryAdapter) ListReservations(ctx context.Context) ([]application.Reservation, error) {
	reservations, err := a.reservations.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationReservations(reservations), nil
}

func (a *reservationRepositoryAdapter) ListReservationsForRoom(ctx context.Context, roomID string) ([]application.Reservation, error) {
	reservations, err := a.reservations.ListReservationsForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toApplicationReservations(reservations), nil
}

func (a *reservationRepositoryAdapter) DeleteReservation(ctx context.Context, id string) error {
	return a.reservations.DeleteReservation(ctx, id)
}

func toPersistenceReservation(reservation application.Reservation) persistence.Reservation {
	return persistence.Reservation{
		ID:        reservation.ID,
		RoomID:    reservation.RoomID,
		RoomName:  reservation.RoomName,
		Date:      reservation.Date,
		Time:      reservation.Time,
		UserName:  reservation.UserName,
		UserEmail: reservation.UserEmail,
		CreatedAt: reservation.CreatedAt,
	}
}

func toApplicationReservations(reservations []persistence.Reservation) []application.Reservation {
	out := make([]application.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, application.Reservation{
			ID:        reservation.ID,
			RoomID:    reservation.RoomID,
			RoomName:  reservation.RoomName,
			Date:      reservation.Date,
			Time:      reservation.Time,
			UserName:  reservation.UserName,
			UserEmail: reservation.UserEmail,
			CreatedAt: reservation.CreatedAt,
		})
	}
	return out
}
