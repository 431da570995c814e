package persistence

import "time"

// User represents an account created through the implicit login registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Room represents a bookable meeting room as submitted by the client.
//
// Capacity is kept as the raw string the mobile form sends; the server never
// computes with it.
type Room struct {
	ID              string
	Name            string
	Capacity        string
	Floor           string
	Equipment       []string
	CustomEquipment []string
	Description     string
	CreatorName     string
	CreatorEmail    string
	CreatedAt       time.Time
}

// Reservation represents a single one-hour slot held on a room.
//
// RoomName is a denormalized copy taken at booking time; RoomID is not a
// foreign key, so reservations survive the deletion of their room.
type Reservation struct {
	ID        string
	RoomID    string
	RoomName  string
	Date      string
	Time      string
	UserName  string
	UserEmail string
	CreatedAt time.Time
}
