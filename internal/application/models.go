package application

import "time"

// User represents a registered account exposed by the application services.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Profile is the public projection of a user returned to clients.
type Profile struct {
	Name  string
	Email string
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// LoginParams captures the data required to authenticate or register a user.
type LoginParams struct {
	Name     string
	Email    string
	Password string
}

// Room represents a bookable meeting room.
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

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name            string
	Capacity        string
	Floor           string
	Equipment       []string
	CustomEquipment []string
	Description     string
	CreatorName     string
	CreatorEmail    string
}

// Reservation represents a booked one-hour slot.
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

// ReservationInput captures caller provided booking fields. Duration is in
// hours; zero defaults to a single slot and 8 books the full day.
type ReservationInput struct {
	RoomID    string
	RoomName  string
	Date      string
	Time      string
	UserName  string
	UserEmail string
	Duration  int
}
