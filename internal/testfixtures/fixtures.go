// Package testfixtures provides deterministic clocks, ID generators, and
// sample data for tests.
package testfixtures

import (
	"fmt"
	"time"

	"github.com/olivier-loorius/reza-server/internal/application"
)

// FixedClock returns a clock function frozen at the given instant.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// DefaultClockTime is the instant used by fixtures when nothing else matters.
var DefaultClockTime = time.Date(2025, time.March, 10, 8, 30, 0, 0, time.UTC)

// SequentialIDs returns an ID generator producing prefix-1, prefix-2, and so
// on. Not safe for concurrent use; tests drive services sequentially.
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// SampleRoomInput returns a valid room creation payload.
func SampleRoomInput() application.RoomInput {
	return application.RoomInput{
		Name:         "Salle Ada",
		Capacity:     "8",
		Floor:        "2",
		Equipment:    []string{"Écran", "Visio"},
		Description:  "Salle de réunion du deuxième étage",
		CreatorName:  "Olivier",
		CreatorEmail: "olivier@reza.fr",
	}
}

// SampleReservationInput returns a valid single-slot booking payload for the
// given room.
func SampleReservationInput(roomID string) application.ReservationInput {
	return application.ReservationInput{
		RoomID:    roomID,
		RoomName:  "Salle Ada",
		Date:      "2025-03-12",
		Time:      "10:00",
		UserName:  "Olivier",
		UserEmail: "olivier@reza.fr",
	}
}

// SampleLoginParams returns a valid login payload.
func SampleLoginParams() application.LoginParams {
	return application.LoginParams{
		Name:     "Olivier",
		Email:    "olivier@reza.fr",
		Password: "motdepasse",
	}
}
