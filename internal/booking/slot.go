package booking

import (
	"fmt"
	"time"
)

// Bookable hours run from OpeningHour to ClosingHour inclusive, matching the
// slot grid the mobile client renders.
const (
	OpeningHour = 9
	ClosingHour = 20
)

// FullDayDuration is the sentinel duration meaning "book every hour of the
// day", regardless of the requested start time.
const FullDayDuration = 8

// Reservation is the minimal view of an existing reservation needed for
// conflict detection.
type Reservation struct {
	ID   string
	Date string
	Time string
}

// Conflict identifies an existing reservation that blocks a candidate booking.
type Conflict struct {
	WithReservationID string
	Date              string
	Time              string
}

// Hours returns the bookable hours in slot notation ("09:00" … "20:00").
func Hours() []string {
	hours := make([]string, 0, ClosingHour-OpeningHour+1)
	for h := OpeningHour; h <= ClosingHour; h++ {
		hours = append(hours, formatHour(h))
	}
	return hours
}

// ValidDate reports whether value is an ISO calendar date (YYYY-MM-DD).
func ValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidTime reports whether value names one of the bookable hourly slots.
func ValidTime(value string) bool {
	hour, ok := parseHour(value)
	return ok && hour >= OpeningHour && hour <= ClosingHour
}

// ValidDuration reports whether the client may request this duration. The
// grid offers 1 to 4 hours plus the full-day option.
func ValidDuration(duration int) bool {
	switch duration {
	case 1, 2, 3, 4, FullDayDuration:
		return true
	}
	return false
}

// IsFullDay reports whether the duration books the whole day.
func IsFullDay(duration int) bool {
	return duration == FullDayDuration
}

// ExpandHours expands a booking starting at start for duration hours into the
// individual hourly slots it occupies. A full-day duration yields every
// bookable hour. A partial booking must finish by the closing slot.
func ExpandHours(start string, duration int) ([]string, error) {
	if !ValidDuration(duration) {
		return nil, fmt.Errorf("booking: unsupported duration %d", duration)
	}
	if IsFullDay(duration) {
		return Hours(), nil
	}

	first, ok := parseHour(start)
	if !ok || first < OpeningHour || first > ClosingHour {
		return nil, fmt.Errorf("booking: invalid start time %q", start)
	}
	if first+duration-1 > ClosingHour {
		return nil, fmt.Errorf("booking: %d hour booking starting at %s runs past %s", duration, start, formatHour(ClosingHour))
	}

	hours := make([]string, 0, duration)
	for i := 0; i < duration; i++ {
		hours = append(hours, formatHour(first+i))
	}
	return hours, nil
}

// DetectConflicts returns the existing reservations that collide with a
// candidate booking for the given date and hours. A full-day candidate
// conflicts with any reservation on that date; a partial candidate conflicts
// only when one of its hours is already held.
func DetectConflicts(existing []Reservation, date string, hours []string, fullDay bool) []Conflict {
	var conflicts []Conflict
	wanted := make(map[string]struct{}, len(hours))
	for _, hour := range hours {
		wanted[hour] = struct{}{}
	}

	for _, reservation := range existing {
		if reservation.Date != date {
			continue
		}
		if !fullDay {
			if _, ok := wanted[reservation.Time]; !ok {
				continue
			}
		}
		conflicts = append(conflicts, Conflict{
			WithReservationID: reservation.ID,
			Date:              reservation.Date,
			Time:              reservation.Time,
		})
	}

	return conflicts
}

func parseHour(value string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hour, &minute); err != nil {
		return 0, false
	}
	if minute != 0 || hour < 0 || hour > 23 {
		return 0, false
	}
	if value != formatHour(hour) {
		return 0, false
	}
	return hour, true
}

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
