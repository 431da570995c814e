package booking

import (
	"reflect"
	"testing"
)

func TestHours(t *testing.T) {
	hours := Hours()

	if len(hours) != 12 {
		t.Fatalf("expected 12 bookable hours, got %d", len(hours))
	}
	if hours[0] != "09:00" || hours[len(hours)-1] != "20:00" {
		t.Fatalf("expected hours from 09:00 to 20:00, got %s..%s", hours[0], hours[len(hours)-1])
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"2024-06-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"01/06/2024", false},
		{"2024-6-1", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidDate(tc.value); got != tc.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidTime(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"09:00", true},
		{"20:00", true},
		{"08:00", false},
		{"21:00", false},
		{"09:30", false},
		{"9:00", false},
		{"morning", false},
	}

	for _, tc := range cases {
		if got := ValidTime(tc.value); got != tc.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestExpandHours(t *testing.T) {
	t.Run("single hour", func(t *testing.T) {
		hours, err := ExpandHours("14:00", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(hours, []string{"14:00"}) {
			t.Fatalf("unexpected hours: %v", hours)
		}
	})

	t.Run("three hours", func(t *testing.T) {
		hours, err := ExpandHours("14:00", 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(hours, []string{"14:00", "15:00", "16:00"}) {
			t.Fatalf("unexpected hours: %v", hours)
		}
	})

	t.Run("full day ignores start time", func(t *testing.T) {
		hours, err := ExpandHours("15:00", FullDayDuration)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(hours, Hours()) {
			t.Fatalf("expected every bookable hour, got %v", hours)
		}
	})

	t.Run("booking ending at closing hour is allowed", func(t *testing.T) {
		hours, err := ExpandHours("17:00", 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hours[len(hours)-1] != "20:00" {
			t.Fatalf("expected last hour 20:00, got %s", hours[len(hours)-1])
		}
	})

	t.Run("booking past closing hour is rejected", func(t *testing.T) {
		if _, err := ExpandHours("19:00", 3); err == nil {
			t.Fatal("expected error for booking running past 20:00")
		}
	})

	t.Run("unsupported duration is rejected", func(t *testing.T) {
		if _, err := ExpandHours("09:00", 5); err == nil {
			t.Fatal("expected error for duration 5")
		}
		if _, err := ExpandHours("09:00", 0); err == nil {
			t.Fatal("expected error for duration 0")
		}
	})

	t.Run("invalid start time is rejected", func(t *testing.T) {
		if _, err := ExpandHours("08:00", 2); err == nil {
			t.Fatal("expected error for start before opening")
		}
	})
}

func TestDetectConflicts(t *testing.T) {
	existing := []Reservation{
		{ID: "r1", Date: "2024-06-01", Time: "14:00"},
		{ID: "r2", Date: "2024-06-01", Time: "18:00"},
		{ID: "r3", Date: "2024-06-02", Time: "09:00"},
	}

	t.Run("no conflict on a free slot", func(t *testing.T) {
		conflicts := DetectConflicts(existing, "2024-06-01", []string{"10:00"}, false)
		if len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %v", conflicts)
		}
	})

	t.Run("partial booking conflicts when any hour is held", func(t *testing.T) {
		conflicts := DetectConflicts(existing, "2024-06-01", []string{"13:00", "14:00", "15:00"}, false)
		if len(conflicts) != 1 {
			t.Fatalf("expected one conflict, got %v", conflicts)
		}
		if conflicts[0].WithReservationID != "r1" {
			t.Fatalf("expected conflict with r1, got %s", conflicts[0].WithReservationID)
		}
	})

	t.Run("full day conflicts with any reservation on the date", func(t *testing.T) {
		conflicts := DetectConflicts(existing, "2024-06-01", Hours(), true)
		if len(conflicts) != 2 {
			t.Fatalf("expected two conflicts, got %v", conflicts)
		}
	})

	t.Run("other dates never conflict", func(t *testing.T) {
		conflicts := DetectConflicts(existing, "2024-06-03", Hours(), true)
		if len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %v", conflicts)
		}
	})
}
