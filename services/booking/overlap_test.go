package booking

import (
	"testing"
	"time"

	"glowbook/models"
)

func mkBooking(id string, start time.Time, minutes int) models.Booking {
	return models.Booking{
		ID:              id,
		Start:           start,
		DurationMinutes: minutes,
		Status:          models.BookingConfirmed,
	}
}

func TestFindConflict_EmptyCalendar(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if c := FindConflict(start, time.Hour, nil); c != nil {
		t.Fatalf("expected no conflict on empty calendar, got %v", c.ID)
	}
}

func TestFindConflict_Overlapping(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := []models.Booking{mkBooking("b1", base, 60)}

	cases := []struct {
		name  string
		start time.Time
		dur   time.Duration
	}{
		{"identical interval", base, time.Hour},
		{"starts inside", base.Add(30 * time.Minute), time.Hour},
		{"ends inside", base.Add(-30 * time.Minute), time.Hour},
		{"fully contains", base.Add(-15 * time.Minute), 90 * time.Minute},
		{"fully contained", base.Add(15 * time.Minute), 30 * time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := FindConflict(tc.start, tc.dur, existing)
			if c == nil {
				t.Fatal("expected a conflict")
			}
			if c.ID != "b1" {
				t.Fatalf("expected conflict with b1, got %s", c.ID)
			}
		})
	}
}

func TestFindConflict_TouchingEndpointsAdmitted(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := []models.Booking{mkBooking("b1", base, 60)}

	// Intervals are half-open: back-to-back bookings are fine.
	if c := FindConflict(base.Add(time.Hour), time.Hour, existing); c != nil {
		t.Fatalf("booking starting at previous end should be admitted, conflicted with %s", c.ID)
	}
	if c := FindConflict(base.Add(-time.Hour), time.Hour, existing); c != nil {
		t.Fatalf("booking ending at next start should be admitted, conflicted with %s", c.ID)
	}
}

func TestFindConflict_UsesStoredDuration(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	// A 30 minute booking occupies [9:00, 9:30) regardless of what the
	// service's current duration might be.
	existing := []models.Booking{mkBooking("b1", base, 30)}

	if c := FindConflict(base.Add(30*time.Minute), time.Hour, existing); c != nil {
		t.Fatalf("slot after the stored interval should be admitted, conflicted with %s", c.ID)
	}
	if c := FindConflict(base.Add(15*time.Minute), time.Hour, existing); c == nil {
		t.Fatal("slot inside the stored interval should conflict")
	}
}

func TestFindConflict_ReturnsFirstMatch(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := []models.Booking{
		mkBooking("b1", base, 60),
		mkBooking("b2", base.Add(time.Hour), 60),
	}
	c := FindConflict(base.Add(90*time.Minute), time.Hour, existing)
	if c == nil || c.ID != "b2" {
		t.Fatalf("expected conflict with b2, got %v", c)
	}
}
