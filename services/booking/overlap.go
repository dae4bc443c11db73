package booking

import (
	"time"

	"glowbook/models"
)

// FindConflict reports whether a proposed interval [start, start+duration)
// collides with any of the existing bookings. Each existing interval is
// derived from the booking's own stored duration, never a live service
// lookup. Intervals are half-open, so touching endpoints do not conflict.
//
// The scan is O(n) per admission decision, which is fine at per-provider
// booking volumes; a higher-scale deployment would keep the same half-open
// semantics over a sorted index.
//
// Pure function: same inputs always produce the same decision.
func FindConflict(start time.Time, duration time.Duration, existing []models.Booking) *models.Booking {
	end := start.Add(duration)
	for i := range existing {
		existingStart := existing[i].Start
		existingEnd := existing[i].End()
		if start.Before(existingEnd) && end.After(existingStart) {
			return &existing[i]
		}
	}
	return nil
}
