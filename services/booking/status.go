package booking

import (
	"glowbook/models"
	"glowbook/utils"
)

// validStatuses is the closed set of booking statuses the platform accepts.
var validStatuses = map[string]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCompleted: true,
	models.BookingCancelled: true,
}

// validateTransition enforces the booking state machine:
// pending -> confirmed -> completed, and any non-terminal state -> cancelled.
// cancelled and completed are terminal.
func validateTransition(from, to string) error {
	if !validStatuses[to] {
		return utils.Errorf(utils.KindInvalidInput, "unknown booking status %q", to)
	}
	if from == to {
		return nil
	}
	switch from {
	case models.BookingPending:
		if to == models.BookingConfirmed || to == models.BookingCancelled {
			return nil
		}
	case models.BookingConfirmed:
		if to == models.BookingCompleted || to == models.BookingCancelled {
			return nil
		}
	}
	return utils.Errorf(utils.KindInvalidTransition, "cannot transition booking from %s to %s", from, to)
}
