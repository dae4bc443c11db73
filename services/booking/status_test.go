package booking

import (
	"testing"

	"glowbook/models"
	"glowbook/utils"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from, to string
		wantKind utils.ErrorKind // empty means allowed
	}{
		{models.BookingPending, models.BookingConfirmed, ""},
		{models.BookingPending, models.BookingCancelled, ""},
		{models.BookingConfirmed, models.BookingCompleted, ""},
		{models.BookingConfirmed, models.BookingCancelled, ""},
		{models.BookingPending, models.BookingPending, ""},
		// Repeating the current status is an idempotent no-op, even for
		// terminal states.
		{models.BookingCompleted, models.BookingCompleted, ""},
		{models.BookingCancelled, models.BookingCancelled, ""},

		{models.BookingPending, models.BookingCompleted, utils.KindInvalidTransition},
		{models.BookingCompleted, models.BookingCancelled, utils.KindInvalidTransition},
		{models.BookingCancelled, models.BookingPending, utils.KindInvalidTransition},
		{models.BookingCancelled, models.BookingConfirmed, utils.KindInvalidTransition},
		{models.BookingCompleted, models.BookingPending, utils.KindInvalidTransition},
		{models.BookingConfirmed, models.BookingPending, utils.KindInvalidTransition},

		{models.BookingPending, "archived", utils.KindInvalidInput},
		{models.BookingPending, "", utils.KindInvalidInput},
	}

	for _, tc := range cases {
		err := validateTransition(tc.from, tc.to)
		if tc.wantKind == "" {
			if err != nil {
				t.Errorf("transition %s -> %s: unexpected error %v", tc.from, tc.to, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("transition %s -> %s: expected rejection", tc.from, tc.to)
			continue
		}
		if kind := utils.KindOf(err); kind != tc.wantKind {
			t.Errorf("transition %s -> %s: kind = %s, want %s", tc.from, tc.to, kind, tc.wantKind)
		}
	}
}
