package booking

import (
	"fmt"
	"time"
)

// CheckAvailability decides whether a show starting at start can be booked
// for an artist whose window is [from, to].  When either bound is absent
// the artist is unconstrained.  Both bounds are inclusive.  The returned
// error carries the window so the caller can report it verbatim.
func CheckAvailability(from, to *time.Time, start time.Time) error {
	if from == nil || to == nil {
		return nil
	}
	if start.Before(*from) || start.After(*to) {
		return &Error{
			Kind: KindAvailabilityConflict,
			Message: fmt.Sprintf("Cannot book shows outside artist availability, Artist is available from %s to %s",
				FormatStorage(*from), FormatStorage(*to)),
			Window: &Window{From: from.UTC(), To: to.UTC()},
		}
	}
	return nil
}
