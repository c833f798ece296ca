package model

import "time"

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2)
// intersect. Back-to-back bookings (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
