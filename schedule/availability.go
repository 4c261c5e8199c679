package schedule

import "time"

// EarliestAvailableStart returns the earliest legal start for a new shift
// proposed at proposed, or nil when proposed already respects the rest gap
// after every active shift that ends after it.
//
// Each such shift contributes a floor of End+RestThreshold; the result is
// the latest floor. Input order does not affect the result.
func EarliestAvailableStart(existing []Shift, proposed time.Time) *time.Time {
	if proposed.IsZero() {
		return nil
	}

	earliest := proposed
	for _, s := range activeShifts(existing) {
		if !s.End.After(proposed) {
			continue
		}
		if floor := s.End.Add(RestThreshold); floor.After(earliest) {
			earliest = floor
		}
	}

	if !earliest.After(proposed) {
		return nil
	}
	return &earliest
}
