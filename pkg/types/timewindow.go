package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeWindow is returned when a window is malformed or crosses midnight
	ErrInvalidTimeWindow = errors.New("invalid time window")
)

// TimeWindow is a half-open [Start, End) interval within a single day.
type TimeWindow struct {
	Start TimeString
	End   TimeString
}

// NewTimeWindow builds a window from "HH:MM" bounds.
// Start must be strictly before End; a window spanning midnight (e.g.
// 22:00-02:00) is invalid and must be represented as two windows.
func NewTimeWindow(start, end string) (TimeWindow, error) {
	s, err := NewTimeStringFromString(start)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: start %q: %v", ErrInvalidTimeWindow, start, err)
	}
	e, err := NewTimeStringFromString(end)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: end %q: %v", ErrInvalidTimeWindow, end, err)
	}

	w := TimeWindow{Start: s, End: e}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate checks both bounds and the Start < End ordering.
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: %s-%s (start must be before end)", ErrInvalidTimeWindow, w.Start, w.End)
	}
	return nil
}

// Overlaps reports whether the two half-open windows share any instant.
// Touching boundaries (a ends exactly where b starts) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// Contains reports whether inner lies entirely within w.
// Matching boundaries count as contained.
func (w TimeWindow) Contains(inner TimeWindow) bool {
	return !inner.Start.IsBefore(w.Start) && !w.End.IsBefore(inner.End)
}

// DurationMinutes returns the window length in minutes.
func (w TimeWindow) DurationMinutes() (int, error) {
	start, err := w.Start.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := w.End.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// Equal reports exact boundary equality.
func (w TimeWindow) Equal(other TimeWindow) bool {
	return w.Start == other.Start && w.End == other.End
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}
