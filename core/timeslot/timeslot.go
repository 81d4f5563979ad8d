// Package timeslot holds the half-open time range used for availability and
// the normalization every stored or intersected list goes through.
package timeslot

import (
	"fmt"
	"slices"
	"time"
)

// TimeSlot is the half-open range [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start_time" db:"start_time"`
	End   time.Time `json:"end_time" db:"end_time"`
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

func (s TimeSlot) Valid() bool {
	return s.Start.Before(s.End)
}

func (s TimeSlot) Equal(o TimeSlot) bool {
	return s.Start.Equal(o.Start) && s.End.Equal(o.End)
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("[%s, %s)", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
}

// Validate returns an error naming the first slot whose start is not before its end.
func Validate(slots []TimeSlot) error {
	for i, s := range slots {
		if !s.Valid() {
			return fmt.Errorf("slot %d: start_time %s must be before end_time %s",
				i, s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
		}
	}
	return nil
}

// Normalize returns the minimal sorted, pairwise-disjoint list covering the
// same time as slots. Slots that touch (next.Start == last.End) are merged.
// The input is not modified.
func Normalize(slots []TimeSlot) []TimeSlot {
	if len(slots) == 0 {
		return []TimeSlot{}
	}

	sorted := slices.Clone(slots)
	slices.SortFunc(sorted, func(a, b TimeSlot) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return a.End.Compare(b.End)
	})

	merged := []TimeSlot{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
			continue
		}
		merged = append(merged, current)
	}

	return merged
}

// Equal reports whether two lists hold the same ranges in the same order.
func Equal(a, b []TimeSlot) bool {
	return slices.EqualFunc(a, b, TimeSlot.Equal)
}

// Layouts accepted for incoming timestamps. The zone-less form is read in
// the caller-supplied default location.
const (
	LayoutLocal = "2006-01-02T15:04:05"
	LayoutShort = "2006-01-02T15:04"
)

// ParseTimestamp accepts RFC 3339 (with offset) or a zone-less local time.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{LayoutLocal, LayoutShort} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
