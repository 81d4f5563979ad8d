package service

import (
	"iter"
	"slices"

	"planwise-api/core/timeslot"
)

// Intersect returns the common time of two normalized lists. Touching slots
// produce nothing since only ranges with start < end are emitted.
func Intersect(a, b []timeslot.TimeSlot) []timeslot.TimeSlot {
	out := []timeslot.TimeSlot{}
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start.After(start) {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End.Before(end) {
			end = b[j].End
		}
		if start.Before(end) {
			out = append(out, timeslot.TimeSlot{Start: start, End: end})
		}

		switch a[i].End.Compare(b[j].End) {
		case -1:
			i++
		case 1:
			j++
		default:
			i++
			j++
		}
	}

	return out
}

// IntersectSeq folds Intersect over participants pulled from seq. It stops
// pulling once the running result is empty. An empty seq yields an empty
// result.
func IntersectSeq(seq iter.Seq[[]timeslot.TimeSlot]) []timeslot.TimeSlot {
	var result []timeslot.TimeSlot
	seeded := false

	for slots := range seq {
		if !seeded {
			result = slices.Clone(slots)
			seeded = true
		} else {
			result = Intersect(result, slots)
		}
		if len(result) == 0 {
			break
		}
	}

	if result == nil {
		return []timeslot.TimeSlot{}
	}
	return result
}

func IntersectAll(lists [][]timeslot.TimeSlot) []timeslot.TimeSlot {
	return IntersectSeq(slices.Values(lists))
}
