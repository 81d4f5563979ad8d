package timeslot

import (
	"math/rand"
	"testing"
	"time"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slot(h1, m1, h2, m2 int) TimeSlot {
	return TimeSlot{Start: at(h1, m1), End: at(h2, m2)}
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestNormalize_MergesOverlapAndTouch(t *testing.T) {
	in := []TimeSlot{
		slot(13, 0, 14, 0),
		slot(9, 0, 10, 0),
		slot(9, 30, 11, 0),
		slot(11, 0, 12, 0), // touches the previous one
		slot(15, 0, 16, 0),
		slot(15, 15, 15, 45), // fully contained
	}

	got := Normalize(in)
	want := []TimeSlot{
		slot(9, 0, 12, 0),
		slot(13, 0, 14, 0),
		slot(15, 0, 16, 0),
	}
	if !Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []TimeSlot{slot(11, 0, 12, 0), slot(9, 0, 10, 0)}
	_ = Normalize(in)
	if !in[0].Equal(slot(11, 0, 12, 0)) || !in[1].Equal(slot(9, 0, 10, 0)) {
		t.Fatalf("input was modified: %v", in)
	}
}

func TestNormalize_KeepsGaps(t *testing.T) {
	in := []TimeSlot{slot(9, 0, 10, 0), slot(10, 1, 11, 0)}
	got := Normalize(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %v", got)
	}
}

func randomSlots(r *rand.Rand, n int) []TimeSlot {
	out := make([]TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		start := r.Intn(24 * 60)
		length := 1 + r.Intn(180)
		out = append(out, TimeSlot{
			Start: day.Add(time.Duration(start) * time.Minute),
			End:   day.Add(time.Duration(start+length) * time.Minute),
		})
	}
	return out
}

func TestNormalize_IdempotentSortedDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		in := randomSlots(r, r.Intn(12))
		once := Normalize(in)
		twice := Normalize(once)
		if !Equal(once, twice) {
			t.Fatalf("not idempotent:\nonce  %v\ntwice %v", once, twice)
		}
		for j := 1; j < len(once); j++ {
			if !once[j-1].End.Before(once[j].Start) {
				t.Fatalf("slots %d and %d overlap or touch: %v", j-1, j, once)
			}
		}
		for _, s := range once {
			if !s.Valid() {
				t.Fatalf("invalid slot in output: %v", s)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]TimeSlot{slot(9, 0, 10, 0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate([]TimeSlot{slot(9, 0, 10, 0), slot(10, 0, 10, 0)}); err == nil {
		t.Fatal("expected error for zero-length slot")
	}
	if err := Validate([]TimeSlot{slot(11, 0, 10, 0)}); err == nil {
		t.Fatal("expected error for inverted slot")
	}
}

func TestParseTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	got, err := ParseTimestamp("2025-03-10T09:00:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 08:00 UTC, got %s", got.UTC())
	}

	got, err = ParseTimestamp("2025-03-10T09:00:00+02:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 07:00 UTC, got %s", got.UTC())
	}

	if _, err := ParseTimestamp("next tuesday", loc); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
