package schedule

import (
	"testing"
	"time"

	"github.com/fadecall/booking-api/internal/models"
)

func booking(status string, start, end time.Time) models.Booking {
	return models.Booking{Status: status, StartTime: start, EndTime: end}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", day(10, 0), day(10, 30), day(10, 0), day(10, 30), true},
		{"contained", day(10, 0), day(11, 0), day(10, 15), day(10, 45), true},
		{"partial", day(10, 0), day(10, 30), day(10, 15), day(10, 45), true},
		{"touching end-to-start", day(10, 0), day(10, 30), day(10, 30), day(11, 0), false},
		{"touching start-to-end", day(10, 30), day(11, 0), day(10, 0), day(10, 30), false},
		{"disjoint", day(9, 0), day(9, 30), day(10, 0), day(10, 30), false},
	}

	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	a1, a2 := day(10, 0), day(10, 45)
	b1, b2 := day(10, 30), day(11, 0)
	if Overlaps(a1, a2, b1, b2) != Overlaps(b1, b2, a1, a2) {
		t.Fatalf("overlap check must be symmetric")
	}
}

func TestHasConflict_BufferBoundary(t *testing.T) {
	// Existing booking 10:00-10:30 with a 15 minute buffer keeps
	// 09:45-10:45 busy. A candidate starting exactly at 10:45 fits.
	existing := []models.Booking{booking("confirmed", day(10, 0), day(10, 30))}
	buffer := 15 * time.Minute

	if !HasConflict(existing, day(10, 30), day(11, 0), buffer) {
		t.Fatalf("10:30-11:00 should conflict inside the buffer")
	}
	if HasConflict(existing, day(10, 45), day(11, 15), buffer) {
		t.Fatalf("10:45-11:15 touches the buffer edge and should be allowed")
	}
	if !HasConflict(existing, day(9, 15), day(9, 46), buffer) {
		t.Fatalf("candidate ending inside the leading buffer should conflict")
	}
	if HasConflict(existing, day(9, 15), day(9, 45), buffer) {
		t.Fatalf("candidate ending exactly at the leading buffer edge should be allowed")
	}
}

func TestHasConflict_IgnoresInactive(t *testing.T) {
	existing := []models.Booking{
		booking("cancelled", day(10, 0), day(10, 30)),
		booking("declined", day(11, 0), day(11, 30)),
	}
	if HasConflict(existing, day(10, 0), day(10, 30), 15*time.Minute) {
		t.Fatalf("cancelled bookings must not conflict")
	}
	if HasConflict(existing, day(11, 0), day(11, 30), 0) {
		t.Fatalf("declined bookings must not conflict")
	}
}

func TestHasConflict_CompletedStillOccupies(t *testing.T) {
	existing := []models.Booking{booking("completed", day(10, 0), day(10, 30))}
	if !HasConflict(existing, day(10, 0), day(10, 30), 0) {
		t.Fatalf("completed bookings keep their interval")
	}
}

func TestMarkBooked(t *testing.T) {
	grid := SlotGrid(day(9, 0), day(11, 0), 30*time.Minute, 30*time.Minute)
	existing := []models.Booking{booking("confirmed", day(10, 0), day(10, 30))}

	marked := MarkBooked(grid, existing, 15*time.Minute)

	wantBooked := map[int]bool{
		0: false, // 09:00-09:30
		1: true,  // 09:30-10:00, inside the leading buffer
		2: true,  // 10:00-10:30, the booking itself
		3: true,  // 10:30-11:00, inside the trailing buffer
	}
	if len(marked) != len(wantBooked) {
		t.Fatalf("expected %d slots, got %d", len(wantBooked), len(marked))
	}
	for i, want := range wantBooked {
		if marked[i].Booked != want {
			t.Fatalf("slot %d (%s): Booked = %v, want %v",
				i, marked[i].Start.Format("15:04"), marked[i].Booked, want)
		}
	}

	for _, s := range grid {
		if s.Booked {
			t.Fatalf("MarkBooked mutated its input")
		}
	}
}

func TestOpenOnly(t *testing.T) {
	slots := []TimeSlot{
		{Start: day(9, 0), End: day(9, 30), Booked: false},
		{Start: day(9, 30), End: day(10, 0), Booked: true},
		{Start: day(10, 0), End: day(10, 30), Booked: false},
	}
	open := OpenOnly(slots)
	if len(open) != 2 {
		t.Fatalf("expected 2 open slots, got %d", len(open))
	}
	for _, s := range open {
		if s.Booked {
			t.Fatalf("booked slot leaked through OpenOnly")
		}
	}
}
