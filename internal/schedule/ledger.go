package schedule

import (
	"time"

	"github.com/fadecall/booking-api/internal/models"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open intervals: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict tests a candidate interval against the barber's existing
// bookings. Every active booking is padded by the buffer on both ends;
// a candidate touching exactly at the buffer edge is permitted.
// Cancelled and declined bookings never conflict.
func HasConflict(existing []models.Booking, start, end time.Time, buffer time.Duration) bool {
	for _, b := range existing {
		if !IsActive(Status(b.Status)) {
			continue
		}
		if Overlaps(start, end, b.StartTime.Add(-buffer), b.EndTime.Add(buffer)) {
			return true
		}
	}
	return false
}

// MarkBooked returns a copy of the grid with Booked set on every slot
// that intersects a buffer-padded active booking. The input is not
// mutated.
func MarkBooked(slots []TimeSlot, existing []models.Booking, buffer time.Duration) []TimeSlot {
	out := make([]TimeSlot, len(slots))
	copy(out, slots)

	for i := range out {
		out[i].Booked = HasConflict(existing, out[i].Start, out[i].End, buffer)
	}

	return out
}

// OpenOnly filters a marked grid down to bookable slots.
func OpenOnly(slots []TimeSlot) []TimeSlot {
	open := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !s.Booked {
			open = append(open, s)
		}
	}
	return open
}
