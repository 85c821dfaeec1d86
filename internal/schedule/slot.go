package schedule

import "time"

type TimeSlot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Booked bool      `json:"booked"`
}

// SlotGrid generates the ordered candidate grid for one day window.
// Slots are duration long, start at windowStart and advance by interval;
// a slot is emitted only when it fits entirely inside the window. A
// duration longer than the window yields an empty grid, not an error.
func SlotGrid(windowStart, windowEnd time.Time, interval, duration time.Duration) []TimeSlot {
	if interval <= 0 || duration <= 0 {
		return nil
	}

	var slots []TimeSlot
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(interval) {
		slots = append(slots, TimeSlot{
			Start: cur,
			End:   cur.Add(duration),
		})
	}

	return slots
}
