package schedule

import (
	"time"

	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
)

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// Calendar answers availability questions for one barber from the
// weekly template and the blocked-date set. It never consults sibling
// bookings; buffer handling belongs to the conflict check.
type Calendar struct {
	days    map[int]models.WeeklyAvailability
	blocked map[string]struct{}
}

func NewCalendar(days []models.WeeklyAvailability, blocked []models.BlockedDate) *Calendar {
	c := &Calendar{
		days:    make(map[int]models.WeeklyAvailability, len(days)),
		blocked: make(map[string]struct{}, len(blocked)),
	}
	for _, d := range days {
		c.days[d.Weekday] = d
	}
	for _, b := range blocked {
		c.blocked[b.Date] = struct{}{}
	}
	return c
}

// Window resolves the availability window for the given date in the
// date's location. A blocked date overrides the weekly template.
func (c *Calendar) Window(date time.Time) (start, end time.Time, ok bool) {
	if _, blocked := c.blocked[date.Format(DateLayout)]; blocked {
		return time.Time{}, time.Time{}, false
	}

	day, found := c.days[int(date.Weekday())]
	if !found || !day.Available {
		return time.Time{}, time.Time{}, false
	}

	start, err := atClock(date, day.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = atClock(date, day.EndTime)
	if err != nil || !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// IsAvailable fails closed: it is false when the instant's date has no
// window, when the instant precedes the window, or when the interval
// runs past the window's end.
func (c *Calendar) IsAvailable(at time.Time, duration time.Duration) bool {
	start, end, ok := c.Window(at)
	if !ok {
		return false
	}
	return !at.Before(start) && !at.Add(duration).After(end)
}

// ValidateTemplate checks a wholesale weekly-template replacement:
// weekdays in 0-6, at most one entry per weekday, and parseable times
// with start < end whenever the day is marked available.
func ValidateTemplate(days []models.WeeklyAvailability) error {
	seen := make(map[int]bool, len(days))

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return httperr.ErrBusiness(httperr.CodeInvalidAvailability)
		}
		if seen[d.Weekday] {
			return httperr.ErrBusiness(httperr.CodeInvalidAvailability)
		}
		seen[d.Weekday] = true

		if !d.Available {
			continue
		}

		start, err := time.Parse(ClockLayout, d.StartTime)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidAvailability)
		}
		end, err := time.Parse(ClockLayout, d.EndTime)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidAvailability)
		}
		if !start.Before(end) {
			return httperr.ErrBusiness(httperr.CodeInvalidAvailability)
		}
	}

	return nil
}

// atClock anchors an "HH:MM" wall-clock string on the given date, in
// the date's location.
func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
