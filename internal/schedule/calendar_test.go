package schedule

import (
	"testing"
	"time"

	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
)

func weekdays9to5() []models.WeeklyAvailability {
	days := make([]models.WeeklyAvailability, 0, 5)
	for wd := 1; wd <= 5; wd++ {
		days = append(days, models.WeeklyAvailability{
			Weekday:   wd,
			StartTime: "09:00",
			EndTime:   "17:00",
			Available: true,
		})
	}
	return days
}

// 2025-06-02 is a Monday.
func monday() time.Time {
	return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_Window(t *testing.T) {
	cal := NewCalendar(weekdays9to5(), nil)

	start, end, ok := cal.Window(monday())
	if !ok {
		t.Fatalf("expected a window on Monday")
	}
	if start.Hour() != 9 || end.Hour() != 17 {
		t.Fatalf("unexpected window %v - %v", start, end)
	}
}

func TestCalendar_NoTemplateEntry(t *testing.T) {
	cal := NewCalendar(weekdays9to5(), nil)

	sunday := monday().AddDate(0, 0, -1)
	if _, _, ok := cal.Window(sunday); ok {
		t.Fatalf("expected no window on a day without a template entry")
	}
}

func TestCalendar_UnavailableDay(t *testing.T) {
	days := []models.WeeklyAvailability{
		{Weekday: 1, StartTime: "09:00", EndTime: "17:00", Available: false},
	}
	cal := NewCalendar(days, nil)

	if _, _, ok := cal.Window(monday()); ok {
		t.Fatalf("expected no window on an unavailable day")
	}
}

func TestCalendar_BlockedDateOverridesTemplate(t *testing.T) {
	blocked := []models.BlockedDate{{Date: "2025-06-02"}}
	cal := NewCalendar(weekdays9to5(), blocked)

	if _, _, ok := cal.Window(monday()); ok {
		t.Fatalf("blocked date must override the weekly template")
	}
	if cal.IsAvailable(monday().Add(10*time.Hour), 30*time.Minute) {
		t.Fatalf("blocked date must fail closed")
	}
}

func TestCalendar_IsAvailableFailsClosed(t *testing.T) {
	cal := NewCalendar(weekdays9to5(), nil)
	mon := monday()

	cases := []struct {
		name string
		at   time.Time
		dur  time.Duration
		want bool
	}{
		{"inside window", mon.Add(10 * time.Hour), 30 * time.Minute, true},
		{"at window start", mon.Add(9 * time.Hour), 30 * time.Minute, true},
		{"ends at window end", mon.Add(16*time.Hour + 30*time.Minute), 30 * time.Minute, true},
		{"before window", mon.Add(8 * time.Hour), 30 * time.Minute, false},
		{"runs past window end", mon.Add(16*time.Hour + 45*time.Minute), 30 * time.Minute, false},
		{"day without window", mon.AddDate(0, 0, -1).Add(10 * time.Hour), 30 * time.Minute, false},
	}

	for _, tc := range cases {
		if got := cal.IsAvailable(tc.at, tc.dur); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestValidateTemplate(t *testing.T) {
	cases := []struct {
		name    string
		days    []models.WeeklyAvailability
		wantErr bool
	}{
		{"valid", weekdays9to5(), false},
		{"empty", nil, false},
		{
			"duplicate weekday",
			[]models.WeeklyAvailability{
				{Weekday: 1, StartTime: "09:00", EndTime: "17:00", Available: true},
				{Weekday: 1, StartTime: "10:00", EndTime: "18:00", Available: true},
			},
			true,
		},
		{
			"weekday out of range",
			[]models.WeeklyAvailability{
				{Weekday: 7, StartTime: "09:00", EndTime: "17:00", Available: true},
			},
			true,
		},
		{
			"start not before end",
			[]models.WeeklyAvailability{
				{Weekday: 1, StartTime: "17:00", EndTime: "09:00", Available: true},
			},
			true,
		},
		{
			"equal start and end",
			[]models.WeeklyAvailability{
				{Weekday: 1, StartTime: "09:00", EndTime: "09:00", Available: true},
			},
			true,
		},
		{
			"unparseable clock",
			[]models.WeeklyAvailability{
				{Weekday: 1, StartTime: "9am", EndTime: "17:00", Available: true},
			},
			true,
		},
		{
			"garbage times on an unavailable day are ignored",
			[]models.WeeklyAvailability{
				{Weekday: 1, StartTime: "", EndTime: "", Available: false},
			},
			false,
		},
	}

	for _, tc := range cases {
		err := ValidateTemplate(tc.days)
		if tc.wantErr && !httperr.IsBusiness(err, httperr.CodeInvalidAvailability) {
			t.Fatalf("%s: expected invalid_availability, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.name, err)
		}
	}
}
