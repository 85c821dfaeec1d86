package booking

import (
	"context"
	"time"

	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/schedule"
)

const defaultSlotIntervalMin = 30

type OpenSlotsInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time // midnight in the barber's timezone
}

type GetOpenSlots struct {
	repo schedule.Repository
}

func NewGetOpenSlots(repo schedule.Repository) *GetOpenSlots {
	return &GetOpenSlots{repo: repo}
}

// Execute returns the full candidate grid for the day, booked slots
// included, so callers can render them; filter with schedule.OpenOnly
// for bookable ones. A day without a window yields an empty grid.
func (uc *GetOpenSlots) Execute(
	ctx context.Context,
	in OpenSlotsInput,
) ([]schedule.TimeSlot, error) {

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	svc, err := uc.repo.GetService(ctx, in.BarberID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	days, err := uc.repo.ListWeeklyAvailability(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	blocked, err := uc.repo.ListBlockedDates(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	cal := schedule.NewCalendar(days, blocked)
	winStart, winEnd, ok := cal.Window(in.Date)
	if !ok {
		return []schedule.TimeSlot{}, nil
	}

	interval := barber.SlotIntervalMin
	if interval <= 0 {
		interval = defaultSlotIntervalMin
	}

	grid := schedule.SlotGrid(
		winStart,
		winEnd,
		time.Duration(interval)*time.Minute,
		time.Duration(svc.DurationMin)*time.Minute,
	)

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)

	existing, err := uc.repo.ListActiveBookingsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	buffer := time.Duration(barber.BufferMinutes) * time.Minute
	return schedule.MarkBooked(grid, existing, buffer), nil
}
