package booking

import (
	"context"
	"time"

	"github.com/fadecall/booking-api/internal/audit"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
	"github.com/fadecall/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID uint

	ClientName  string
	ClientPhone string

	ServiceID uint

	Date string // "2006-01-02"
	Time string // "15:04"

	Location string // "shop" | "house", carried opaque
	Notes    string

	// AsRequest puts the booking into the barber's request inbox
	// (status "new") instead of booking it directly as "confirmed".
	AsRequest bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	loc := timezone.Location(barber.Timezone)
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetService(ctx, in.BarberID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// The whole interval must lie inside one day's window; the
	// calendar fails closed on blocked or template-less days.
	days, err := uc.repo.ListWeeklyAvailability(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	blocked, err := uc.repo.ListBlockedDates(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	cal := schedule.NewCalendar(days, blocked)
	if !cal.IsAvailable(start, time.Duration(svc.DurationMin)*time.Minute) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	client, created, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarberID,
		in.ClientName,
		in.ClientPhone,
	)
	if err != nil {
		return nil, err
	}

	price := svc.Price
	if in.Location == models.BookingLocationHouse && svc.MobilePrice != nil {
		price += *svc.MobilePrice
	}

	status := schedule.StatusConfirmed
	if in.AsRequest {
		status = schedule.StatusNew
	}

	b := &models.Booking{
		BarberID:    in.BarberID,
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Price:       price,
		StartTime:   start,
		EndTime:     end,
		Status:      string(status),
		Location:    in.Location,
		IsFirstTime: created,
		Notes:       in.Notes,
	}

	if status == schedule.StatusConfirmed {
		now := timezone.NowIn(barber.Timezone)
		b.ConfirmedAt = &now
	}

	buffer := time.Duration(barber.BufferMinutes) * time.Minute
	if err := uc.repo.CreateBookingGuarded(ctx, b, buffer); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: in.BarberID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
