package booking

import (
	"context"

	"github.com/fadecall/booking-api/internal/audit"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
	"github.com/fadecall/booking-api/internal/timezone"
)

type TransitionBooking struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewTransitionBooking(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	barberID uint,
	bookingID uint,
	to schedule.Status,
) (*models.Booking, error) {

	barber, err := uc.repo.GetBarberByID(ctx, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	b, err := uc.repo.GetBookingForBarber(ctx, bookingID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := timezone.NowIn(barber.Timezone)
	if err := schedule.Transition(b, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		Action:   "booking_" + string(to),
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
