package booking

import (
	"context"
	"time"

	"github.com/fadecall/booking-api/internal/dto"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
	"github.com/fadecall/booking-api/internal/timezone"
)

type ListBookingsByDate struct {
	repo schedule.Repository
}

func NewListBookingsByDate(repo schedule.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

// Execute lists all bookings whose start falls on the calendar date,
// ascending, optionally narrowed to one status.
func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
	status string,
) ([]dto.BookingListDTO, error) {

	barber, err := uc.repo.GetBarberByID(ctx, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	loc := timezone.Location(barber.Timezone)
	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		loc,
	)

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		barberID,
		start,
		start.Add(24*time.Hour),
		status,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

type ListUpcomingBookings struct {
	repo schedule.Repository
}

func NewListUpcomingBookings(repo schedule.Repository) *ListUpcomingBookings {
	return &ListUpcomingBookings{repo: repo}
}

// Execute lists bookings that still occupy the schedule and have not
// started yet, ascending, capped to limit when limit > 0.
func (uc *ListUpcomingBookings) Execute(
	ctx context.Context,
	barberID uint,
	from time.Time,
	limit int,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListUpcoming(ctx, barberID, from, limit)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

func toListDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:          b.ID,
			Code:        b.Code,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Status:      b.Status,
			ClientName:  b.Client.Name,
			ServiceName: b.ServiceName,
			Price:       b.Price,
			Location:    b.Location,
			IsFirstTime: b.IsFirstTime,
		})
	}
	return out
}
