package schedule

import (
	"context"
	"time"

	"github.com/fadecall/booking-api/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barberID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	// The created flag is true when no client with that phone existed
	// for the barber before this call.
	GetOrCreateClient(
		ctx context.Context,
		barberID uint,
		name string,
		phone string,
	) (client *models.Client, created bool, err error)

	// -------- Availability --------
	ListWeeklyAvailability(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklyAvailability, error)

	ListBlockedDates(
		ctx context.Context,
		barberID uint,
	) ([]models.BlockedDate, error)

	// -------- Booking (create / conflict) --------
	// CreateBookingGuarded runs the buffer-padded conflict check and the
	// insert inside one transaction, holding row locks on the barber's
	// active bookings for the day. Fails with the slot_unavailable
	// business error and writes nothing on conflict.
	CreateBookingGuarded(
		ctx context.Context,
		b *models.Booking,
		buffer time.Duration,
	) error

	// -------- Booking (state change) --------
	GetBookingForBarber(
		ctx context.Context,
		bookingID uint,
		barberID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (queries) --------
	ListActiveBookingsForDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		status string,
	) ([]models.Booking, error)

	ListUpcoming(
		ctx context.Context,
		barberID uint,
		from time.Time,
		limit int,
	) ([]models.Booking, error)
}
