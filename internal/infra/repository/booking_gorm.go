package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
)

var activeStatuses = []string{
	string(schedule.StatusNew),
	string(schedule.StatusConfirmed),
	string(schedule.StatusInProgress),
	string(schedule.StatusCompleted),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	barberID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", serviceID, barberID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	barberID uint,
	name string,
	phone string,
) (*models.Client, bool, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND phone = ?", barberID, phone).
		First(&client).Error

	if err == nil {
		return &client, false, nil
	}

	client = models.Client{
		BarberID: barberID,
		Name:     name,
		Phone:    phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, false, err
	}

	return &client, true, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListWeeklyAvailability(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	var days []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *BookingGormRepository) ListBlockedDates(
	ctx context.Context,
	barberID uint,
) ([]models.BlockedDate, error) {

	var dates []models.BlockedDate
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingGuarded holds row locks on every active booking whose
// buffer-padded interval could intersect the candidate, re-runs the
// conflict check on the locked rows, and inserts. Two clients racing
// onto the same slot serialize here.
func (r *BookingGormRepository) CreateBookingGuarded(
	ctx context.Context,
	b *models.Booking,
	buffer time.Duration,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.BarberID,
				activeStatuses,
				b.EndTime.Add(buffer),
				b.StartTime.Add(-buffer),
			)

		// sqlite (tests) has no row locks and a single writer anyway.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var neighbors []models.Booking
		if err := q.Find(&neighbors).Error; err != nil {
			return err
		}

		if schedule.HasConflict(neighbors, b.StartTime, b.EndTime, buffer) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForBarber(
	ctx context.Context,
	bookingID uint,
	barberID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", bookingID, barberID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Booking (queries)
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookingsForDay(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			barberID, activeStatuses, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	status string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListUpcoming(
	ctx context.Context,
	barberID uint,
	from time.Time,
	limit int,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ?",
			barberID,
			[]string{string(schedule.StatusNew), string(schedule.StatusConfirmed), string(schedule.StatusInProgress)},
			from,
		).
		Order("start_time ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ schedule.Repository = (*BookingGormRepository)(nil)
