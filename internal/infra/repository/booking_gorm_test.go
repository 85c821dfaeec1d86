package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fadecall/booking-api/internal/db"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
)

var memDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	memDBSeq++
	dsn := fmt.Sprintf("file:booking_repo_%d?mode=memory&cache=shared", memDBSeq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedBarber(t *testing.T, gdb *gorm.DB) models.Barber {
	t.Helper()

	barber := models.Barber{
		FirstName:       "Sam",
		Email:           "sam@example.com",
		PasswordHash:    "x",
		Timezone:        "UTC",
		BufferMinutes:   15,
		SlotIntervalMin: 30,
		Active:          true,
	}
	if err := gdb.Create(&barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}
	return barber
}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestCreateBookingGuarded_Conflict(t *testing.T) {
	gdb := openTestDB(t)
	barber := seedBarber(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()
	buffer := 15 * time.Minute

	first := models.Booking{
		BarberID:  barber.ID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    string(schedule.StatusConfirmed),
	}
	if err := repo.CreateBookingGuarded(ctx, &first, buffer); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.ID == 0 || first.Code == "" {
		t.Fatalf("created booking missing id or code")
	}

	inside := models.Booking{
		BarberID:  barber.ID,
		StartTime: at(10, 30),
		EndTime:   at(11, 0),
		Status:    string(schedule.StatusConfirmed),
	}
	err := repo.CreateBookingGuarded(ctx, &inside, buffer)
	if !httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable inside the buffer, got %v", err)
	}

	var count int64
	gdb.Model(&models.Booking{}).Count(&count)
	if count != 1 {
		t.Fatalf("rejected booking must not be written, found %d rows", count)
	}

	edge := models.Booking{
		BarberID:  barber.ID,
		StartTime: at(10, 45),
		EndTime:   at(11, 15),
		Status:    string(schedule.StatusConfirmed),
	}
	if err := repo.CreateBookingGuarded(ctx, &edge, buffer); err != nil {
		t.Fatalf("booking at the buffer edge should succeed, got %v", err)
	}
}

func TestCreateBookingGuarded_IgnoresCancelled(t *testing.T) {
	gdb := openTestDB(t)
	barber := seedBarber(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	cancelled := models.Booking{
		BarberID:  barber.ID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    string(schedule.StatusCancelled),
	}
	if err := gdb.Create(&cancelled).Error; err != nil {
		t.Fatalf("seed cancelled booking: %v", err)
	}

	b := models.Booking{
		BarberID:  barber.ID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    string(schedule.StatusConfirmed),
	}
	if err := repo.CreateBookingGuarded(ctx, &b, 15*time.Minute); err != nil {
		t.Fatalf("cancelled booking must not block the slot, got %v", err)
	}
}

func TestCreateBookingGuarded_ScopedToBarber(t *testing.T) {
	gdb := openTestDB(t)
	first := seedBarber(t, gdb)
	second := models.Barber{
		FirstName:    "Lee",
		Email:        "lee@example.com",
		PasswordHash: "x",
		Timezone:     "UTC",
	}
	if err := gdb.Create(&second).Error; err != nil {
		t.Fatalf("seed second barber: %v", err)
	}

	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	a := models.Booking{
		BarberID:  first.ID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    string(schedule.StatusConfirmed),
	}
	if err := repo.CreateBookingGuarded(ctx, &a, 15*time.Minute); err != nil {
		t.Fatalf("first barber booking: %v", err)
	}

	b := models.Booking{
		BarberID:  second.ID,
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    string(schedule.StatusConfirmed),
	}
	if err := repo.CreateBookingGuarded(ctx, &b, 15*time.Minute); err != nil {
		t.Fatalf("another barber's booking must not conflict, got %v", err)
	}
}

func TestGetOrCreateClient(t *testing.T) {
	gdb := openTestDB(t)
	barber := seedBarber(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	c1, created, err := repo.GetOrCreateClient(ctx, barber.ID, "Ana", "+15550001")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if !created {
		t.Fatalf("first call should create the client")
	}

	c2, created, err := repo.GetOrCreateClient(ctx, barber.ID, "Ana Maria", "+15550001")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Fatalf("second call should find the existing client")
	}
	if c2.ID != c1.ID {
		t.Fatalf("expected the same client row, got %d and %d", c1.ID, c2.ID)
	}
	if c2.Name != "Ana" {
		t.Fatalf("lookup must not rename the client, got %q", c2.Name)
	}
}

func TestListUpcoming(t *testing.T) {
	gdb := openTestDB(t)
	barber := seedBarber(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	seed := []models.Booking{
		{BarberID: barber.ID, StartTime: at(9, 0), EndTime: at(9, 30), Status: string(schedule.StatusCompleted)},
		{BarberID: barber.ID, StartTime: at(11, 0), EndTime: at(11, 30), Status: string(schedule.StatusConfirmed)},
		{BarberID: barber.ID, StartTime: at(12, 0), EndTime: at(12, 30), Status: string(schedule.StatusCancelled)},
		{BarberID: barber.ID, StartTime: at(13, 0), EndTime: at(13, 30), Status: string(schedule.StatusNew)},
		{BarberID: barber.ID, StartTime: at(14, 0), EndTime: at(14, 30), Status: string(schedule.StatusDeclined)},
	}
	for i := range seed {
		if err := gdb.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed booking %d: %v", i, err)
		}
	}

	got, err := repo.ListUpcoming(ctx, barber.ID, at(10, 0), 0)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming bookings, got %d", len(got))
	}
	if !got[0].StartTime.Equal(at(11, 0)) || !got[1].StartTime.Equal(at(13, 0)) {
		t.Fatalf("upcoming bookings out of order")
	}

	got, err = repo.ListUpcoming(ctx, barber.ID, at(10, 0), 1)
	if err != nil {
		t.Fatalf("list upcoming with limit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("limit not applied, got %d rows", len(got))
	}
}

func TestListBookingsForPeriod_StatusFilter(t *testing.T) {
	gdb := openTestDB(t)
	barber := seedBarber(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	client, _, err := repo.GetOrCreateClient(ctx, barber.ID, "Ana", "+15550001")
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	seed := []models.Booking{
		{BarberID: barber.ID, ClientID: client.ID, StartTime: at(10, 0), EndTime: at(10, 30), Status: string(schedule.StatusConfirmed)},
		{BarberID: barber.ID, ClientID: client.ID, StartTime: at(11, 0), EndTime: at(11, 30), Status: string(schedule.StatusNew)},
	}
	for i := range seed {
		if err := gdb.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed booking %d: %v", i, err)
		}
	}

	dayStart := at(0, 0)
	got, err := repo.ListBookingsForPeriod(ctx, barber.ID, dayStart, dayStart.Add(24*time.Hour), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both bookings, got %d", len(got))
	}
	if got[0].Client.Name != "Ana" {
		t.Fatalf("client not preloaded")
	}

	got, err = repo.ListBookingsForPeriod(ctx, barber.ID, dayStart, dayStart.Add(24*time.Hour), string(schedule.StatusNew))
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(got) != 1 || got[0].Status != string(schedule.StatusNew) {
		t.Fatalf("status filter not applied")
	}
}
