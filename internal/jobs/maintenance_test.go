package jobs

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fadecall/booking-api/internal/db"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:jobs_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := gdb.Exec("DELETE FROM bookings").Error; err != nil {
		t.Fatalf("reset bookings: %v", err)
	}
	return gdb
}

func TestDeclineStaleRequests(t *testing.T) {
	gdb := openTestDB(t)
	runner := New(gdb)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	seed := []models.Booking{
		{BarberID: 1, StartTime: now.Add(-time.Hour), EndTime: now.Add(-30 * time.Minute), Status: string(schedule.StatusNew)},
		{BarberID: 1, StartTime: now.Add(time.Hour), EndTime: now.Add(90 * time.Minute), Status: string(schedule.StatusNew)},
		{BarberID: 1, StartTime: now.Add(-time.Hour), EndTime: now.Add(-30 * time.Minute), Status: string(schedule.StatusConfirmed)},
	}
	for i := range seed {
		if err := gdb.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed booking %d: %v", i, err)
		}
	}

	if err := runner.DeclineStaleRequests(now); err != nil {
		t.Fatalf("decline stale: %v", err)
	}

	var got models.Booking
	if err := gdb.First(&got, seed[0].ID).Error; err != nil {
		t.Fatalf("reload stale request: %v", err)
	}
	if got.Status != string(schedule.StatusDeclined) {
		t.Fatalf("stale request should be declined, got %s", got.Status)
	}
	if got.DeclinedAt == nil {
		t.Fatalf("declined booking must carry declined_at")
	}

	got = models.Booking{}
	if err := gdb.First(&got, seed[1].ID).Error; err != nil {
		t.Fatalf("reload future request: %v", err)
	}
	if got.Status != string(schedule.StatusNew) {
		t.Fatalf("future request must stay new, got %s", got.Status)
	}

	got = models.Booking{}
	if err := gdb.First(&got, seed[2].ID).Error; err != nil {
		t.Fatalf("reload confirmed booking: %v", err)
	}
	if got.Status != string(schedule.StatusConfirmed) {
		t.Fatalf("confirmed booking must be untouched, got %s", got.Status)
	}
}

func TestCompleteOverdue(t *testing.T) {
	gdb := openTestDB(t)
	runner := New(gdb)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	overdue := models.Booking{
		BarberID:  1,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(-30 * time.Minute),
		Status:    string(schedule.StatusInProgress),
	}
	running := models.Booking{
		BarberID:  1,
		StartTime: now.Add(-10 * time.Minute),
		EndTime:   now.Add(20 * time.Minute),
		Status:    string(schedule.StatusInProgress),
	}
	for _, b := range []*models.Booking{&overdue, &running} {
		if err := gdb.Create(b).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if err := runner.CompleteOverdue(now); err != nil {
		t.Fatalf("complete overdue: %v", err)
	}

	var got models.Booking
	if err := gdb.First(&got, overdue.ID).Error; err != nil {
		t.Fatalf("reload overdue: %v", err)
	}
	if got.Status != string(schedule.StatusCompleted) || got.CompletedAt == nil {
		t.Fatalf("overdue booking should be completed, got %s", got.Status)
	}

	got = models.Booking{}
	if err := gdb.First(&got, running.ID).Error; err != nil {
		t.Fatalf("reload running: %v", err)
	}
	if got.Status != string(schedule.StatusInProgress) {
		t.Fatalf("running booking must stay in progress, got %s", got.Status)
	}
}
