package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
)

// Runner owns the background schedule upkeep: requests nobody answered
// before their start time get declined, and in-progress bookings past
// their end time get completed. Both go through the state machine, so
// the transition table stays the single authority.
type Runner struct {
	db   *gorm.DB
	cron *cron.Cron
}

func New(db *gorm.DB) *Runner {
	return &Runner{
		db:   db,
		cron: cron.New(),
	}
}

func (r *Runner) Start() {
	r.cron.AddFunc("@every 10m", func() {
		if err := r.DeclineStaleRequests(time.Now()); err != nil {
			log.Println("jobs: decline stale requests:", err)
		}
		if err := r.CompleteOverdue(time.Now()); err != nil {
			log.Println("jobs: complete overdue:", err)
		}
	})
	r.cron.Start()
}

func (r *Runner) Stop() {
	r.cron.Stop()
}

// DeclineStaleRequests declines "new" bookings whose start time passed
// without the barber answering.
func (r *Runner) DeclineStaleRequests(now time.Time) error {
	return r.sweep(schedule.StatusNew, "start_time < ?", now, schedule.StatusDeclined)
}

// CompleteOverdue completes "in_progress" bookings past their end time.
func (r *Runner) CompleteOverdue(now time.Time) error {
	return r.sweep(schedule.StatusInProgress, "end_time < ?", now, schedule.StatusCompleted)
}

func (r *Runner) sweep(
	from schedule.Status,
	cond string,
	now time.Time,
	to schedule.Status,
) error {

	var stale []models.Booking
	if err := r.db.
		Where("status = ?", string(from)).
		Where(cond, now).
		Find(&stale).Error; err != nil {
		return err
	}

	for i := range stale {
		b := &stale[i]
		if err := schedule.Transition(b, to, now); err != nil {
			continue
		}
		if err := r.db.Save(b).Error; err != nil {
			log.Printf("jobs: booking %d: %v", b.ID, err)
		}
	}

	if len(stale) > 0 {
		log.Printf("jobs: moved %d bookings %s -> %s", len(stale), from, to)
	}

	return nil
}
