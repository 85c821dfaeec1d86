package schedule

import (
	"time"

	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusNew        Status = "new"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDeclined   Status = "declined"
)

// transitions holds the only legal edges. Anything outside this table,
// including re-applying the current status, is an invalid transition.
var transitions = map[Status][]Status{
	StatusNew:        {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusDeclined:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// IsActive reports whether the booking still occupies the schedule.
// Cancelled and declined bookings free their interval; completed ones
// happened and keep it.
func IsActive(s Status) bool {
	return s != StatusCancelled && s != StatusDeclined
}

// CanTransition validates a status change against the transition table.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

// ===============================
// Domain Actions
// ===============================

// Transition applies a validated status change and stamps the matching
// lifecycle timestamp. The caller persists the booking afterwards.
func Transition(b *models.Booking, to Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)
	b.UpdatedAt = now

	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusDeclined:
		b.DeclinedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}

	return nil
}
