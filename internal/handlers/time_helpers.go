package handlers

import (
	"time"

	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/timezone"
)

func locationFor(barber *models.Barber) *time.Location {
	if barber != nil {
		return timezone.Location(barber.Timezone)
	}
	return timezone.Location("")
}

func parseDateFor(barber *models.Barber, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFor(barber),
	)
}
