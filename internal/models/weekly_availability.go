package models

import "time"

// One row per (barber, weekday). Weekday is 0-6, Sunday-first.
// Times are wall-clock "HH:MM" strings in the barber's timezone.
type WeeklyAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_weekly_barber_weekday,unique" json:"barber_id"`

	Weekday   int    `gorm:"index:idx_weekly_barber_weekday,unique" json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Available bool   `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
