package models

import "time"

// Calendar date with no time component ("2006-01-02"), on which the
// barber is unavailable regardless of the weekly template.
type BlockedDate struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_blocked_barber_date,unique" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_blocked_barber_date,unique" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
