package models

import "time"

const (
	ServiceTypeShop   = "shop"
	ServiceTypeMobile = "mobile"
	ServiceTypeBoth   = "both"
)

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Timezone    string `gorm:"size:50" json:"timezone"`
	ServiceType string `gorm:"size:20;default:'shop'" json:"service_type"`

	// Scheduling knobs. Buffer is the minimum idle gap between two
	// bookings; the slot interval is the step of the booking grid.
	BufferMinutes   int `gorm:"default:15" json:"buffer_minutes"`
	SlotIntervalMin int `gorm:"default:30" json:"slot_interval_min"`

	Active    bool `gorm:"default:true" json:"active"`
	Onboarded bool `gorm:"default:false" json:"onboarded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) FullName() string {
	if b.LastName == "" {
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}
