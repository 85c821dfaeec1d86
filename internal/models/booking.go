package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingLocationShop  = "shop"
	BookingLocationHouse = "house"
)

type Booking struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// The service reference may outlive the service row's active flag;
	// name and price are snapshotted at creation time.
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `gorm:"size:100" json:"service_name"`
	Price       float64 `json:"price"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'new'" json:"status"`

	// Opaque "shop" | "house" tag, carried but never interpreted here.
	Location string `gorm:"size:10" json:"location"`

	IsFirstTime bool   `json:"is_first_time"`
	Notes       string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	DeclinedAt  *time.Time `json:"declined_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Code == "" {
		b.Code = uuid.NewString()
	}
	return nil
}

func (b *Booking) DurationMin() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}
