package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/middleware"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/timezone"
)

type MeHandler struct {
	db    *gorm.DB
	slots *cache.SlotCache
}

func NewMeHandler(db *gorm.DB, slots *cache.SlotCache) *MeHandler {
	return &MeHandler{db: db, slots: slots}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
		return
	}

	c.JSON(http.StatusOK, barberPayload(&barber))
}

type UpdateSettingsRequest struct {
	BufferMinutes   *int    `json:"buffer_minutes,omitempty" binding:"omitempty,min=0"`
	SlotIntervalMin *int    `json:"slot_interval_min,omitempty" binding:"omitempty,min=5"`
	Timezone        *string `json:"timezone,omitempty"`
	ServiceType     *string `json:"service_type,omitempty" binding:"omitempty,oneof=shop mobile both"`
	Phone           *string `json:"phone,omitempty"`
}

// UpdateSettings covers the scheduling knobs (buffer, grid step,
// timezone) plus the profile odds and ends the settings screen edits.
func (h *MeHandler) UpdateSettings(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Timezone != nil && !timezone.IsValid(*req.Timezone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
		return
	}

	if req.BufferMinutes != nil {
		barber.BufferMinutes = *req.BufferMinutes
	}
	if req.SlotIntervalMin != nil {
		barber.SlotIntervalMin = *req.SlotIntervalMin
	}
	if req.Timezone != nil {
		barber.Timezone = *req.Timezone
	}
	if req.ServiceType != nil {
		barber.ServiceType = *req.ServiceType
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_settings"})
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, barberPayload(&barber))
}
