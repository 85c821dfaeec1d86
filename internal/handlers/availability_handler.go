package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecall/booking-api/internal/audit"
	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/middleware"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
)

type AvailabilityHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	slots *cache.SlotCache
}

func NewAvailabilityHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	slots *cache.SlotCache,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:    db,
		audit: dispatcher,
		slots: slots,
	}
}

// --------- Requests ---------

type WeeklyDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeeklyAvailabilityUpdateRequest struct {
	Days []WeeklyDayConfig `json:"days" binding:"required"`
}

type BlockDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// --------- Weekly template ---------

func (h *AvailabilityHandler) GetWeekly(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var days []models.WeeklyAvailability
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, days)
}

// UpdateWeekly replaces the template wholesale. Partial merges are not
// offered: two entries for the same weekday have no defined meaning.
func (h *AvailabilityHandler) UpdateWeekly(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var req WeeklyAvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	days := make([]models.WeeklyAvailability, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.WeeklyAvailability{
			BarberID:  barberID,
			Weekday:   d.Weekday,
			Available: d.Available,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if err := schedule.ValidateTemplate(days); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidAvailability, "Malformed weekly availability.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_availability"})
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)
	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		Action:   "availability_updated",
		Entity:   "weekly_availability",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Blocked dates ---------

func (h *AvailabilityHandler) ListBlockedDates(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var dates []models.BlockedDate
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&dates).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocked_dates"})
		return
	}

	c.JSON(http.StatusOK, dates)
}

// BlockDate has set semantics: blocking an already-blocked date is a
// no-op success.
func (h *AvailabilityHandler) BlockDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var req BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if _, err := time.Parse(schedule.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	blocked := models.BlockedDate{
		BarberID: barberID,
		Date:     req.Date,
	}

	if err := h.db.
		Where("barber_id = ? AND date = ?", barberID, req.Date).
		FirstOrCreate(&blocked).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_block_date"})
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)
	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		Action:   "date_blocked",
		Entity:   "blocked_date",
		EntityID: &blocked.ID,
		Metadata: map[string]string{"date": req.Date},
	})

	c.JSON(http.StatusOK, blocked)
}

func (h *AvailabilityHandler) UnblockDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	date := c.Param("date")

	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	if err := h.db.
		Where("barber_id = ? AND date = ?", barberID, date).
		Delete(&models.BlockedDate{}).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_unblock_date"})
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)
	h.audit.Dispatch(audit.Event{
		BarberID: barberID,
		Action:   "date_unblocked",
		Entity:   "blocked_date",
		Metadata: map[string]string{"date": date},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
