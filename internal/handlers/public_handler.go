package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/httpresp"
	"github.com/fadecall/booking-api/internal/models"
	"github.com/fadecall/booking-api/internal/schedule"
	ucBooking "github.com/fadecall/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the client-side booking flow: browse a barber's
// services, fetch the slot grid for a date, and book.
type PublicHandler struct {
	db          *gorm.DB
	openSlotsUC *ucBooking.GetOpenSlots
	createUC    *ucBooking.CreateBooking
	repo        schedule.Repository
	slots       *cache.SlotCache
}

func NewPublicHandler(
	db *gorm.DB,
	openSlotsUC *ucBooking.GetOpenSlots,
	createUC *ucBooking.CreateBooking,
	repo schedule.Repository,
	slots *cache.SlotCache,
) *PublicHandler {
	return &PublicHandler{
		db:          db,
		openSlotsUC: openSlotsUC,
		createUC:    createUC,
		repo:        repo,
		slots:       slots,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Location    string `json:"location" binding:"omitempty,oneof=shop house"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND active = true", barberID).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barber_id = ? AND active = true", barber.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber": gin.H{
			"id":           barber.ID,
			"name":         barber.FullName(),
			"service_type": barber.ServiceType,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	if cached, ok := h.slots.Get(c.Request.Context(), uint(barberID), uint(serviceID), dateStr); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": cached})
		return
	}

	barber, err := h.repo.GetBarberByID(c.Request.Context(), uint(barberID))
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	date, err := parseDateFor(barber, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	grid, err := h.openSlotsUC.Execute(
		c.Request.Context(),
		ucBooking.OpenSlotsInput{
			BarberID:  uint(barberID),
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Set(c.Request.Context(), uint(barberID), uint(serviceID), dateStr, grid)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": grid,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING (client self-service -> confirmed)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:    uint(barberID),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Notes:       req.Notes,
		AsRequest:   false,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), uint(barberID))

	httpresp.Created(c, b)
}
