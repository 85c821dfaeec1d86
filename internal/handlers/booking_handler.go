package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/httperr"
	"github.com/fadecall/booking-api/internal/middleware"
	"github.com/fadecall/booking-api/internal/schedule"
	"github.com/fadecall/booking-api/internal/timezone"
	ucBooking "github.com/fadecall/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC     *ucBooking.CreateBooking
	transitionUC *ucBooking.TransitionBooking
	listByDateUC *ucBooking.ListBookingsByDate
	upcomingUC   *ucBooking.ListUpcomingBookings
	repo         schedule.Repository
	slots        *cache.SlotCache
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	transitionUC *ucBooking.TransitionBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	upcomingUC *ucBooking.ListUpcomingBookings,
	repo schedule.Repository,
	slots *cache.SlotCache,
) *BookingHandler {
	return &BookingHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		listByDateUC: listByDateUC,
		upcomingUC:   upcomingUC,
		repo:         repo,
		slots:        slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Location    string `json:"location" binding:"omitempty,oneof=shop house"`
	Notes       string `json:"notes"`

	// Queue as a request ("new") instead of booking straight to
	// "confirmed".
	AsRequest bool `json:"as_request"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:    barberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Notes:       req.Notes,
		AsRequest:   req.AsRequest,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	barber, err := h.repo.GetBarberByID(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "barber_not_found", "Barber not found.")
		return
	}

	date, err := parseDateFor(barber, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	status := c.Query("status")
	if status != "" {
		if _, err := schedule.ParseStatus(status); err != nil {
			httperr.BadRequest(c, "invalid_status", "Unknown status filter.")
			return
		}
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), barberID, date, status)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) ListUpcoming(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_limit", "Invalid limit.")
			return
		}
		limit = n
	}

	barber, err := h.repo.GetBarberByID(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "barber_not_found", "Barber not found.")
		return
	}

	now := timezone.NowIn(barber.Timezone)
	out, err := h.upcomingUC.Execute(c.Request.Context(), barberID, now, limit)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context)  { h.transition(c, schedule.StatusConfirmed) }
func (h *BookingHandler) Decline(c *gin.Context)  { h.transition(c, schedule.StatusDeclined) }
func (h *BookingHandler) Start(c *gin.Context)    { h.transition(c, schedule.StatusInProgress) }
func (h *BookingHandler) Complete(c *gin.Context) { h.transition(c, schedule.StatusCompleted) }
func (h *BookingHandler) Cancel(c *gin.Context)   { h.transition(c, schedule.StatusCancelled) }

func (h *BookingHandler) transition(c *gin.Context, to schedule.Status) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.transitionUC.Execute(c.Request.Context(), barberID, uint(id), to)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.slots.Invalidate(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, b)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, httperr.CodeSlotUnavailable, "The requested slot is not available.")
	case httperr.CodeInvalidTransition:
		httperr.BadRequest(c, httperr.CodeInvalidTransition, "Status change not permitted.")
	case httperr.CodeInvalidAvailability:
		httperr.BadRequest(c, httperr.CodeInvalidAvailability, "Malformed weekly availability.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, httperr.CodeNotFound, "Resource not found.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
