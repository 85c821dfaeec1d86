package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecall/booking-api/internal/audit"
	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/config"
	"github.com/fadecall/booking-api/internal/handlers"
	infraRepo "github.com/fadecall/booking-api/internal/infra/repository"
	"github.com/fadecall/booking-api/internal/middleware"
	ucBooking "github.com/fadecall/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, slots *cache.SlotCache) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (SCHEDULING)
	// ======================================================
	openSlotsUC := ucBooking.NewGetOpenSlots(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	transitionBookingUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	upcomingUC := ucBooking.NewListUpcomingBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, slots)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, auditDispatcher, slots)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		transitionBookingUC,
		listByDateUC,
		upcomingUC,
		bookingRepo,
		slots,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		openSlotsUC,
		createBookingUC,
		bookingRepo,
		slots,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (client booking flow)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers/:id/services", publicHandler.ListServices)
			publicAPI.GET("/barbers/:id/slots", publicHandler.Slots)
			publicAPI.POST("/barbers/:id/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BARBER DASHBOARD
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me/settings", meHandler.UpdateSettings)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/availability", availabilityHandler.GetWeekly)
			secured.PUT("/me/availability", availabilityHandler.UpdateWeekly)
			secured.GET("/me/blocked-dates", availabilityHandler.ListBlockedDates)
			secured.POST("/me/blocked-dates", availabilityHandler.BlockDate)
			secured.DELETE("/me/blocked-dates/:date", availabilityHandler.UnblockDate)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/upcoming", bookingHandler.ListUpcoming)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/decline", bookingHandler.Decline)
			secured.PATCH("/me/bookings/:id/start", bookingHandler.Start)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
