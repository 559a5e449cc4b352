package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/audit"
	"github.com/fleetops/fleet-scheduler/internal/config"
	"github.com/fleetops/fleet-scheduler/internal/dispatch"
	"github.com/fleetops/fleet-scheduler/internal/handlers"
	infraRepo "github.com/fleetops/fleet-scheduler/internal/infra/repository"
	"github.com/fleetops/fleet-scheduler/internal/middleware"
	"github.com/fleetops/fleet-scheduler/internal/notify"
	ucBooking "github.com/fleetops/fleet-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	cal dispatch.CalendarEnqueuer,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	mailer := notify.NewMailer(cfg, log)
	notifier := notify.NewNotifier(mailer, cfg.AdminEmail, log)
	eventDispatcher := dispatch.NewDispatcher(notifier, cal, log)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		cfg.FleetTimezone,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		cfg.FleetTimezone,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
	)

	decideBookingUC := ucBooking.NewDecideBooking(
		bookingRepo,
		confirmBookingUC,
		auditDispatcher,
		eventDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	checkAvailabilityUC := ucBooking.NewCheckAvailability(
		bookingRepo,
		cfg.FleetTimezone,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		confirmBookingUC,
		decideBookingUC,
		listBookingsUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(checkAvailabilityUC)

	vehicleHandler := handlers.NewVehicleHandler(db)
	driverHandler := handlers.NewDriverHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	serviceTypeHandler := handlers.NewServiceTypeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PÚBLICO
		// ------------------------------
		api.GET("/availability", availabilityHandler.Check)
		api.POST("/availability", availabilityHandler.Check)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (BEARER)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Me)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)

			secured.GET("/vehicles", vehicleHandler.List)
			secured.GET("/drivers", driverHandler.List)
			secured.GET("/customers", customerHandler.List)
			secured.GET("/service-types", serviceTypeHandler.List)
		}

		// ------------------------------
		// 🔐 STAFF TOKEN (BALCÃO)
		// ------------------------------
		staff := api.Group("/")
		staff.Use(middleware.StaffTokenMiddleware(cfg))
		{
			staff.PATCH("/bookings/:id", bookingHandler.Update)
		}

		// ------------------------------
		// 🔐 ADMIN TOKEN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AdminTokenMiddleware(cfg))
		{
			admin.POST("/bookings/:id/confirm", bookingHandler.Confirm)
			admin.POST("/bookings/:id/decision", bookingHandler.Decide)

			admin.GET("/bookings/:id/audit-logs", auditLogsHandler.ForBooking)
			admin.GET("/audit-logs", auditLogsHandler.List)

			admin.POST("/vehicles", vehicleHandler.Create)
			admin.PATCH("/vehicles/:id", vehicleHandler.Update)

			admin.POST("/service-types", serviceTypeHandler.Create)
			admin.PATCH("/service-types/:id", serviceTypeHandler.Update)
		}
	}
}
