package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/handlers"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-agenda/internal/usecase/schedule"
)

// Deps são as dependências montadas em main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zerolog.Logger
	Locker   lock.Locker
	Audit    *audit.Dispatcher
	Recorder *audit.Recorder
	Revenue  domain.RevenueEmitter

	// relógio dos casos de uso; nil usa time.Now
	Clock func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(d.Config.Server.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	granularity := d.Config.Granularity()

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, scheduleRepo, granularity)
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, scheduleRepo, d.Locker, d.Audit, granularity)
	if d.Clock != nil {
		availabilityUC.WithClock(d.Clock)
		createUC.WithClock(d.Clock)
	}

	appointmentUC := handlers.AppointmentUseCases{
		Availability: availabilityUC,
		Create:       createUC,
		Confirm:      ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit),
		Complete:     ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Revenue),
		Payment:      ucAppointment.NewConfirmPayment(appointmentRepo, d.Audit),
		Cancel:       ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit),
		Retract:      ucAppointment.NewRetractAppointment(appointmentRepo, d.Audit),
		ListByDate:   ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ListByMonth:  ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(appointmentRepo)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)
	scheduleHandler := handlers.NewScheduleHandler(
		appointmentRepo,
		ucSchedule.NewGetSchedule(scheduleRepo),
		ucSchedule.NewSyncWeekly(scheduleRepo, d.Locker, d.Audit),
		ucSchedule.NewSyncDaily(scheduleRepo, d.Locker, d.Audit),
		ucSchedule.NewExceptions(scheduleRepo, d.Locker, d.Audit),
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(appointmentRepo, d.Recorder)
	publicHandler := handlers.NewPublicHandler(appointmentRepo, availabilityUC, createUC)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		limiter := middleware.NewIPRateLimiter(d.Config.RateLimit.PerMinute, d.Config.RateLimit.Burst)

		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(limiter))
		{
			publicAPI.GET("/:slug/products", publicHandler.ListProducts)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config.JWT.Secret))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/availability", appointmentHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/payment", appointmentHandler.ConfirmPayment)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			secured.GET("/schedule", scheduleHandler.Get)
			secured.PUT("/schedule/weekly", scheduleHandler.SyncWeekly)
			secured.PUT("/schedule/daily/:date", scheduleHandler.SyncDaily)
			secured.DELETE("/schedule/daily/:date", scheduleHandler.ClearDaily)
			secured.POST("/schedule/exceptions", scheduleHandler.AddException)
			secured.DELETE("/schedule/exceptions/:id", scheduleHandler.RemoveException)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
