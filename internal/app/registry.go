package app

import (
	"database/sql"

	"go-school/internal/alert"
	"go-school/internal/attendance"
	"go-school/internal/dashboard"
	"go-school/internal/gpsattendance"
	"go-school/internal/messaging/kafka"
	"go-school/internal/middleware"
	"go-school/internal/notification"
	"go-school/internal/school"
	"go-school/internal/settings"
	"go-school/internal/teacher"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	alertRepo := alert.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	gpsRepo := gpsattendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	schoolRepo := school.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	teacherRepo := teacher.NewRepository(gormDB)

	// --- Services ---
	settingsService := settings.NewService(settingsRepo, rdb)
	dispatcher := notification.NewOutboxDispatcher(outboxRepo)
	alertService := alert.NewService(alertRepo)
	gpsService := gpsattendance.NewService(
		db,
		gpsRepo,
		alertRepo,
		teacherRepo,
		schoolRepo,
		settingsService,
		dispatcher,
	)
	dashboardService := dashboard.NewService(attendanceRepo, gpsRepo, alertRepo, teacherRepo)

	// --- Handlers ---
	alertHandler := alert.NewHandler(alertService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	gpsHandler := gpsattendance.NewHandlerWithRedis(gpsService, rdb)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		alert.RegisterRoutes(api, alertHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
		gpsattendance.RegisterRoutes(api, gpsHandler, rdb)
		settings.RegisterRoutes(api, settingsHandler)
	}

	return nil
}
