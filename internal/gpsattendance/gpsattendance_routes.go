package gpsattendance

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	gps := r.Group("/gps")
	gps.Use(middleware.AuthMiddleware())
	{
		gps.POST("/check-ins",
			middleware.RateLimitByTeacher(rate.Limit(1), 5),
			middleware.Idempotency(rdb),
			h.RecordCheckIn,
		)
		gps.GET("/check-ins", h.GetRecentCheckIns)
		gps.POST("/mobile-links",
			middleware.RoleMiddleware("principal", "admin", "super_admin"),
			h.GenerateMobileLink,
		)
		gps.POST("/sessions/:id/close",
			middleware.RoleMiddleware("principal", "admin", "super_admin"),
			h.CloseSession,
		)
	}
}
