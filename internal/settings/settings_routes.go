package settings

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	config := r.Group("/attendance/config")
	config.Use(middleware.AuthMiddleware())
	{
		config.GET("", h.GetAttendanceConfig)
		config.POST("", middleware.RoleMiddleware("principal", "admin", "super_admin"), h.UpdateAttendanceConfig)
	}
}
