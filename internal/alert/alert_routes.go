package alert

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	alerts := r.Group("/alerts")
	alerts.Use(middleware.AuthMiddleware())
	alerts.Use(middleware.RoleMiddleware("principal", "super_admin"))
	{
		alerts.GET("", h.GetAll)
		alerts.POST("/:id/acknowledge", h.Acknowledge)
		alerts.POST("/:id/resolve", h.Resolve)
	}
}
