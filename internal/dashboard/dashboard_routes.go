package dashboard

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	gps := r.Group("/gps")
	gps.Use(middleware.AuthMiddleware())
	gps.Use(middleware.RoleMiddleware("principal", "super_admin"))
	{
		gps.GET("/dashboard", h.GetSnapshot)
	}
}
