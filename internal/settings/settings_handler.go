package settings

import (
	"net/http"

	"go-school/internal/shared/apperror"
	"go-school/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAttendanceConfig(c *gin.Context) {
	schoolID := c.GetString("school_id")

	config, err := h.service.GetConfig(c.Request.Context(), schoolID, AttendanceConfigKeys)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, config, nil)
}

func (h *Handler) UpdateAttendanceConfig(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req UpdateAttendanceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.UpdateConfig(c.Request.Context(), schoolID, req.values()); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}
