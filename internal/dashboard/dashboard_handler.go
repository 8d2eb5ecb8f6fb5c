package dashboard

import (
	"net/http"
	"time"

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

func (h *Handler) GetSnapshot(c *gin.Context) {
	schoolID := c.GetString("school_id")

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpErr := apperror.ToHTTP(apperror.InvalidField("Date"))
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		date = parsed
	}

	snap, err := h.service.Snapshot(c.Request.Context(), schoolID, date)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, snap, nil)
}
