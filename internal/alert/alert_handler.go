package alert

import (
	"net/http"
	"strconv"

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

func (h *Handler) GetAll(c *gin.Context) {
	schoolID := c.GetString("school_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := ListFilter{
		UnacknowledgedOnly: c.Query("unacknowledged_only") == "true",
		Severity:           c.Query("severity"),
		Limit:              limit,
	}

	resp, err := h.service.GetAll(c.Request.Context(), schoolID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Acknowledge(c *gin.Context) {
	schoolID := c.GetString("school_id")
	userID := c.GetString("user_id")
	alertID := c.Param("id")

	var req AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Acknowledge(c.Request.Context(), schoolID, alertID, userID, req.ActionTaken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resolve(c *gin.Context) {
	schoolID := c.GetString("school_id")
	alertID := c.Param("id")

	resp, err := h.service.Resolve(c.Request.Context(), schoolID, alertID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
