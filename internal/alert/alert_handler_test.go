package alert_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-school/internal/alert"
	"go-school/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getAllFn      func(ctx context.Context, schoolID string, filter alert.ListFilter) ([]alert.AlertResponse, error)
	acknowledgeFn func(ctx context.Context, schoolID, alertID, userID string, actionTaken *string) (alert.AlertResponse, error)
	resolveFn     func(ctx context.Context, schoolID, alertID string) (alert.AlertResponse, error)
}

func (f *fakeService) GetAll(ctx context.Context, schoolID string, filter alert.ListFilter) ([]alert.AlertResponse, error) {
	return f.getAllFn(ctx, schoolID, filter)
}
func (f *fakeService) Acknowledge(ctx context.Context, schoolID, alertID, userID string, actionTaken *string) (alert.AlertResponse, error) {
	return f.acknowledgeFn(ctx, schoolID, alertID, userID, actionTaken)
}
func (f *fakeService) Resolve(ctx context.Context, schoolID, alertID string) (alert.AlertResponse, error) {
	return f.resolveFn(ctx, schoolID, alertID)
}

func TestHandler_GetAll_PassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	schoolID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, sid string, filter alert.ListFilter) ([]alert.AlertResponse, error) {
			assert.Equal(t, schoolID, sid)
			assert.True(t, filter.UnacknowledgedOnly)
			assert.Equal(t, "high", filter.Severity)
			assert.Equal(t, 10, filter.Limit)
			return []alert.AlertResponse{{ID: uuid.New().String(), Severity: "high"}}, nil
		},
	}
	h := alert.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("school_id", schoolID)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts?unacknowledged_only=true&severity=high&limit=10", nil)

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"severity":"high"`)
}

func TestHandler_Acknowledge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alertID := uuid.New().String()
	userID := uuid.New().String()

	svc := &fakeService{
		acknowledgeFn: func(ctx context.Context, sid, id, uid string, actionTaken *string) (alert.AlertResponse, error) {
			assert.Equal(t, alertID, id)
			assert.Equal(t, userID, uid)
			if assert.NotNil(t, actionTaken) {
				assert.Equal(t, "Spoke with the teacher", *actionTaken)
			}
			return alert.AlertResponse{ID: id, Acknowledged: true}, nil
		},
	}
	h := alert.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("school_id", uuid.New().String())
	c.Set("user_id", userID)
	c.Params = gin.Params{{Key: "id", Value: alertID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/alerts/"+alertID+"/acknowledge",
		strings.NewReader(`{"action_taken":"Spoke with the teacher"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Acknowledge(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"acknowledged":true`)
}

func TestHandler_Resolve_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		resolveFn: func(ctx context.Context, sid, id string) (alert.AlertResponse, error) {
			return alert.AlertResponse{}, apperror.ErrNotFound
		},
	}
	h := alert.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("school_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/alerts/whatever/resolve", nil)

	h.Resolve(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
