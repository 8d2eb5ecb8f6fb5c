package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_ReplaysCachedEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, mock := redismock.NewClientMock()

	cached := `{"ok":true,"data":{"alert_created":false,"zone_status":"green"}}`
	mock.ExpectGet("idemp:/gps/check-ins:user-1:retry-7").SetVal(cached)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.Use(Idempotency(client))
	r.POST("/gps/check-ins", func(c *gin.Context) {
		t.Error("handler must not run on a replayed key")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/gps/check-ins", nil)
	req.Header.Set("Idempotency-Key", "retry-7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, cached, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentKeyIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/gps/check-ins:user-1:retry-7").RedisNil()
	mock.ExpectSetNX("idemp:/gps/check-ins:user-1:retry-7:lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.Use(Idempotency(client))
	r.POST("/gps/check-ins", func(c *gin.Context) {
		t.Error("handler must not run while the key is locked")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/gps/check-ins", nil)
	req.Header.Set("Idempotency-Key", "retry-7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestSetsContextKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/gps/check-ins:user-1:retry-7").RedisNil()
	mock.ExpectSetNX("idemp:/gps/check-ins:user-1:retry-7:lock", "locked", 30*time.Second).SetVal(true)

	var cacheKey, lockKey string
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.Use(Idempotency(client))
	r.POST("/gps/check-ins", func(c *gin.Context) {
		cacheKey = c.GetString("idempotency_cache_key")
		lockKey = c.GetString("idempotency_lock_key")
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/gps/check-ins", nil)
	req.Header.Set("Idempotency-Key", "retry-7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "idemp:/gps/check-ins:user-1:retry-7", cacheKey)
	assert.Equal(t, "idemp:/gps/check-ins:user-1:retry-7:lock", lockKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
