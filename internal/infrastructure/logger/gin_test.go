package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	return router, recorded
}

func TestGinMiddleware_LogsCompletedRequest(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/api/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": []string{}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?featured=true", nil)
	req.Header.Set("X-User-ID", "9f2c1a34-0000-0000-0000-000000000001")
	router.ServeHTTP(w, req)

	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/products", fields["path"])
	assert.Equal(t, "9f2c1a34-0000-0000-0000-000000000001", fields["user_id"])
	assert.Equal(t, "featured=true", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestGinMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, recorded := newObservedRouter(zapcore.InfoLevel)
			router.GET("/status", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

			require.Equal(t, 1, recorded.Len())
			assert.Equal(t, tt.wantLevel, recorded.All()[0].Level)
		})
	}
}

func TestGinMiddleware_OmitsEmptyUserAndQuery(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/plain", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.NotContains(t, fields, "user_id")
	assert.NotContains(t, fields, "query")
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("stock ledger out of sync")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, recorded.Len())

	entry := recorded.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "stock ledger out of sync", fields["error"])
	assert.Equal(t, "/boom", fields["path"])
	assert.NotEmpty(t, fields["stacktrace"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the request-scoped logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)

		router := gin.New()
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/handler", func(c *gin.Context) {
			GetGinLogger(c).Info("handler spoke")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handler", nil))

		messages := make([]string, 0, recorded.Len())
		for _, entry := range recorded.All() {
			messages = append(messages, entry.Message)
		}
		assert.Contains(t, messages, "handler spoke")
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		log := GetGinLogger(c)
		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Info("goes nowhere")
		})
	})
}
