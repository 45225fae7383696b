package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware returns a gin middleware that attaches a request-scoped
// logger to the context and logs every request on completion. The
// upstream proxy's X-User-ID header, when present, is carried into the
// request fields so storefront actions can be traced per customer.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		}
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		reqLogger := logger.With(fields...)
		c.Set("logger", reqLogger)

		c.Next()

		status := c.Writer.Status()
		completion := []zap.Field{
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes_out", c.Writer.Size()),
		}
		if query != "" {
			completion = append(completion, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			completion = append(completion, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request completed", completion...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request completed", completion...)
		default:
			reqLogger.Info("request completed", completion...)
		}
	}
}

// Recovery returns a gin middleware that turns a handler panic into a 500
// response after logging the stack.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the request-scoped logger set by GinMiddleware.
// Handlers outside a request scope get a no-op logger.
func GetGinLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get("logger"); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
