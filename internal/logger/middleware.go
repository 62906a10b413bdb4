package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestId"

// GinMiddleware tags each request with an id and writes one access-log line
// per request once the chain has finished.
func GinMiddleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		if l == nil {
			return
		}
		fields := []interface{}{
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			l.Errorw("http_request", fields...)
		case status >= 400:
			l.Warnw("http_request", fields...)
		default:
			l.Infow("http_request", fields...)
		}
	}
}

// RequestID returns the id assigned by GinMiddleware, or "" outside of it.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
