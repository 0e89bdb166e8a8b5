package diagnostics

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestIDHeader and requestIDContextKey mirror
// internal/api/middleware/correlation.go's correlation-id convention.
const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

// correlationID assigns (or passes through) a request id, exactly as
// internal/api/middleware/correlation.go does for the teacher's REST API.
func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDContextKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	if v, exists := c.Get(requestIDContextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// requestLogger logs method/path/status/duration per request, adapted from
// internal/api/middleware/logging.go — this surface is read-only so there
// is no request body worth capturing.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": getRequestID(c),
			"method":     method,
			"path":       path,
			"status":     status,
			"duration":   duration.String(),
		}

		switch {
		case status >= 500:
			log.WithFields(fields).Error("diagnostics request completed with server error")
		case status >= 400:
			log.WithFields(fields).Warn("diagnostics request completed with client error")
		default:
			log.WithFields(fields).Info("diagnostics request completed")
		}
	}
}

// recovery converts a panic into a 500 response instead of crashing the
// agent process, adapted from internal/api/middleware/recovery.go.
func recovery(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"request_id": getRequestID(c),
					"error":      err,
					"stack":      string(debug.Stack()),
				}).Error("panic recovered in diagnostics request")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
				})
			}
		}()
		c.Next()
	}
}
