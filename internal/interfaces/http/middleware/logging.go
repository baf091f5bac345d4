package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
)

// HTTPMetrics records per-request observations.  Satisfied by the prometheus
// metrics collector; nil disables recording.
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

// RequestLogger logs one line per request and feeds the HTTP metrics.  The
// metrics path label uses the route template (FullPath), not the raw URL, so
// /claims/:id stays one series regardless of how many claims exist.
func RequestLogger(logger logging.Logger, metrics HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
			logging.String("client_ip", c.ClientIP()),
		}
		if tenant, ok := TenantID(c); ok {
			fields = append(fields, logging.String("tenant_id", string(tenant)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request completed", fields...)
		case status >= 400:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}

		if metrics != nil {
			metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(status), elapsed)
		}
	}
}

// Recovery converts panics into 500 responses and logs the panic value.  gin's
// stock recovery writes to its own writer; this one goes through the
// structured logger instead.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered in handler",
					logging.Any("panic", r),
					logging.String("method", c.Request.Method),
					logging.String("path", c.Request.URL.Path),
				)
				abortWithError(c, 500, errors.ErrCodeInternal, "internal server error")
			}
		}()
		c.Next()
	}
}
