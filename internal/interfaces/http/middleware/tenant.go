// Package middleware holds the gin middleware chain: tenant resolution and
// request logging.  Middleware writes errors in the same envelope the handlers
// use so clients see one error shape regardless of where a request died.
package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

const (
	// TenantHeader is the canonical tenant header.  A query-parameter
	// fallback exists for browser-initiated downloads that cannot set headers.
	TenantHeader     = "X-Tenant-ID"
	tenantQueryParam = "tenant_id"

	tenantContextKey = "unioniq.tenant"
)

// tenantIDPattern bounds what we accept as a tenant identifier: alphanumerics,
// underscore, hyphen, 1-64 chars.
var tenantIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Tenant extracts and validates the tenant ID, rejects requests without one,
// and stores it in the gin context for handlers.  Authentication happens
// upstream at the API gateway; by the time a request reaches this service the
// tenant header is trusted, but its format is still checked.
func Tenant(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(TenantHeader))
		if tenantID == "" {
			tenantID = strings.TrimSpace(c.Query(tenantQueryParam))
		}

		if tenantID == "" {
			logger.Warn("tenant ID missing",
				logging.String("method", c.Request.Method),
				logging.String("path", c.Request.URL.Path),
			)
			abortWithError(c, http.StatusBadRequest, errors.ErrCodeValidation,
				"tenant ID is required: set the X-Tenant-ID header")
			return
		}

		if !tenantIDPattern.MatchString(tenantID) {
			logger.Warn("invalid tenant ID format",
				logging.String("tenant_id", tenantID),
				logging.String("path", c.Request.URL.Path),
			)
			abortWithError(c, http.StatusBadRequest, errors.ErrCodeValidation,
				"invalid tenant ID: must match [a-zA-Z0-9_-]{1,64}")
			return
		}

		c.Set(tenantContextKey, common.TenantID(tenantID))
		// Echo back so clients can confirm which tenant served the request.
		c.Header(TenantHeader, tenantID)

		c.Next()
	}
}

// TenantID returns the tenant stored by the Tenant middleware.  The second
// return is false when the middleware did not run on this route.
func TenantID(c *gin.Context) (common.TenantID, bool) {
	v, ok := c.Get(tenantContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(common.TenantID)
	return id, ok
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{
		Code:    string(code),
		Message: message,
	}})
}
