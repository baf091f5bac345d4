// Package handlers implements the HTTP API: claim and clause CRUD, the
// recommendation endpoint, and health probes.  Handlers bind/validate input,
// call the application layer, and translate AppError codes into status codes;
// no business logic lives here.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// ErrorBody is the error envelope returned on every failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error onto its HTTP status via the AppError code table.
// Non-AppError failures are masked as a generic internal error so driver
// details never reach clients.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	status := code.HTTPStatus()

	message := "internal server error"
	if status < 500 {
		message = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": ErrorBody{
		Code:    string(code),
		Message: message,
	}})
}

func writeValidationError(c *gin.Context, message string) {
	writeError(c, errors.New(errors.ErrCodeValidation, message))
}

// pathID parses and validates the UUID path parameter.
func pathID(c *gin.Context, param string) (common.ID, bool) {
	id, err := common.ParseID(c.Param(param))
	if err != nil {
		writeValidationError(c, param+" must be a valid UUID")
		return "", false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters; out-of-range values
// fall back to the Normalize defaults rather than erroring.
func parsePagination(c *gin.Context) common.Pagination {
	p := common.Pagination{}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.PageSize = n
		}
	}
	p.Normalize()
	return p
}
