// Package common holds the small set of cross-layer value types shared by the
// UnionIQ services: identifiers, pagination, and sort order.
package common

import "github.com/google/uuid"

// ID is a string alias for a UUID v4 entity identifier.
type ID string

// TenantID identifies the owning organization (union local) of a row.  Tenant
// scoping is applied as a query parameter on every repository call; enforcement
// is handled upstream of this service.
type TenantID string

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates that s is a well-formed UUID and returns it as an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ID(u.String()), nil
}

// Pagination defines parameters for paginated list requests.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total,omitempty"`
}

// Normalize applies default page/page-size bounds in place.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

// Offset returns the SQL offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// SortOrder defines the direction of sorting.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
