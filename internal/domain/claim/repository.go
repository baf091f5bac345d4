package claim

import (
	"context"

	"github.com/unionworks/unioniq/pkg/types/common"
)

// ListFilter narrows List results.  Zero values mean "no filter".
type ListFilter struct {
	Status     Status
	ClaimType  string
	Department string
	Pagination common.Pagination
}

// Repository defines the persistence contract for the claim domain.  Every
// method is tenant-scoped; implementations must never return rows belonging
// to another tenant.
type Repository interface {
	Create(ctx context.Context, c *Claim) error
	Update(ctx context.Context, c *Claim) error

	// GetByID returns the claim or an AppError with ErrCodeClaimNotFound.
	GetByID(ctx context.Context, tenant common.TenantID, id common.ID) (*Claim, error)

	// List returns one page of claims plus the unpaginated total.
	List(ctx context.Context, tenant common.TenantID, filter ListFilter) ([]*Claim, int64, error)

	// ListResolvedByType returns up to limit resolved-or-closed claims of the
	// given type, excluding excludeID, ordered by resolved date descending.
	// This is the precedent query of the recommendation engine.
	ListResolvedByType(ctx context.Context, tenant common.TenantID, claimType string, excludeID common.ID, limit int) ([]*Claim, error)

	// CountByStatus returns per-status claim counts for dashboard surfaces.
	CountByStatus(ctx context.Context, tenant common.TenantID) (map[Status]int64, error)
}
