package clause

import (
	"context"

	"github.com/unionworks/unioniq/pkg/types/common"
)

// Repository defines the persistence contract for the clause library.
type Repository interface {
	Create(ctx context.Context, c *Clause) error
	Update(ctx context.Context, c *Clause) error
	Delete(ctx context.Context, tenant common.TenantID, id common.ID) error

	// GetByID returns the clause or an AppError with ErrCodeClauseNotFound.
	GetByID(ctx context.Context, tenant common.TenantID, id common.ID) (*Clause, error)

	// ListByTenant returns the tenant's full clause library.  The relevance
	// scorer scans the entire library; there is no type filter by design.
	ListByTenant(ctx context.Context, tenant common.TenantID) ([]*Clause, error)
}
