package redis

import (
	"context"
	"time"

	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// CachedClauseRepo decorates the clause repository with a per-tenant cache of
// the full library.  The recommendation engine scans the whole library on
// every call, which makes the library the one read path worth caching; writes
// pass through and invalidate the tenant's entry.
type CachedClauseRepo struct {
	inner  clause.Repository
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedClauseRepo wraps repo with the library cache.
func NewCachedClauseRepo(repo clause.Repository, cache Cache, ttl time.Duration, log logging.Logger) *CachedClauseRepo {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedClauseRepo{inner: repo, cache: cache, ttl: ttl, logger: log.Named("clause_cache")}
}

func libraryKey(tenant common.TenantID) string {
	return "clauses:library:" + string(tenant)
}

func (r *CachedClauseRepo) ListByTenant(ctx context.Context, tenant common.TenantID) ([]*clause.Clause, error) {
	var library []*clause.Clause
	err := r.cache.GetOrSet(ctx, libraryKey(tenant), &library, r.ttl, func(ctx context.Context) (any, error) {
		return r.inner.ListByTenant(ctx, tenant)
	})
	if err == ErrCacheMiss {
		// The loader returned a nil library (empty tenant).
		return nil, nil
	}
	if err != nil {
		// Cache trouble must not take the read path down.
		r.logger.Warn("clause cache unavailable, reading from database",
			logging.String("tenant_id", string(tenant)),
			logging.Err(err),
		)
		return r.inner.ListByTenant(ctx, tenant)
	}
	return library, nil
}

func (r *CachedClauseRepo) GetByID(ctx context.Context, tenant common.TenantID, id common.ID) (*clause.Clause, error) {
	return r.inner.GetByID(ctx, tenant, id)
}

func (r *CachedClauseRepo) Create(ctx context.Context, c *clause.Clause) error {
	if err := r.inner.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.TenantID)
	return nil
}

func (r *CachedClauseRepo) Update(ctx context.Context, c *clause.Clause) error {
	if err := r.inner.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.TenantID)
	return nil
}

func (r *CachedClauseRepo) Delete(ctx context.Context, tenant common.TenantID, id common.ID) error {
	if err := r.inner.Delete(ctx, tenant, id); err != nil {
		return err
	}
	r.invalidate(ctx, tenant)
	return nil
}

func (r *CachedClauseRepo) invalidate(ctx context.Context, tenant common.TenantID) {
	if err := r.cache.Delete(ctx, libraryKey(tenant)); err != nil {
		r.logger.Warn("failed to invalidate clause library cache",
			logging.String("tenant_id", string(tenant)),
			logging.Err(err),
		)
	}
}
