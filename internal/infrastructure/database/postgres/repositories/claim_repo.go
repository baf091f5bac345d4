package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

const claimColumns = `id, tenant_id, claim_type, priority, department, description,
	filed_date, incident_date, resolved_date, status, resolution, details,
	created_at, updated_at`

type claimRepo struct {
	db     querier
	logger logging.Logger
}

// NewClaimRepo returns the PostgreSQL-backed claim repository.
func NewClaimRepo(conn *postgres.Connection, log logging.Logger) claim.Repository {
	return &claimRepo{db: conn.Pool(), logger: log.Named("claim_repo")}
}

func (r *claimRepo) Create(ctx context.Context, c *claim.Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = common.NewID()
	}

	details, err := json.Marshal(c.Details)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode claim details")
	}

	query := `
		INSERT INTO claims (
			id, tenant_id, claim_type, priority, department, description,
			filed_date, incident_date, resolved_date, status, resolution, details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		c.ID, c.TenantID, c.ClaimType, c.Priority, c.Department, c.Description,
		c.FiledDate, c.IncidentDate, c.ResolvedDate, c.Status, c.Resolution, details,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create claim")
	}
	return nil
}

func (r *claimRepo) Update(ctx context.Context, c *claim.Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}

	details, err := json.Marshal(c.Details)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode claim details")
	}

	query := `
		UPDATE claims SET
			claim_type = $3, priority = $4, department = $5, description = $6,
			filed_date = $7, incident_date = $8, resolved_date = $9,
			status = $10, resolution = $11, details = $12, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at`

	err = r.db.QueryRow(ctx, query,
		c.TenantID, c.ID, c.ClaimType, c.Priority, c.Department, c.Description,
		c.FiledDate, c.IncidentDate, c.ResolvedDate, c.Status, c.Resolution, details,
	).Scan(&c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return errors.New(errors.ErrCodeClaimNotFound, "claim not found").WithDetail(string(c.ID))
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update claim")
	}
	return nil
}

func (r *claimRepo) GetByID(ctx context.Context, tenant common.TenantID, id common.ID) (*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE tenant_id = $1 AND id = $2`, claimColumns)

	c, err := scanClaim(r.db.QueryRow(ctx, query, tenant, id))
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get claim")
	}
	return c, nil
}

func (r *claimRepo) List(ctx context.Context, tenant common.TenantID, filter claim.ListFilter) ([]*claim.Claim, int64, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenant}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ClaimType != "" {
		args = append(args, filter.ClaimType)
		where = append(where, fmt.Sprintf("claim_type = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM claims WHERE %s`, clause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count claims")
	}

	p := filter.Pagination
	p.Normalize()
	args = append(args, p.PageSize, p.Offset())
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		claimColumns, clause, len(args)-1, len(args))

	claims, err := r.queryClaims(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

func (r *claimRepo) ListResolvedByType(ctx context.Context, tenant common.TenantID, claimType string, excludeID common.ID, limit int) ([]*claim.Claim, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM claims
		WHERE tenant_id = $1
		  AND claim_type = $2
		  AND id != $3
		  AND status IN ('resolved', 'closed')
		ORDER BY resolved_date DESC NULLS LAST
		LIMIT $4`, claimColumns)

	return r.queryClaims(ctx, query, tenant, claimType, excludeID, limit)
}

func (r *claimRepo) CountByStatus(ctx context.Context, tenant common.TenantID) (map[claim.Status]int64, error) {
	query := `SELECT status, COUNT(*) FROM claims WHERE tenant_id = $1 GROUP BY status`

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count claims by status")
	}
	defer rows.Close()

	counts := make(map[claim.Status]int64)
	for rows.Next() {
		var status claim.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan status count")
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate status counts")
	}
	return counts, nil
}

func (r *claimRepo) queryClaims(ctx context.Context, query string, args ...any) ([]*claim.Claim, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query claims")
	}
	defer rows.Close()

	var claims []*claim.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan claim")
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate claims")
	}
	return claims, nil
}

func scanClaim(row pgx.Row) (*claim.Claim, error) {
	var (
		c       claim.Claim
		details []byte

		department  *string
		description *string
		resolution  *string
	)

	err := row.Scan(
		&c.ID, &c.TenantID, &c.ClaimType, &c.Priority, &department, &description,
		&c.FiledDate, &c.IncidentDate, &c.ResolvedDate, &c.Status, &resolution, &details,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if department != nil {
		c.Department = *department
	}
	if description != nil {
		c.Description = *description
	}
	if resolution != nil {
		c.Resolution = claim.Resolution(*resolution)
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &c.Details); err != nil {
			return nil, err
		}
	}

	normalizeClaimTimes(&c)
	return &c, nil
}

// normalizeClaimTimes pins timestamps to UTC so date arithmetic is stable
// regardless of the session time zone.
func normalizeClaimTimes(c *claim.Claim) {
	toUTC := func(t *time.Time) {
		if t != nil {
			*t = t.UTC()
		}
	}
	toUTC(c.FiledDate)
	toUTC(c.IncidentDate)
	toUTC(c.ResolvedDate)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}
