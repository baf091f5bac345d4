package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

const clauseColumns = `id, tenant_id, article_number, section, title, text, clause_type,
	created_at, updated_at`

type clauseRepo struct {
	db     querier
	logger logging.Logger
}

// NewClauseRepo returns the PostgreSQL-backed clause repository.
func NewClauseRepo(conn *postgres.Connection, log logging.Logger) clause.Repository {
	return &clauseRepo{db: conn.Pool(), logger: log.Named("clause_repo")}
}

func (r *clauseRepo) Create(ctx context.Context, c *clause.Clause) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = common.NewID()
	}

	query := `
		INSERT INTO clauses (id, tenant_id, article_number, section, title, text, clause_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.TenantID, c.ArticleNumber, c.Section, c.Title, c.Text, c.ClauseType,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create clause")
	}
	return nil
}

func (r *clauseRepo) Update(ctx context.Context, c *clause.Clause) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE clauses SET
			article_number = $3, section = $4, title = $5, text = $6,
			clause_type = $7, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		c.TenantID, c.ID, c.ArticleNumber, c.Section, c.Title, c.Text, c.ClauseType,
	).Scan(&c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return errors.New(errors.ErrCodeClauseNotFound, "clause not found").WithDetail(string(c.ID))
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update clause")
	}
	return nil
}

func (r *clauseRepo) Delete(ctx context.Context, tenant common.TenantID, id common.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clauses WHERE tenant_id = $1 AND id = $2`, tenant, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete clause")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeClauseNotFound, "clause not found").WithDetail(string(id))
	}
	return nil
}

func (r *clauseRepo) GetByID(ctx context.Context, tenant common.TenantID, id common.ID) (*clause.Clause, error) {
	query := fmt.Sprintf(`SELECT %s FROM clauses WHERE tenant_id = $1 AND id = $2`, clauseColumns)

	c, err := scanClause(r.db.QueryRow(ctx, query, tenant, id))
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeClauseNotFound, "clause not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get clause")
	}
	return c, nil
}

func (r *clauseRepo) ListByTenant(ctx context.Context, tenant common.TenantID) ([]*clause.Clause, error) {
	// Full library scan: the relevance scorer filters, not the query.
	query := fmt.Sprintf(`SELECT %s FROM clauses WHERE tenant_id = $1 ORDER BY article_number, section`, clauseColumns)

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query clauses")
	}
	defer rows.Close()

	var clauses []*clause.Clause
	for rows.Next() {
		c, err := scanClause(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan clause")
		}
		clauses = append(clauses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate clauses")
	}
	return clauses, nil
}

func scanClause(row pgx.Row) (*clause.Clause, error) {
	var (
		c       clause.Clause
		section *string
	)

	err := row.Scan(
		&c.ID, &c.TenantID, &c.ArticleNumber, &section, &c.Title, &c.Text, &c.ClauseType,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if section != nil {
		c.Section = *section
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
