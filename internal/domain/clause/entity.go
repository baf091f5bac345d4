// Package clause defines the collective-bargaining-agreement clause entity and
// its persistence contract.  Clauses are immutable once fetched; the
// recommendation engine only reads them.
package clause

import (
	"time"

	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// Clause is one addressable section of a collective bargaining agreement.
type Clause struct {
	ID       common.ID
	TenantID common.TenantID

	// ArticleNumber is the CBA article the clause belongs to ("12", "XIV").
	ArticleNumber string

	// Section further qualifies the article ("12.3"); may be empty.
	Section string

	Title string
	Text  string

	// ClauseType tags the subject matter ("discipline", "seniority",
	// "overtime_pay"); used by the relevance scorer.
	ClauseType string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks invariants that must hold before persisting a clause.
func (c *Clause) Validate() error {
	if c.TenantID == "" {
		return errors.NewValidationError("tenant_id", "is required")
	}
	if c.ArticleNumber == "" {
		return errors.NewValidationError("article_number", "is required")
	}
	if c.Text == "" {
		return errors.New(errors.ErrCodeClauseTextEmpty, "clause text is required")
	}
	return nil
}
