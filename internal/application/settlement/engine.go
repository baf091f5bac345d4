package settlement

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

const (
	defaultPrecedentLimit = 50
	defaultQueryTimeout   = 5 * time.Second

	maxTopPrecedents = 5
	maxTopClauses    = 10
)

// ClaimStore is the claim access the engine needs.  The full claim.Repository
// satisfies it.
type ClaimStore interface {
	GetByID(ctx context.Context, tenantID common.TenantID, id common.ID) (*claim.Claim, error)
	ListResolvedByType(ctx context.Context, tenantID common.TenantID, claimType string, excludeID common.ID, limit int) ([]*claim.Claim, error)
}

// ClauseStore is the clause-library access the engine needs.
type ClauseStore interface {
	ListByTenant(ctx context.Context, tenantID common.TenantID) ([]*clause.Clause, error)
}

// Deps carries the engine's collaborators and tuning knobs.  Zero values for
// the knobs select the defaults.
type Deps struct {
	Claims  ClaimStore
	Clauses ClauseStore
	Logger  logging.Logger

	PrecedentLimit int
	QueryTimeout   time.Duration
}

// Engine produces settlement recommendations.  It holds no per-call state and
// is safe for concurrent use.
type Engine struct {
	claims         ClaimStore
	clauses        ClauseStore
	logger         logging.Logger
	precedentLimit int
	queryTimeout   time.Duration
}

func NewEngine(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	limit := deps.PrecedentLimit
	if limit <= 0 {
		limit = defaultPrecedentLimit
	}
	timeout := deps.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Engine{
		claims:         deps.Claims,
		clauses:        deps.Clauses,
		logger:         logger.Named("settlement"),
		precedentLimit: limit,
		queryTimeout:   timeout,
	}
}

// Generate runs the full recommendation pipeline for one claim and returns
// the assembled result.  A nil return means "no recommendation possible":
// the claim does not exist, or an unexpected failure was absorbed.  No panic
// escapes this method.
func (e *Engine) Generate(ctx context.Context, tenantID common.TenantID, claimID common.ID) (rec *SettlementRecommendation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recommendation pipeline panicked",
				logging.String("claim_id", string(claimID)),
				logging.Any("panic", r),
			)
			rec = nil
		}
	}()

	current, err := e.claims.GetByID(ctx, tenantID, claimID)
	if err != nil {
		if !errors.IsNotFound(err) {
			e.logger.Warn("claim lookup failed",
				logging.String("claim_id", string(claimID)),
				logging.Err(err),
			)
		}
		return nil
	}

	features := extractFeatures(current)

	// The two store scans are independent; run them concurrently.  Each one
	// degrades to an empty slice on its own failure, so the group never
	// returns an error.
	var (
		precedents []PrecedentCase
		clauses    []ClauseReference
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		precedents = e.findPrecedents(gctx, current)
		return nil
	})
	g.Go(func() error {
		clauses = e.findRelevantClauses(gctx, current)
		return nil
	})
	_ = g.Wait()

	factors := buildReasoningFactors(features, precedents, clauses)
	risk := assessRisk(factors, precedents)
	pred := predictOutcome(factors, precedents)
	actions := suggestActions(pred, risk, clauses)

	topPrecedents := precedents
	if len(topPrecedents) > maxTopPrecedents {
		topPrecedents = topPrecedents[:maxTopPrecedents]
	}
	topClauses := clauses
	if len(topClauses) > maxTopClauses {
		topClauses = topClauses[:maxTopClauses]
	}

	return &SettlementRecommendation{
		ClaimID:                  current.ID,
		RecommendedOutcome:       pred.Outcome,
		SettlementType:           pred.SettlementType,
		Confidence:               pred.Confidence,
		EstimatedSuccessRate:     pred.SuccessRate,
		RiskLevel:                risk.OverallRisk,
		RiskAssessment:           risk,
		TopPrecedents:            topPrecedents,
		RelevantClauses:          topClauses,
		ReasoningFactors:         factors,
		SuggestedActions:         actions,
		EstimatedResolutionDays:  risk.EstimatedDurationDays,
		EstimatedSettlementValue: averageSettledAmount(precedents),
	}
}

// averageSettledAmount averages the settled amounts across precedents that
// carry one, or nil when none do.
func averageSettledAmount(precedents []PrecedentCase) *float64 {
	total, count := 0.0, 0
	for _, p := range precedents {
		if p.SettledAmount != nil {
			total += *p.SettledAmount
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)
	return &avg
}
