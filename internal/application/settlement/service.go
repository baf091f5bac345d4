package settlement

import (
	"context"
	"time"

	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// EventPublisher notifies downstream consumers that a recommendation was
// produced.  Implementations must be safe for concurrent use.
type EventPublisher interface {
	PublishRecommendationGenerated(ctx context.Context, tenantID common.TenantID, rec *SettlementRecommendation) error
}

// Metrics records engine-level observations.
type Metrics interface {
	ObserveRecommendation(outcome string, riskLevel string, duration time.Duration)
	RecommendationUnavailable()
}

// ServiceDeps wires the service.  Publisher and Metrics are optional; nil
// disables that side effect.
type ServiceDeps struct {
	Engine    *Engine
	Publisher EventPublisher
	Metrics   Metrics
	Logger    logging.Logger
}

// Service is the application-facing wrapper around the engine: it converts
// the engine's nil-return contract into a typed error and attaches the side
// effects (event publication, metrics) the pure pipeline must not own.
type Service struct {
	engine    *Engine
	publisher EventPublisher
	metrics   Metrics
	logger    logging.Logger
}

func NewService(deps ServiceDeps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		engine:    deps.Engine,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    logger.Named("settlement.service"),
	}
}

// Recommend produces a recommendation for the claim, publishes the generated
// event, and records metrics.  Returns ErrCodeRecommendationUnavailable when
// the engine signals that no recommendation is possible.
func (s *Service) Recommend(ctx context.Context, tenantID common.TenantID, claimID common.ID) (*SettlementRecommendation, error) {
	start := time.Now()

	rec := s.engine.Generate(ctx, tenantID, claimID)
	if rec == nil {
		if s.metrics != nil {
			s.metrics.RecommendationUnavailable()
		}
		return nil, errors.New(errors.ErrCodeRecommendationUnavailable,
			"insufficient data for a recommendation")
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveRecommendation(string(rec.RecommendedOutcome), string(rec.RiskLevel), elapsed)
	}

	// Publication failure never fails the request: the recommendation is
	// already computed and the event stream is best-effort.
	if s.publisher != nil {
		if err := s.publisher.PublishRecommendationGenerated(ctx, tenantID, rec); err != nil {
			s.logger.Warn("failed to publish recommendation event",
				logging.String("claim_id", string(claimID)),
				logging.Err(err),
			)
		}
	}

	s.logger.Info("recommendation generated",
		logging.String("claim_id", string(claimID)),
		logging.String("outcome", string(rec.RecommendedOutcome)),
		logging.String("risk_level", string(rec.RiskLevel)),
		logging.Int("confidence", rec.Confidence),
		logging.Duration("elapsed", elapsed),
	)
	return rec, nil
}
