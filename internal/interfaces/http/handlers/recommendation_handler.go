package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/application/settlement"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/interfaces/http/middleware"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// Recommender produces settlement recommendations.  Satisfied by
// settlement.Service.
type Recommender interface {
	Recommend(ctx context.Context, tenantID common.TenantID, claimID common.ID) (*settlement.SettlementRecommendation, error)
}

// RecommendationHandler serves the settlement recommendation endpoint.
type RecommendationHandler struct {
	recommender Recommender
	logger      logging.Logger
}

func NewRecommendationHandler(recommender Recommender, logger logging.Logger) *RecommendationHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RecommendationHandler{
		recommender: recommender,
		logger:      logger.Named("http.recommendations"),
	}
}

// Generate handles POST /api/v1/claims/:claimID/recommendation.  POST rather
// than GET: every call recomputes from current precedent and clause data, and
// a generated event is published as a side effect.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "claimID")
	if !ok {
		return
	}

	rec, err := h.recommender.Recommend(c.Request.Context(), tenant, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
