package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/interfaces/http/middleware"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// ClaimEventPublisher emits claim lifecycle events.  Optional; a nil publisher
// disables event emission without changing handler behaviour.
type ClaimEventPublisher interface {
	PublishClaimCreated(ctx context.Context, tenantID common.TenantID, c *claim.Claim) error
	PublishClaimUpdated(ctx context.Context, tenantID common.TenantID, c *claim.Claim) error
}

// ClaimHandler serves the claim CRUD endpoints.
type ClaimHandler struct {
	repo   claim.Repository
	events ClaimEventPublisher
	logger logging.Logger
}

func NewClaimHandler(repo claim.Repository, events ClaimEventPublisher, logger logging.Logger) *ClaimHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ClaimHandler{repo: repo, events: events, logger: logger.Named("http.claims")}
}

// claimDetailsPayload mirrors claim.Details on the wire.
type claimDetailsPayload struct {
	ComplexityScore     int      `json:"complexity_score,omitempty"`
	EvidenceStrength    int      `json:"evidence_strength,omitempty"`
	ViolatedClauseIDs   []string `json:"violated_clause_ids,omitempty"`
	Witnesses           []string `json:"witnesses,omitempty"`
	SettledAmount       *float64 `json:"settled_amount,omitempty"`
	ArbitrationDecision string   `json:"arbitration_decision,omitempty"`
	ManagementPosition  string   `json:"management_position,omitempty"`
}

func (p claimDetailsPayload) toDomain() claim.Details {
	return claim.Details{
		ComplexityScore:     p.ComplexityScore,
		EvidenceStrength:    p.EvidenceStrength,
		ViolatedClauseIDs:   p.ViolatedClauseIDs,
		Witnesses:           p.Witnesses,
		SettledAmount:       p.SettledAmount,
		ArbitrationDecision: p.ArbitrationDecision,
		ManagementPosition:  p.ManagementPosition,
	}
}

func detailsPayload(d claim.Details) claimDetailsPayload {
	return claimDetailsPayload{
		ComplexityScore:     d.ComplexityScore,
		EvidenceStrength:    d.EvidenceStrength,
		ViolatedClauseIDs:   d.ViolatedClauseIDs,
		Witnesses:           d.Witnesses,
		SettledAmount:       d.SettledAmount,
		ArbitrationDecision: d.ArbitrationDecision,
		ManagementPosition:  d.ManagementPosition,
	}
}

type createClaimRequest struct {
	ClaimType    string              `json:"claim_type" binding:"required"`
	Priority     string              `json:"priority"`
	Department   string              `json:"department"`
	Description  string              `json:"description"`
	FiledDate    *time.Time          `json:"filed_date"`
	IncidentDate *time.Time          `json:"incident_date"`
	Details      claimDetailsPayload `json:"details"`
}

type updateClaimRequest struct {
	ClaimType    string              `json:"claim_type" binding:"required"`
	Priority     string              `json:"priority"`
	Department   string              `json:"department"`
	Description  string              `json:"description"`
	Status       string              `json:"status" binding:"required"`
	Resolution   string              `json:"resolution"`
	FiledDate    *time.Time          `json:"filed_date"`
	IncidentDate *time.Time          `json:"incident_date"`
	ResolvedDate *time.Time          `json:"resolved_date"`
	Details      claimDetailsPayload `json:"details"`
}

type claimResponse struct {
	ID           string              `json:"id"`
	ClaimType    string              `json:"claim_type"`
	Priority     string              `json:"priority,omitempty"`
	Department   string              `json:"department,omitempty"`
	Description  string              `json:"description,omitempty"`
	Status       string              `json:"status"`
	Resolution   string              `json:"resolution,omitempty"`
	FiledDate    *time.Time          `json:"filed_date,omitempty"`
	IncidentDate *time.Time          `json:"incident_date,omitempty"`
	ResolvedDate *time.Time          `json:"resolved_date,omitempty"`
	Details      claimDetailsPayload `json:"details"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func toClaimResponse(c *claim.Claim) claimResponse {
	return claimResponse{
		ID:           string(c.ID),
		ClaimType:    c.ClaimType,
		Priority:     string(c.Priority),
		Department:   c.Department,
		Description:  c.Description,
		Status:       string(c.Status),
		Resolution:   string(c.Resolution),
		FiledDate:    c.FiledDate,
		IncidentDate: c.IncidentDate,
		ResolvedDate: c.ResolvedDate,
		Details:      detailsPayload(c.Details),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type claimListResponse struct {
	Claims     []claimResponse   `json:"claims"`
	Pagination common.Pagination `json:"pagination"`
}

// Create handles POST /api/v1/claims.
func (h *ClaimHandler) Create(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)

	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, "invalid request body: "+err.Error())
		return
	}

	cl := &claim.Claim{
		TenantID:     tenant,
		ClaimType:    req.ClaimType,
		Priority:     claim.Priority(req.Priority),
		Department:   req.Department,
		Description:  req.Description,
		FiledDate:    req.FiledDate,
		IncidentDate: req.IncidentDate,
		Status:       claim.StatusOpen,
		Details:      req.Details.toDomain(),
	}

	if err := h.repo.Create(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}

	h.publish(c.Request.Context(), tenant, cl, false)
	c.JSON(http.StatusCreated, toClaimResponse(cl))
}

// Get handles GET /api/v1/claims/:claimID.
func (h *ClaimHandler) Get(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "claimID")
	if !ok {
		return
	}

	cl, err := h.repo.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClaimResponse(cl))
}

// Update handles PUT /api/v1/claims/:claimID.  Full replacement: the request
// carries every mutable field.
func (h *ClaimHandler) Update(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "claimID")
	if !ok {
		return
	}

	var req updateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, "invalid request body: "+err.Error())
		return
	}

	cl := &claim.Claim{
		ID:           id,
		TenantID:     tenant,
		ClaimType:    req.ClaimType,
		Priority:     claim.Priority(req.Priority),
		Department:   req.Department,
		Description:  req.Description,
		Status:       claim.Status(req.Status),
		Resolution:   claim.Resolution(req.Resolution),
		FiledDate:    req.FiledDate,
		IncidentDate: req.IncidentDate,
		ResolvedDate: req.ResolvedDate,
		Details:      req.Details.toDomain(),
	}

	if err := h.repo.Update(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}

	h.publish(c.Request.Context(), tenant, cl, true)
	c.JSON(http.StatusOK, toClaimResponse(cl))
}

// List handles GET /api/v1/claims with status/claim_type/department filters.
func (h *ClaimHandler) List(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)

	filter := claim.ListFilter{
		Status:     claim.Status(c.Query("status")),
		ClaimType:  c.Query("claim_type"),
		Department: c.Query("department"),
		Pagination: parsePagination(c),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeValidationError(c, "unknown status filter")
		return
	}

	claims, total, err := h.repo.List(c.Request.Context(), tenant, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := claimListResponse{
		Claims:     make([]claimResponse, 0, len(claims)),
		Pagination: filter.Pagination,
	}
	resp.Pagination.Total = total
	for _, cl := range claims {
		resp.Claims = append(resp.Claims, toClaimResponse(cl))
	}
	c.JSON(http.StatusOK, resp)
}

// Stats handles GET /api/v1/stats/claims: per-status counts for dashboards.
func (h *ClaimHandler) Stats(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)

	counts, err := h.repo.CountByStatus(c.Request.Context(), tenant)
	if err != nil {
		writeError(c, err)
		return
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for status, n := range counts {
		byStatus[string(status)] = n
		total += n
	}
	c.JSON(http.StatusOK, gin.H{"by_status": byStatus, "total": total})
}

// publish emits the lifecycle event; failures are logged, never surfaced.
func (h *ClaimHandler) publish(ctx context.Context, tenant common.TenantID, cl *claim.Claim, updated bool) {
	if h.events == nil {
		return
	}
	var err error
	if updated {
		err = h.events.PublishClaimUpdated(ctx, tenant, cl)
	} else {
		err = h.events.PublishClaimCreated(ctx, tenant, cl)
	}
	if err != nil {
		h.logger.Warn("failed to publish claim event",
			logging.String("claim_id", string(cl.ID)),
			logging.Err(err),
		)
	}
}
