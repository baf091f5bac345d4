package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/interfaces/http/middleware"
)

// ClauseHandler serves the contract-clause-library endpoints.  It writes
// through clause.Repository; when the repository is the cached decorator,
// writes also invalidate the tenant's cached library.
type ClauseHandler struct {
	repo   clause.Repository
	logger logging.Logger
}

func NewClauseHandler(repo clause.Repository, logger logging.Logger) *ClauseHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ClauseHandler{repo: repo, logger: logger.Named("http.clauses")}
}

type clauseRequest struct {
	ArticleNumber string `json:"article_number" binding:"required"`
	Section       string `json:"section"`
	Title         string `json:"title"`
	Text          string `json:"text" binding:"required"`
	ClauseType    string `json:"clause_type"`
}

type clauseResponse struct {
	ID            string    `json:"id"`
	ArticleNumber string    `json:"article_number"`
	Section       string    `json:"section,omitempty"`
	Title         string    `json:"title,omitempty"`
	Text          string    `json:"text"`
	ClauseType    string    `json:"clause_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toClauseResponse(cl *clause.Clause) clauseResponse {
	return clauseResponse{
		ID:            string(cl.ID),
		ArticleNumber: cl.ArticleNumber,
		Section:       cl.Section,
		Title:         cl.Title,
		Text:          cl.Text,
		ClauseType:    cl.ClauseType,
		CreatedAt:     cl.CreatedAt,
		UpdatedAt:     cl.UpdatedAt,
	}
}

// Create handles POST /api/v1/clauses.
func (h *ClauseHandler) Create(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)

	var req clauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, "invalid request body: "+err.Error())
		return
	}

	cl := &clause.Clause{
		TenantID:      tenant,
		ArticleNumber: req.ArticleNumber,
		Section:       req.Section,
		Title:         req.Title,
		Text:          req.Text,
		ClauseType:    req.ClauseType,
	}
	if err := h.repo.Create(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClauseResponse(cl))
}

// Get handles GET /api/v1/clauses/:clauseID.
func (h *ClauseHandler) Get(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "clauseID")
	if !ok {
		return
	}

	cl, err := h.repo.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClauseResponse(cl))
}

// Update handles PUT /api/v1/clauses/:clauseID.
func (h *ClauseHandler) Update(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "clauseID")
	if !ok {
		return
	}

	var req clauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, "invalid request body: "+err.Error())
		return
	}

	cl := &clause.Clause{
		ID:            id,
		TenantID:      tenant,
		ArticleNumber: req.ArticleNumber,
		Section:       req.Section,
		Title:         req.Title,
		Text:          req.Text,
		ClauseType:    req.ClauseType,
	}
	if err := h.repo.Update(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClauseResponse(cl))
}

// Delete handles DELETE /api/v1/clauses/:clauseID.
func (h *ClauseHandler) Delete(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)
	id, ok := pathID(c, "clauseID")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), tenant, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/clauses: the tenant's full clause library, ordered
// by article and section.
func (h *ClauseHandler) List(c *gin.Context) {
	tenant, _ := middleware.TenantID(c)

	clauses, err := h.repo.ListByTenant(c.Request.Context(), tenant)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]clauseResponse, 0, len(clauses))
	for _, cl := range clauses {
		out = append(out, toClauseResponse(cl))
	}
	c.JSON(http.StatusOK, gin.H{"clauses": out, "total": len(out)})
}
