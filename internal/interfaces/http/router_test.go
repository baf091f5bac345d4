package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unionworks/unioniq/internal/application/settlement"
	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/interfaces/http/handlers"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testTenant  = "local-100"
	testClaimID = "11111111-1111-1111-1111-111111111111"
)

// ─── Fakes ───

type fakeClaimRepo struct {
	claims map[common.ID]*claim.Claim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[common.ID]*claim.Claim)}
}

func (r *fakeClaimRepo) Create(_ context.Context, c *claim.Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = common.NewID()
	}
	r.claims[c.ID] = c
	return nil
}

func (r *fakeClaimRepo) Update(_ context.Context, c *claim.Claim) error {
	existing, ok := r.claims[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return errors.New(errors.ErrCodeClaimNotFound, "claim not found")
	}
	r.claims[c.ID] = c
	return nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, tenant common.TenantID, id common.ID) (*claim.Claim, error) {
	c, ok := r.claims[id]
	if !ok || c.TenantID != tenant {
		return nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found")
	}
	return c, nil
}

func (r *fakeClaimRepo) List(_ context.Context, tenant common.TenantID, filter claim.ListFilter) ([]*claim.Claim, int64, error) {
	var out []*claim.Claim
	for _, c := range r.claims {
		if c.TenantID != tenant {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.ClaimType != "" && c.ClaimType != filter.ClaimType {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepo) ListResolvedByType(context.Context, common.TenantID, string, common.ID, int) ([]*claim.Claim, error) {
	return nil, nil
}

func (r *fakeClaimRepo) CountByStatus(_ context.Context, tenant common.TenantID) (map[claim.Status]int64, error) {
	counts := make(map[claim.Status]int64)
	for _, c := range r.claims {
		if c.TenantID == tenant {
			counts[c.Status]++
		}
	}
	return counts, nil
}

type fakeClauseRepo struct {
	clauses map[common.ID]*clause.Clause
}

func newFakeClauseRepo() *fakeClauseRepo {
	return &fakeClauseRepo{clauses: make(map[common.ID]*clause.Clause)}
}

func (r *fakeClauseRepo) Create(_ context.Context, c *clause.Clause) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = common.NewID()
	}
	r.clauses[c.ID] = c
	return nil
}

func (r *fakeClauseRepo) Update(_ context.Context, c *clause.Clause) error {
	if _, ok := r.clauses[c.ID]; !ok {
		return errors.New(errors.ErrCodeClauseNotFound, "clause not found")
	}
	r.clauses[c.ID] = c
	return nil
}

func (r *fakeClauseRepo) Delete(_ context.Context, _ common.TenantID, id common.ID) error {
	if _, ok := r.clauses[id]; !ok {
		return errors.New(errors.ErrCodeClauseNotFound, "clause not found")
	}
	delete(r.clauses, id)
	return nil
}

func (r *fakeClauseRepo) GetByID(_ context.Context, tenant common.TenantID, id common.ID) (*clause.Clause, error) {
	c, ok := r.clauses[id]
	if !ok || c.TenantID != tenant {
		return nil, errors.New(errors.ErrCodeClauseNotFound, "clause not found")
	}
	return c, nil
}

func (r *fakeClauseRepo) ListByTenant(_ context.Context, tenant common.TenantID) ([]*clause.Clause, error) {
	var out []*clause.Clause
	for _, c := range r.clauses {
		if c.TenantID == tenant {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeRecommender struct {
	rec *settlement.SettlementRecommendation
	err error
}

func (f *fakeRecommender) Recommend(context.Context, common.TenantID, common.ID) (*settlement.SettlementRecommendation, error) {
	return f.rec, f.err
}

type fixture struct {
	router      *gin.Engine
	claims      *fakeClaimRepo
	clauses     *fakeClauseRepo
	recommender *fakeRecommender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		claims:      newFakeClaimRepo(),
		clauses:     newFakeClauseRepo(),
		recommender: &fakeRecommender{},
	}
	log := logging.NewNopLogger()
	f.router = NewRouter(RouterConfig{
		ClaimHandler:          handlers.NewClaimHandler(f.claims, nil, log),
		ClauseHandler:         handlers.NewClauseHandler(f.clauses, log),
		RecommendationHandler: handlers.NewRecommendationHandler(f.recommender, log),
		HealthHandler: handlers.NewHealthHandler("test",
			handlers.DependencyCheck{Name: "database", Check: func(context.Context) error { return nil }},
		),
		Logger: log,
	})
	return f
}

func (f *fixture) do(method, path string, body any, tenant string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// ─── Tenant middleware ───

func TestMissingTenantRejected(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant ID is required")
}

func TestMalformedTenantRejected(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims", nil, "no spaces allowed!")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantEchoedInResponse(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims", nil, testTenant)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testTenant, rec.Header().Get("X-Tenant-ID"))
}

func TestTenantFromQueryFallback(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims?tenant_id="+testTenant, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ─── Claims ───

func TestCreateClaim(t *testing.T) {
	f := newFixture(t)
	rec := f.do("POST", "/api/v1/claims", gin.H{
		"claim_type":  "termination",
		"priority":    "high",
		"department":  "warehouse",
		"description": "terminated without progressive discipline",
		"details":     gin.H{"evidence_strength": 8},
	}, testTenant)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "open", resp["status"])
	assert.Equal(t, "termination", resp["claim_type"])
}

func TestCreateClaimMissingType(t *testing.T) {
	f := newFixture(t)
	rec := f.do("POST", "/api/v1/claims", gin.H{"department": "warehouse"}, testTenant)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetClaimNotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims/"+testClaimID, nil, testTenant)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), string(errors.ErrCodeClaimNotFound))
}

func TestGetClaimBadID(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims/not-a-uuid", nil, testTenant)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimTenantIsolation(t *testing.T) {
	f := newFixture(t)
	f.claims.claims[testClaimID] = &claim.Claim{
		ID: testClaimID, TenantID: "local-200", ClaimType: "overtime", Status: claim.StatusOpen,
	}
	rec := f.do("GET", "/api/v1/claims/"+testClaimID, nil, testTenant)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateClaim(t *testing.T) {
	f := newFixture(t)
	f.claims.claims[testClaimID] = &claim.Claim{
		ID: testClaimID, TenantID: testTenant, ClaimType: "overtime", Status: claim.StatusOpen,
	}
	rec := f.do("PUT", "/api/v1/claims/"+testClaimID, gin.H{
		"claim_type": "overtime",
		"status":     "resolved",
		"resolution": "favorable",
	}, testTenant)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, claim.StatusResolved, f.claims.claims[testClaimID].Status)
}

func TestListClaimsFiltered(t *testing.T) {
	f := newFixture(t)
	f.claims.claims["a"] = &claim.Claim{ID: "a", TenantID: testTenant, ClaimType: "overtime", Status: claim.StatusOpen}
	f.claims.claims["b"] = &claim.Claim{ID: "b", TenantID: testTenant, ClaimType: "termination", Status: claim.StatusResolved}

	rec := f.do("GET", "/api/v1/claims?status=open", nil, testTenant)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Claims     []map[string]any  `json:"claims"`
		Pagination common.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Claims, 1)
	assert.Equal(t, "overtime", resp.Claims[0]["claim_type"])
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListClaimsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/api/v1/claims?status=bogus", nil, testTenant)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimStats(t *testing.T) {
	f := newFixture(t)
	f.claims.claims["a"] = &claim.Claim{ID: "a", TenantID: testTenant, ClaimType: "overtime", Status: claim.StatusOpen}
	f.claims.claims["b"] = &claim.Claim{ID: "b", TenantID: testTenant, ClaimType: "overtime", Status: claim.StatusOpen}
	f.claims.claims["c"] = &claim.Claim{ID: "c", TenantID: testTenant, ClaimType: "overtime", Status: claim.StatusResolved}

	rec := f.do("GET", "/api/v1/stats/claims", nil, testTenant)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ByStatus map[string]int64 `json:"by_status"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, int64(2), resp.ByStatus["open"])
}

// ─── Clauses ───

func TestClauseLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do("POST", "/api/v1/clauses", gin.H{
		"article_number": "12",
		"section":        "12.3",
		"title":          "Progressive Discipline",
		"text":           "No employee shall be terminated without progressive discipline.",
		"clause_type":    "discipline",
	}, testTenant)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	rec = f.do("GET", "/api/v1/clauses", nil, testTenant)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Progressive Discipline")

	rec = f.do("DELETE", "/api/v1/clauses/"+id, nil, testTenant)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do("GET", "/api/v1/clauses/"+id, nil, testTenant)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClauseMissingText(t *testing.T) {
	f := newFixture(t)
	rec := f.do("POST", "/api/v1/clauses", gin.H{"article_number": "12"}, testTenant)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─── Recommendation ───

func TestGenerateRecommendation(t *testing.T) {
	f := newFixture(t)
	f.recommender.rec = &settlement.SettlementRecommendation{
		ClaimID:            testClaimID,
		RecommendedOutcome: settlement.OutcomeFavorable,
		SettlementType:     settlement.SettlementFullRemedy,
		Confidence:         82,
		RiskLevel:          settlement.RiskMedium,
	}

	rec := f.do("POST", "/api/v1/claims/"+testClaimID+"/recommendation", nil, testTenant)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp settlement.SettlementRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, settlement.OutcomeFavorable, resp.RecommendedOutcome)
	assert.Equal(t, 82, resp.Confidence)
}

func TestGenerateRecommendationUnavailable(t *testing.T) {
	f := newFixture(t)
	f.recommender.err = errors.New(errors.ErrCodeRecommendationUnavailable, "insufficient data for a recommendation")

	rec := f.do("POST", "/api/v1/claims/"+testClaimID+"/recommendation", nil, testTenant)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), string(errors.ErrCodeRecommendationUnavailable))
}

func TestInternalErrorsMasked(t *testing.T) {
	f := newFixture(t)
	f.recommender.err = errors.New(errors.ErrCodeDatabaseError, "pq: connection refused to 10.0.0.5")

	rec := f.do("POST", "/api/v1/claims/"+testClaimID+"/recommendation", nil, testTenant)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

// ─── Health ───

func TestLiveness(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessHealthy(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestReadinessDependencyDown(t *testing.T) {
	log := logging.NewNopLogger()
	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("test",
			handlers.DependencyCheck{Name: "database", Check: func(context.Context) error { return nil }},
			handlers.DependencyCheck{Name: "cache", Check: func(context.Context) error {
				return errors.New(errors.ErrCodeCacheError, "redis unreachable")
			}},
		),
		Logger: log,
	})

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
	assert.Contains(t, rec.Body.String(), "redis unreachable")
}
