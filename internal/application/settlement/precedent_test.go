package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unionworks/unioniq/internal/domain/claim"
)

func baseClaim() *claim.Claim {
	return &claim.Claim{
		ID:          "aaaaaaaa-0000-0000-0000-000000000001",
		TenantID:    "local-100",
		ClaimType:   "termination",
		Priority:    claim.PriorityHigh,
		Department:  "warehouse",
		Description: "terminated without progressive discipline after verbal warning",
		Status:      claim.StatusOpen,
		Details: claim.Details{
			ViolatedClauseIDs: []string{"cl-1", "cl-2"},
		},
	}
}

func TestCalculateSimilarityScoreBounds(t *testing.T) {
	a := baseClaim()

	cases := []*claim.Claim{
		baseClaim(),
		{ClaimType: "overtime", Priority: claim.PriorityLow, Description: "unpaid overtime hours"},
		{},
		{ClaimType: "termination", Description: "completely unrelated words here about scheduling conflicts instead"},
	}
	for _, b := range cases {
		score := calculateSimilarityScore(a, b)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestSelfSimilarityStructuralFloor(t *testing.T) {
	a := baseClaim()
	b := baseClaim()
	b.ID = "aaaaaaaa-0000-0000-0000-000000000002"

	assert.GreaterOrEqual(t, calculateSimilarityScore(a, b), 95)
}

func TestSimilarityComponents(t *testing.T) {
	t.Run("type mismatch drops 30 points", func(t *testing.T) {
		a, b := baseClaim(), baseClaim()
		b.ClaimType = "overtime"
		diff := calculateSimilarityScore(a, a) - calculateSimilarityScore(a, b)
		assert.Equal(t, 30, diff)
	})

	t.Run("department absent on one side earns nothing", func(t *testing.T) {
		a, b := baseClaim(), baseClaim()
		b.Department = ""
		diff := calculateSimilarityScore(a, a) - calculateSimilarityScore(a, b)
		assert.Equal(t, 15, diff)
	})

	t.Run("empty clause lists earn nothing", func(t *testing.T) {
		a, b := baseClaim(), baseClaim()
		a.Details.ViolatedClauseIDs = nil
		b.Details.ViolatedClauseIDs = nil
		assert.Equal(t, 80, calculateSimilarityScore(a, b))
	})
}

func TestDescriptionOverlap(t *testing.T) {
	t.Run("identical text earns full envelope", func(t *testing.T) {
		assert.InDelta(t, 25.0, descriptionOverlap("denied overtime pay again", "denied overtime pay again"), 0.001)
	})

	t.Run("short words are ignored", func(t *testing.T) {
		// Every candidate word is 3 characters or fewer.
		assert.Equal(t, 0.0, descriptionOverlap("denied overtime pay", "the and was for"))
	})

	t.Run("partial overlap is proportional", func(t *testing.T) {
		// Candidate qualifying words: "denied", "overtime", "shift", "swap";
		// two appear in the current description.
		got := descriptionOverlap("denied overtime pay", "denied overtime shift swap")
		assert.InDelta(t, 12.5, got, 0.001)
	})
}

func TestClauseOverlap(t *testing.T) {
	assert.Equal(t, 0.0, clauseOverlap(nil, []string{"a"}))
	assert.Equal(t, 0.0, clauseOverlap([]string{"a"}, nil))
	assert.InDelta(t, 20.0, clauseOverlap([]string{"a", "b"}, []string{"b", "a"}), 0.001)
	// Intersection of 1 over max size 3.
	assert.InDelta(t, 20.0/3, clauseOverlap([]string{"a"}, []string{"a", "b", "c"}), 0.001)
}

func TestExtractKeyFactors(t *testing.T) {
	resolved := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	filed := resolved.AddDate(0, 0, -20)

	c := baseClaim()
	c.Status = claim.StatusResolved
	c.Resolution = claim.ResolutionFavorable
	c.FiledDate = &filed
	c.ResolvedDate = &resolved
	c.Details.EvidenceStrength = 9
	c.Details.Witnesses = []string{"a", "b", "c"}

	factors := extractKeyFactors(c)
	assert.LessOrEqual(t, len(factors), maxKeyFactors)
	assert.Contains(t, factors, "termination grievance")
	assert.Contains(t, factors, "High priority issue")
	assert.Contains(t, factors, "Strong evidence")
	assert.Contains(t, factors, "Multiple witnesses")
	assert.Contains(t, factors, "Management accepted grievance")
}
