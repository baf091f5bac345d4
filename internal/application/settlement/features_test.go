package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unionworks/unioniq/internal/domain/claim"
)

func TestExtractFeatures(t *testing.T) {
	incident := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	filed := incident.AddDate(0, 0, 8)

	c := baseClaim()
	c.IncidentDate = &incident
	c.FiledDate = &filed
	c.Details.ComplexityScore = 7
	c.Details.EvidenceStrength = 8
	c.Details.Witnesses = []string{"j. alvarez"}
	c.Details.ManagementPosition = "denies any violation"

	f := extractFeatures(c)

	assert.Equal(t, "termination", f.ClaimType)
	assert.Equal(t, "high", f.Priority)
	assert.Equal(t, "warehouse", f.Department)
	assert.Equal(t, 7, f.Complexity)
	assert.Equal(t, 8, f.EvidenceStrength)
	assert.Equal(t, 8, f.TimeToFile)
	assert.Equal(t, []string{"cl-1", "cl-2"}, f.ViolatedClauses)
	assert.True(t, f.HasWitnesses)
	assert.False(t, f.HasPastGrievances)
	assert.Equal(t, "denies any violation", f.ManagementPosition)
}

func TestExtractFeaturesDefaults(t *testing.T) {
	c := &claim.Claim{
		ID:        "aaaaaaaa-0000-0000-0000-000000000009",
		TenantID:  "local-100",
		ClaimType: "scheduling",
		Status:    claim.StatusOpen,
	}

	f := extractFeatures(c)

	assert.Equal(t, scaleMidpoint, f.Complexity)
	assert.Equal(t, scaleMidpoint, f.EvidenceStrength)
	assert.Equal(t, 0, f.TimeToFile)
	assert.NotNil(t, f.ViolatedClauses)
	assert.Empty(t, f.ViolatedClauses)
	assert.False(t, f.HasWitnesses)
}
