package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralFeatures() ClaimFeatures {
	return ClaimFeatures{
		ClaimType:        "discipline",
		Priority:         "medium",
		Complexity:       5,
		EvidenceStrength: 5,
		TimeToFile:       15,
		ViolatedClauses:  []string{},
	}
}

func favorablePrecedents(n int) []PrecedentCase {
	out := make([]PrecedentCase, n)
	for i := range out {
		out[i] = PrecedentCase{Outcome: "favorable", ResolutionDays: 30, Similarity: 80}
	}
	return out
}

func TestWeightConservation(t *testing.T) {
	factors := buildReasoningFactors(neutralFeatures(), nil, nil)
	require.Len(t, factors, 5)

	total := 0.0
	for _, f := range factors {
		total += f.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestHistoricalPrecedentFactor(t *testing.T) {
	t.Run("no precedents is neutral with zero confidence", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), nil, nil)[0]
		assert.Equal(t, "Historical Precedent", f.Name)
		assert.Equal(t, ImpactNeutral, f.Impact)
		assert.Equal(t, 0, f.Confidence)
	})

	t.Run("strong favorable history is positive", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), favorablePrecedents(5), nil)[0]
		assert.Equal(t, ImpactPositive, f.Impact)
		assert.Equal(t, 50, f.Confidence)
	})

	t.Run("confidence caps at 95", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), favorablePrecedents(12), nil)[0]
		assert.Equal(t, 95, f.Confidence)
	})

	t.Run("mostly unfavorable history is negative", func(t *testing.T) {
		precedents := favorablePrecedents(1)
		for i := 0; i < 4; i++ {
			precedents = append(precedents, PrecedentCase{Outcome: "unfavorable"})
		}
		f := buildReasoningFactors(neutralFeatures(), precedents, nil)[0]
		assert.Equal(t, ImpactNegative, f.Impact)
	})
}

func TestContractSupportFactor(t *testing.T) {
	strong := ClauseReference{Relevance: 85}
	weak := ClauseReference{Relevance: 40}

	t.Run("two strong clauses are positive", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), nil, []ClauseReference{strong, strong, weak})[1]
		assert.Equal(t, "Contract Support", f.Name)
		assert.Equal(t, ImpactPositive, f.Impact)
		assert.Equal(t, 85, f.Confidence)
	})

	t.Run("one strong clause is neutral", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), nil, []ClauseReference{strong, weak})[1]
		assert.Equal(t, ImpactNeutral, f.Impact)
	})

	t.Run("no clauses at all is negative with low confidence", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), nil, nil)[1]
		assert.Equal(t, ImpactNegative, f.Impact)
		assert.Equal(t, 50, f.Confidence)
	})

	t.Run("weak clauses only are negative but confident", func(t *testing.T) {
		f := buildReasoningFactors(neutralFeatures(), nil, []ClauseReference{weak})[1]
		assert.Equal(t, ImpactNegative, f.Impact)
		assert.Equal(t, 85, f.Confidence)
	})
}

func TestEvidenceAndTimelinessFactors(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*ClaimFeatures)
		factor     int
		wantImpact Impact
	}{
		{"strong evidence", func(f *ClaimFeatures) { f.EvidenceStrength = 7 }, 2, ImpactPositive},
		{"weak evidence", func(f *ClaimFeatures) { f.EvidenceStrength = 3 }, 2, ImpactNegative},
		{"middling evidence", func(f *ClaimFeatures) { f.EvidenceStrength = 5 }, 2, ImpactNeutral},
		{"prompt filing", func(f *ClaimFeatures) { f.TimeToFile = 10 }, 3, ImpactPositive},
		{"late filing", func(f *ClaimFeatures) { f.TimeToFile = 26 }, 3, ImpactNegative},
		{"middling filing", func(f *ClaimFeatures) { f.TimeToFile = 20 }, 3, ImpactNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			features := neutralFeatures()
			tc.mutate(&features)
			got := buildReasoningFactors(features, nil, nil)[tc.factor]
			assert.Equal(t, tc.wantImpact, got.Impact)
		})
	}
}

func TestWitnessFactorIsNeverNeutral(t *testing.T) {
	features := neutralFeatures()

	f := buildReasoningFactors(features, nil, nil)[4]
	assert.Equal(t, "Witness Support", f.Name)
	assert.Equal(t, ImpactNegative, f.Impact)

	features.HasWitnesses = true
	f = buildReasoningFactors(features, nil, nil)[4]
	assert.Equal(t, ImpactPositive, f.Impact)
	assert.Equal(t, 70, f.Confidence)
}
