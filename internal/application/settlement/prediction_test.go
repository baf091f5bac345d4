package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictOutcomeDefaultsWithoutPrecedents(t *testing.T) {
	features := neutralFeatures()
	factors := buildReasoningFactors(features, nil, nil)

	require.NotPanics(t, func() {
		pred := predictOutcome(factors, nil)
		assert.Equal(t, 50, pred.SuccessRate)
	})
}

func TestPredictOutcomeEvidenceMonotonicity(t *testing.T) {
	precedents := favorablePrecedents(3)
	clauses := []ClauseReference{{Relevance: 85}, {Relevance: 80}}

	weak := neutralFeatures()
	weak.EvidenceStrength = 2
	strong := neutralFeatures()
	strong.EvidenceStrength = 9

	weakPred := predictOutcome(buildReasoningFactors(weak, precedents, clauses), precedents)
	strongPred := predictOutcome(buildReasoningFactors(strong, precedents, clauses), precedents)

	assert.GreaterOrEqual(t, strongPred.Score, weakPred.Score)
}

func TestPredictOutcomeClassification(t *testing.T) {
	allPositive := func() []ReasoningFactor {
		factors := make([]ReasoningFactor, 5)
		weights := []float64{0.30, 0.25, 0.20, 0.15, 0.10}
		for i, w := range weights {
			factors[i] = ReasoningFactor{Weight: w, Impact: ImpactPositive, Confidence: 90}
		}
		return factors
	}
	allNegative := func() []ReasoningFactor {
		factors := allPositive()
		for i := range factors {
			factors[i].Impact = ImpactNegative
		}
		return factors
	}

	t.Run("strong signals predict a full remedy", func(t *testing.T) {
		pred := predictOutcome(allPositive(), favorablePrecedents(10))
		assert.Equal(t, OutcomeFavorable, pred.Outcome)
		assert.Equal(t, SettlementFullRemedy, pred.SettlementType)
		assert.Equal(t, 100, pred.SuccessRate)
	})

	t.Run("weak signals predict withdrawal", func(t *testing.T) {
		losses := make([]PrecedentCase, 5)
		for i := range losses {
			losses[i] = PrecedentCase{Outcome: "unfavorable"}
		}
		pred := predictOutcome(allNegative(), losses)
		assert.Equal(t, OutcomeUnfavorable, pred.Outcome)
		assert.Equal(t, SettlementWithdraw, pred.SettlementType)
	})

	t.Run("mixed signals land in the middle", func(t *testing.T) {
		factors := allPositive()
		factors[0].Impact = ImpactNegative
		factors[1].Impact = ImpactNeutral

		// weighted = -0.27+0.18+0.135+0.09 = 0.135, norm 0.5675; with a 50%
		// success rate the blend is 54.05: partially favorable, mediation.
		pred := predictOutcome(factors, nil)
		assert.Equal(t, OutcomePartiallyFavorable, pred.Outcome)
		assert.Equal(t, SettlementMediation, pred.SettlementType)
	})
}

func TestPredictOutcomeConfidence(t *testing.T) {
	t.Run("caps at 95", func(t *testing.T) {
		factors := make([]ReasoningFactor, 5)
		weights := []float64{0.30, 0.25, 0.20, 0.15, 0.10}
		for i, w := range weights {
			factors[i] = ReasoningFactor{Weight: w, Impact: ImpactPositive, Confidence: 100}
		}
		pred := predictOutcome(factors, favorablePrecedents(50))
		assert.Equal(t, 95, pred.Confidence)
	})

	t.Run("empty precedent history reduces confidence", func(t *testing.T) {
		features := neutralFeatures()
		features.EvidenceStrength = 9
		features.TimeToFile = 3
		features.HasWitnesses = true
		clauses := []ClauseReference{{Relevance: 85}, {Relevance: 80}}

		deep := predictOutcome(buildReasoningFactors(features, favorablePrecedents(10), clauses), favorablePrecedents(10))
		shallow := predictOutcome(buildReasoningFactors(features, nil, clauses), nil)
		assert.Less(t, shallow.Confidence, deep.Confidence)
	})
}
