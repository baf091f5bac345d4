package settlement

import "math"

const (
	factorBlendWeight  = 0.6
	successBlendWeight = 0.4
	maxConfidence      = 95
)

// predictOutcome blends the weighted reasoning-factor score with the precedent
// success rate into the final classification.  Never fails: an empty precedent
// list falls back to a 50% success rate.
func predictOutcome(factors []ReasoningFactor, precedents []PrecedentCase) prediction {
	// Weighted factor score in [-1, 1]: each factor contributes its impact
	// direction scaled by weight and confidence.  Total weight is 1.0 so no
	// renormalisation is needed.
	weighted := 0.0
	positives, negatives := 0, 0
	for _, f := range factors {
		var direction float64
		switch f.Impact {
		case ImpactPositive:
			direction = 1
			positives++
		case ImpactNegative:
			direction = -1
			negatives++
		}
		weighted += direction * f.Weight * float64(f.Confidence) / 100
	}
	normalized := (weighted + 1) / 2

	successRate := favorableRate(precedents) * 100
	final := (normalized*factorBlendWeight + successRate/100*successBlendWeight) * 100

	var outcome Outcome
	var settlementType SettlementType
	switch {
	case final >= 70:
		outcome = OutcomeFavorable
		settlementType = SettlementFullRemedy
	case final >= 50:
		outcome = OutcomePartiallyFavorable
		if final >= 60 {
			settlementType = SettlementPartialRemedy
		} else {
			settlementType = SettlementMediation
		}
	default:
		outcome = OutcomeUnfavorable
		if final >= 30 {
			settlementType = SettlementArbitration
		} else {
			settlementType = SettlementWithdraw
		}
	}

	// Confidence rewards consensus among the factors, depth of precedent
	// history, and the normalised factor score itself.
	alignment := 0.0
	if len(factors) > 0 {
		alignment = math.Abs(float64(positives-negatives)) / float64(len(factors))
	}
	confidence := int(math.Round(100 * (alignment*0.5 + float64(len(precedents))/50*0.3 + normalized*0.2)))
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return prediction{
		Outcome:        outcome,
		SettlementType: settlementType,
		Confidence:     confidence,
		SuccessRate:    int(math.Round(successRate)),
		Score:          final,
	}
}
