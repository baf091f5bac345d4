package settlement

import (
	"fmt"
	"math"
)

const (
	riskBaseline          = 50
	riskPerNegativeFactor = 15
	riskArbitrationBump   = 10

	// Arbitration likelihood assumed when there is no precedent history.
	defaultArbitrationLikelihood = 30.0

	// Flat cost placeholders, not a real cost model.
	costWithArbitration = 15000.0
	costWithoutArb      = 5000.0

	defaultDurationDays = 45
)

// assessRisk converts the negative reasoning factors and the
// arbitration-precedent ratio into an overall risk classification with a
// cost and duration estimate.
func assessRisk(factors []ReasoningFactor, precedents []PrecedentCase) RiskAssessment {
	score := riskBaseline
	var riskFactors []RiskFactor

	for _, f := range factors {
		if f.Impact != ImpactNegative {
			continue
		}
		score += riskPerNegativeFactor
		riskFactors = append(riskFactors, RiskFactor{
			Category:    f.Name,
			Severity:    "medium",
			Description: f.Description,
			Mitigation:  fmt.Sprintf("Address %s concerns before proceeding", f.Name),
		})
	}

	arbLikelihood := arbitrationLikelihood(precedents)
	if arbLikelihood > 50 {
		score += riskArbitrationBump
		riskFactors = append(riskFactors, RiskFactor{
			Category:    "Arbitration Risk",
			Severity:    "high",
			Description: fmt.Sprintf("%.0f%% of similar cases proceeded to arbitration", arbLikelihood),
			Mitigation:  "Pursue a negotiated settlement before the arbitration stage",
		})
	}

	// The tag thresholds read the unclamped running total; only the reported
	// score is clamped.  Band edges are inclusive so the untouched neutral
	// baseline classifies as medium, not high.
	var overall RiskLevel
	switch {
	case score <= 30:
		overall = RiskLow
	case score <= riskBaseline:
		overall = RiskMedium
	case score <= 70:
		overall = RiskHigh
	default:
		overall = RiskCritical
	}

	reported := score
	if reported > 100 {
		reported = 100
	}
	if reported < 0 {
		reported = 0
	}

	cost := costWithoutArb
	if arbLikelihood > 50 {
		cost = costWithArbitration
	}

	return RiskAssessment{
		OverallRisk:           overall,
		RiskScore:             reported,
		RiskFactors:           riskFactors,
		ArbitrationLikelihood: arbLikelihood,
		EstimatedCost:         cost,
		EstimatedDurationDays: estimatedDuration(precedents),
	}
}

// arbitrationLikelihood is the percentage of precedents that carry an
// arbitration decision, defaulting when there is no history.
func arbitrationLikelihood(precedents []PrecedentCase) float64 {
	if len(precedents) == 0 {
		return defaultArbitrationLikelihood
	}
	arbitrated := 0
	for _, p := range precedents {
		if p.ArbitrationDecision != "" {
			arbitrated++
		}
	}
	return float64(arbitrated) / float64(len(precedents)) * 100
}

// estimatedDuration averages precedent resolution days, rounded, defaulting
// when there is no history.
func estimatedDuration(precedents []PrecedentCase) int {
	if len(precedents) == 0 {
		return defaultDurationDays
	}
	total := 0
	for _, p := range precedents {
		total += p.ResolutionDays
	}
	return int(math.Round(float64(total) / float64(len(precedents))))
}
