package settlement

import (
	"github.com/unionworks/unioniq/internal/domain/claim"
)

const (
	// scaleMidpoint is the neutral default for unscored 1–10 metadata.
	scaleMidpoint = 5
)

// extractFeatures normalises a claim into the flat feature set the scoring
// stages consume.  It has no failure mode: every missing field degrades to a
// neutral default rather than erroring.
func extractFeatures(c *claim.Claim) ClaimFeatures {
	complexity := c.Details.ComplexityScore
	if complexity == 0 {
		complexity = scaleMidpoint
	}
	evidence := c.Details.EvidenceStrength
	if evidence == 0 {
		evidence = scaleMidpoint
	}

	violated := c.Details.ViolatedClauseIDs
	if violated == nil {
		violated = []string{}
	}

	return ClaimFeatures{
		ClaimType:          c.ClaimType,
		Priority:           string(c.Priority),
		Department:         c.Department,
		Complexity:         complexity,
		EvidenceStrength:   evidence,
		TimeToFile:         c.DaysToFile(),
		ViolatedClauses:    violated,
		HasWitnesses:       len(c.Details.Witnesses) > 0,
		HasPastGrievances:  false,
		ManagementPosition: c.Details.ManagementPosition,
	}
}
