package settlement

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
)

const (
	// minSimilarity is the precision floor: candidates scoring at or below
	// it are discarded so unrelated cases never pollute the precedent list.
	minSimilarity = 30

	// maxKeyFactors bounds the per-precedent key-factor strings.
	maxKeyFactors = 5
)

// Similarity score contributions.  The five envelopes sum to 100.
const (
	typeMatchPoints       = 30.0
	priorityMatchPoints   = 10.0
	departmentMatchPoints = 15.0
	keywordOverlapPoints  = 25.0
	clauseOverlapPoints   = 20.0
)

// findPrecedents scans recently resolved claims of the same type, scores
// pairwise similarity, and returns the survivors ranked best-first.  Any
// store failure (including timeout) degrades to an empty list: precedent
// absence is always a valid, non-fatal state.
func (e *Engine) findPrecedents(ctx context.Context, current *claim.Claim) []PrecedentCase {
	qctx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	candidates, err := e.claims.ListResolvedByType(qctx, current.TenantID, current.ClaimType, current.ID, e.precedentLimit)
	if err != nil {
		e.logger.Warn("precedent query failed, continuing without precedent history",
			logging.String("claim_id", string(current.ID)),
			logging.Err(err),
		)
		return nil
	}

	precedents := make([]PrecedentCase, 0, len(candidates))
	for _, cand := range candidates {
		score := calculateSimilarityScore(current, cand)
		if score <= minSimilarity {
			continue
		}
		precedents = append(precedents, PrecedentCase{
			ClaimID:             cand.ID,
			ClaimType:           cand.ClaimType,
			Outcome:             string(cand.Resolution),
			ResolutionDays:      cand.ResolutionDays(),
			Similarity:          score,
			KeyFactors:          extractKeyFactors(cand),
			SettledAmount:       cand.Details.SettledAmount,
			ArbitrationDecision: cand.Details.ArbitrationDecision,
		})
	}

	// Stable sort keeps the query's recency order among equal scores.
	sort.SliceStable(precedents, func(i, j int) bool {
		return precedents[i].Similarity > precedents[j].Similarity
	})

	return precedents
}

// calculateSimilarityScore computes the pairwise similarity of two claims as
// an integer in [0, 100]:
//
//	+30  claim types match exactly
//	+10  priorities match exactly
//	+15  departments present on both and match exactly
//	+25  proportional keyword overlap between descriptions
//	+20  proportional violated-clause-ID overlap
//
// The type bonus is always earned when candidates come from the same-type
// precedent query; it stays in the formula so the scorer ranks arbitrary
// claim pairs correctly too.
func calculateSimilarityScore(a, b *claim.Claim) int {
	score := 0.0

	if a.ClaimType == b.ClaimType {
		score += typeMatchPoints
	}
	if a.Priority == b.Priority {
		score += priorityMatchPoints
	}
	if a.Department != "" && b.Department != "" && a.Department == b.Department {
		score += departmentMatchPoints
	}

	score += descriptionOverlap(a.Description, b.Description)
	score += clauseOverlap(a.Details.ViolatedClauseIDs, b.Details.ViolatedClauseIDs)

	n := int(math.Round(score))
	if n > 100 {
		n = 100
	}
	if n < 0 {
		n = 0
	}
	return n
}

// descriptionOverlap returns up to keywordOverlapPoints proportional to how
// many of the candidate's qualifying words appear in the current claim's
// description.  Tokenization is plain whitespace splitting; only words longer
// than 3 characters count.  Returns 0 when the candidate has no qualifying
// words.
func descriptionOverlap(current, candidate string) float64 {
	currentWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(current)) {
		if len(w) > 3 {
			currentWords[w] = struct{}{}
		}
	}

	candidateWords := 0
	matching := 0
	for _, w := range strings.Fields(strings.ToLower(candidate)) {
		if len(w) <= 3 {
			continue
		}
		candidateWords++
		if _, ok := currentWords[w]; ok {
			matching++
		}
	}

	if candidateWords == 0 {
		return 0
	}
	return float64(matching) / float64(candidateWords) * keywordOverlapPoints
}

// clauseOverlap returns up to clauseOverlapPoints proportional to the
// violated-clause-ID intersection over the larger of the two sets.  Returns 0
// when either list is empty.
func clauseOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	overlap := 0
	for _, id := range b {
		if _, ok := set[id]; ok {
			overlap++
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(overlap) / float64(larger) * clauseOverlapPoints
}

// extractKeyFactors produces the short human-readable markers shown next to a
// precedent in reports.
func extractKeyFactors(c *claim.Claim) []string {
	factors := make([]string, 0, maxKeyFactors)

	factors = append(factors, fmt.Sprintf("%s grievance", strings.ReplaceAll(c.ClaimType, "_", " ")))

	if c.Priority == claim.PriorityHigh || c.Priority == claim.PriorityUrgent {
		factors = append(factors, "High priority issue")
	}
	if c.Details.EvidenceStrength > 7 {
		factors = append(factors, "Strong evidence")
	}
	if len(c.Details.Witnesses) > 2 {
		factors = append(factors, "Multiple witnesses")
	}
	if c.Resolution == claim.ResolutionFavorable {
		factors = append(factors, "Management accepted grievance")
	}

	if len(factors) > maxKeyFactors {
		factors = factors[:maxKeyFactors]
	}
	return factors
}
