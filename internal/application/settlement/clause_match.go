package settlement

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
)

const (
	// minClauseRelevance is the floor below which a clause is discarded.
	minClauseRelevance = 20

	// clauseTypeBonus is added once per search term found in the clause's
	// type tag, on top of the base ratio score.  Deliberately uncapped
	// before the final clamp: type alignment is the strongest signal a
	// clause governs the claim.
	clauseTypeBonus = 20.0
)

// findRelevantClauses scans the tenant's full clause library and returns the
// clauses ranked by keyword relevance to the claim.  Any store failure
// (including timeout) degrades to an empty list.
func (e *Engine) findRelevantClauses(ctx context.Context, current *claim.Claim) []ClauseReference {
	qctx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	library, err := e.clauses.ListByTenant(qctx, current.TenantID)
	if err != nil {
		e.logger.Warn("clause library query failed, continuing without contract support",
			logging.String("claim_id", string(current.ID)),
			logging.Err(err),
		)
		return nil
	}

	terms := buildSearchTerms(current.ClaimType, current.Description)
	if len(terms) == 0 {
		return nil
	}

	refs := make([]ClauseReference, 0, len(library))
	for _, cl := range library {
		relevance := clauseRelevance(cl, terms)
		if relevance <= minClauseRelevance {
			continue
		}
		refs = append(refs, ClauseReference{
			ClauseID:           cl.ID,
			ArticleNumber:      cl.ArticleNumber,
			Section:            cl.Section,
			Title:              cl.Title,
			Content:            cl.Text,
			Relevance:          relevance,
			ApplicationContext: applicationContext(cl, current),
		})
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Relevance > refs[j].Relevance
	})

	return refs
}

// buildSearchTerms derives the lowercased search-term set: every underscore
// component of the claim type plus every description word longer than 4
// characters, deduplicated in first-seen order.
func buildSearchTerms(claimType, description string) []string {
	seen := make(map[string]struct{})
	var terms []string

	add := func(t string) {
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, part := range strings.Split(strings.ToLower(claimType), "_") {
		add(part)
	}
	for _, w := range strings.Fields(strings.ToLower(description)) {
		if len(w) > 4 {
			add(w)
		}
	}

	return terms
}

// clauseRelevance scores one clause against the search terms as an integer in
// [0, 100]: the base score is the fraction of terms appearing anywhere in the
// clause's title, text, or type tag, scaled to 100; each term found in the
// type tag specifically adds clauseTypeBonus on top before the final clamp.
func clauseRelevance(cl *clause.Clause, terms []string) int {
	haystack := strings.ToLower(cl.Title + " " + cl.Text + " " + cl.ClauseType)
	typeTag := strings.ToLower(cl.ClauseType)

	matching := 0
	bonus := 0.0
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			matching++
		}
		if strings.Contains(typeTag, t) {
			bonus += clauseTypeBonus
		}
	}

	score := float64(matching)/float64(len(terms))*100 + bonus
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// applicationContext produces the one-line explanation of why the clause was
// surfaced for this claim.
func applicationContext(cl *clause.Clause, current *claim.Claim) string {
	article := cl.ArticleNumber
	if cl.Section != "" {
		article = fmt.Sprintf("%s §%s", cl.ArticleNumber, cl.Section)
	}
	return fmt.Sprintf("Article %s (%s) applies to this %s claim",
		article, cl.Title, strings.ReplaceAll(current.ClaimType, "_", " "))
}
