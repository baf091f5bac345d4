package settlement

import (
	"fmt"
	"strings"
)

const maxCitedArticles = 3

// suggestActions maps the prediction, risk assessment, and clause coverage to
// an ordered list of human-readable next steps.
func suggestActions(pred prediction, risk RiskAssessment, clauses []ClauseReference) []string {
	var actions []string

	switch pred.Outcome {
	case OutcomeFavorable:
		actions = append(actions,
			"Proceed with the grievance with confidence",
			"Prepare complete documentation for the settlement discussion",
		)
		if len(clauses) > 0 {
			actions = append(actions, fmt.Sprintf("Cite %s in the written grievance", citedArticles(clauses)))
		}

	case OutcomePartiallyFavorable:
		actions = append(actions,
			"Consider opening settlement negotiations with management",
			"Strengthen the weak points identified in the reasoning factors",
			"Document all supporting evidence thoroughly",
		)

	case OutcomeUnfavorable:
		actions = append(actions,
			"Review the case carefully before committing further resources",
			"Consult union leadership on whether to proceed",
		)
		if risk.OverallRisk == RiskHigh || risk.OverallRisk == RiskCritical {
			actions = append(actions, "Weigh the expected cost against the likely remedy before escalating")
		}
	}

	if risk.ArbitrationLikelihood > 50 {
		actions = append(actions, "Begin arbitration preparation: similar cases frequently reach an arbitrator")
	}
	if len(clauses) == 0 {
		actions = append(actions, "Identify relevant contract clauses to support the claim")
	}

	return actions
}

// citedArticles joins up to maxCitedArticles top clause article numbers for
// the citation suggestion.
func citedArticles(clauses []ClauseReference) string {
	n := len(clauses)
	if n > maxCitedArticles {
		n = maxCitedArticles
	}
	articles := make([]string, 0, n)
	for _, cl := range clauses[:n] {
		articles = append(articles, "Article "+cl.ArticleNumber)
	}
	return strings.Join(articles, ", ")
}
