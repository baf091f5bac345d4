package settlement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func containsSubstring(actions []string, substr string) bool {
	for _, a := range actions {
		if strings.Contains(a, substr) {
			return true
		}
	}
	return false
}

func TestSuggestActionsFavorable(t *testing.T) {
	clauses := []ClauseReference{
		{ArticleNumber: "12", Relevance: 90},
		{ArticleNumber: "7", Relevance: 85},
		{ArticleNumber: "3", Relevance: 80},
		{ArticleNumber: "22", Relevance: 75},
	}
	pred := prediction{Outcome: OutcomeFavorable, SettlementType: SettlementFullRemedy}
	risk := RiskAssessment{OverallRisk: RiskLow, ArbitrationLikelihood: 20}

	actions := suggestActions(pred, risk, clauses)

	assert.True(t, containsSubstring(actions, "confidence"))
	assert.True(t, containsSubstring(actions, "documentation"))

	// Citation names at most the top three articles.
	assert.True(t, containsSubstring(actions, "Article 12, Article 7, Article 3"))
	assert.False(t, containsSubstring(actions, "Article 22"))
}

func TestSuggestActionsPartiallyFavorable(t *testing.T) {
	pred := prediction{Outcome: OutcomePartiallyFavorable}
	risk := RiskAssessment{OverallRisk: RiskMedium, ArbitrationLikelihood: 30}

	actions := suggestActions(pred, risk, []ClauseReference{{ArticleNumber: "5", Relevance: 60}})

	assert.True(t, containsSubstring(actions, "settlement negotiations"))
	assert.True(t, containsSubstring(actions, "weak points"))
	assert.True(t, containsSubstring(actions, "evidence"))
}

func TestSuggestActionsUnfavorable(t *testing.T) {
	pred := prediction{Outcome: OutcomeUnfavorable}

	t.Run("high risk adds the cost-benefit line", func(t *testing.T) {
		risk := RiskAssessment{OverallRisk: RiskCritical, ArbitrationLikelihood: 30}
		actions := suggestActions(pred, risk, []ClauseReference{{ArticleNumber: "5", Relevance: 60}})
		assert.True(t, containsSubstring(actions, "union leadership"))
		assert.True(t, containsSubstring(actions, "cost"))
	})

	t.Run("moderate risk omits it", func(t *testing.T) {
		risk := RiskAssessment{OverallRisk: RiskMedium, ArbitrationLikelihood: 30}
		actions := suggestActions(pred, risk, []ClauseReference{{ArticleNumber: "5", Relevance: 60}})
		assert.False(t, containsSubstring(actions, "cost"))
	})
}

func TestSuggestActionsConditionalLines(t *testing.T) {
	pred := prediction{Outcome: OutcomePartiallyFavorable}

	t.Run("high arbitration likelihood appends preparation", func(t *testing.T) {
		risk := RiskAssessment{ArbitrationLikelihood: 60}
		actions := suggestActions(pred, risk, []ClauseReference{{ArticleNumber: "5", Relevance: 60}})
		assert.True(t, containsSubstring(actions, "arbitration preparation"))
	})

	t.Run("no matched clauses appends clause identification", func(t *testing.T) {
		risk := RiskAssessment{ArbitrationLikelihood: 20}
		actions := suggestActions(pred, risk, nil)
		assert.True(t, containsSubstring(actions, "Identify relevant contract clauses"))
	})
}
