// Package settlement implements the settlement recommendation engine: a
// rule-weighted scoring pipeline that matches a grievance claim against
// historical precedents, ranks relevant contract clauses, derives weighted
// reasoning factors, and produces an outcome prediction with a risk
// assessment and suggested next steps.
//
// The pipeline is stateless per call and recomputes everything from the two
// read-only stores; given identical inputs it produces identical output.
package settlement

import (
	"github.com/unionworks/unioniq/pkg/types/common"
)

// Outcome is the predicted resolution classification for the claim.
type Outcome string

const (
	OutcomeFavorable          Outcome = "favorable"
	OutcomePartiallyFavorable Outcome = "partially_favorable"
	OutcomeUnfavorable        Outcome = "unfavorable"
)

// SettlementType is the recommended resolution path.
type SettlementType string

const (
	SettlementFullRemedy    SettlementType = "full_remedy"
	SettlementPartialRemedy SettlementType = "partial_remedy"
	SettlementMediation     SettlementType = "mediation"
	SettlementWithdraw      SettlementType = "withdraw"
	SettlementArbitration   SettlementType = "arbitration"
)

// RiskLevel is the four-tier qualitative risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Impact tags the direction a reasoning factor pushes the prediction.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// ClaimFeatures is the flat feature set extracted from a claim before any
// scoring runs.  Missing source fields degrade to neutral defaults here so
// no later stage has to handle absence.
type ClaimFeatures struct {
	ClaimType        string
	Priority         string
	Department       string
	Complexity       int
	EvidenceStrength int

	// TimeToFile is the whole days between the incident and the filing;
	// 0 when either date is missing.
	TimeToFile int

	ViolatedClauses []string
	HasWitnesses    bool

	// HasPastGrievances is reserved and always false: computing it needs a
	// per-member grievance-history query that does not exist yet.  It feeds
	// nothing downstream until that source lands.
	HasPastGrievances bool

	ManagementPosition string
}

// PrecedentCase is a historical resolved claim scored for similarity against
// the current one.  Ephemeral; rebuilt on every recommendation call.
type PrecedentCase struct {
	ClaimID             common.ID `json:"claim_id"`
	ClaimType           string    `json:"claim_type"`
	Outcome             string    `json:"outcome"`
	ResolutionDays      int       `json:"resolution_days"`
	Similarity          int       `json:"similarity"`
	KeyFactors          []string  `json:"key_factors"`
	SettledAmount       *float64  `json:"settled_amount,omitempty"`
	ArbitrationDecision string    `json:"arbitration_decision,omitempty"`
}

// ClauseReference is a contract clause ranked by relevance to the claim.
type ClauseReference struct {
	ClauseID           common.ID `json:"clause_id"`
	ArticleNumber      string    `json:"article_number"`
	Section            string    `json:"section,omitempty"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	Relevance          int       `json:"relevance"`
	ApplicationContext string    `json:"application_context"`
}

// ReasoningFactor is one of the five fixed weighted signals feeding the
// outcome prediction.  The five weights sum to exactly 1.0.
type ReasoningFactor struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Impact      Impact  `json:"impact"`
	Description string  `json:"description"`
	Confidence  int     `json:"confidence"`
}

// RiskFactor is a single identified risk with its suggested mitigation.
type RiskFactor struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// RiskAssessment summarises the downside of pursuing the claim.
type RiskAssessment struct {
	OverallRisk RiskLevel    `json:"overall_risk"`
	RiskScore   int          `json:"risk_score"`
	RiskFactors []RiskFactor `json:"risk_factors"`

	// ArbitrationLikelihood is the percentage of precedents that went to
	// arbitration (30 when there is no precedent history).
	ArbitrationLikelihood float64 `json:"arbitration_likelihood"`

	EstimatedCost         float64 `json:"estimated_cost"`
	EstimatedDurationDays int     `json:"estimated_duration_days"`
}

// SettlementRecommendation is the output artifact of the engine.  It is
// entirely recomputed on every call and never mutated after construction.
type SettlementRecommendation struct {
	ClaimID                  common.ID         `json:"claim_id"`
	RecommendedOutcome       Outcome           `json:"recommended_outcome"`
	SettlementType           SettlementType    `json:"settlement_type"`
	Confidence               int               `json:"confidence"`
	EstimatedSuccessRate     int               `json:"estimated_success_rate"`
	RiskLevel                RiskLevel         `json:"risk_level"`
	RiskAssessment           RiskAssessment    `json:"risk_assessment"`
	TopPrecedents            []PrecedentCase   `json:"top_precedents"`
	RelevantClauses          []ClauseReference `json:"relevant_clauses"`
	ReasoningFactors         []ReasoningFactor `json:"reasoning_factors"`
	SuggestedActions         []string          `json:"suggested_actions"`
	EstimatedResolutionDays  int               `json:"estimated_resolution_days,omitempty"`
	EstimatedSettlementValue *float64          `json:"estimated_settlement_value,omitempty"`
}

// prediction is the internal result of the outcome-prediction stage.
type prediction struct {
	Outcome        Outcome
	SettlementType SettlementType
	Confidence     int
	SuccessRate    int
	Score          float64
}
