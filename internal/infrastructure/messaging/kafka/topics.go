// Package kafka publishes domain events for downstream consumers (report
// renderers, notification workers, analytics).  The service only produces;
// there is no consumer side.
package kafka

import (
	"encoding/json"
	"time"
)

// Topic constants.
const (
	TopicRecommendationGenerated = "recommendation.generated"
	TopicClaimCreated            = "claim.created"
	TopicClaimUpdated            = "claim.updated"
)

// EventEnvelope standardizes event messages across topics.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	TenantID      string            `json:"tenant_id"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ClaimChangedPayload is the claim.created / claim.updated payload.
type ClaimChangedPayload struct {
	ClaimID   string    `json:"claim_id"`
	ClaimType string    `json:"claim_type"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// RecommendationGeneratedPayload is the recommendation.generated payload.  It
// carries the headline fields; consumers needing the full artifact fetch it
// over HTTP.
type RecommendationGeneratedPayload struct {
	ClaimID              string  `json:"claim_id"`
	RecommendedOutcome   string  `json:"recommended_outcome"`
	SettlementType       string  `json:"settlement_type"`
	Confidence           int     `json:"confidence"`
	EstimatedSuccessRate int     `json:"estimated_success_rate"`
	RiskLevel            string  `json:"risk_level"`
	RiskScore            int     `json:"risk_score"`
	PrecedentCount       int     `json:"precedent_count"`
	ClauseCount          int     `json:"clause_count"`
	GeneratedAt          time.Time `json:"generated_at"`
}
