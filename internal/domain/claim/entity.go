// Package claim defines the grievance-claim aggregate and its persistence
// contract.  A claim is a formal workplace dispute record tracked through a
// resolution lifecycle; resolved claims double as precedents for the
// settlement recommendation engine.
package claim

import (
	"time"

	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// Status is the lifecycle state of a claim.
type Status string

const (
	StatusOpen      Status = "open"
	StatusInReview  Status = "in_review"
	StatusResolved  Status = "resolved"
	StatusClosed    Status = "closed"
	StatusWithdrawn Status = "withdrawn"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusResolved, StatusClosed, StatusWithdrawn:
		return true
	}
	return false
}

// Resolution is the recorded outcome of a resolved claim.
type Resolution string

const (
	ResolutionFavorable          Resolution = "favorable"
	ResolutionPartiallyFavorable Resolution = "partially_favorable"
	ResolutionUnfavorable        Resolution = "unfavorable"
	ResolutionWithdrawn          Resolution = "withdrawn"
)

// Priority is the urgency tag assigned at filing time.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Details carries the structured assessment data attached to a claim.  The
// upstream system stored these in an untyped metadata bag; here every field is
// explicit and zero values mean "not recorded" — defaulting happens at the
// feature-extraction boundary, never here.
type Details struct {
	// ComplexityScore grades the case 1–10; 0 means unscored.
	ComplexityScore int `json:"complexity_score,omitempty"`

	// EvidenceStrength grades supporting evidence 1–10; 0 means unscored.
	EvidenceStrength int `json:"evidence_strength,omitempty"`

	// ViolatedClauseIDs lists contract clauses the claim alleges were breached.
	ViolatedClauseIDs []string `json:"violated_clause_ids,omitempty"`

	// Witnesses lists the names of members who can corroborate the claim.
	Witnesses []string `json:"witnesses,omitempty"`

	// SettledAmount is the monetary settlement, when one was reached.
	SettledAmount *float64 `json:"settled_amount,omitempty"`

	// ArbitrationDecision holds the arbitrator's written decision when the
	// case went to arbitration; empty otherwise.
	ArbitrationDecision string `json:"arbitration_decision,omitempty"`

	// ManagementPosition summarises management's stated position.
	ManagementPosition string `json:"management_position,omitempty"`
}

// Claim is the aggregate root for a grievance.
type Claim struct {
	ID          common.ID
	TenantID    common.TenantID
	ClaimType   string
	Priority    Priority
	Department  string
	Description string

	// FiledDate and IncidentDate may legitimately be absent; all date
	// arithmetic treats absence as zero elapsed time.
	FiledDate    *time.Time
	IncidentDate *time.Time
	ResolvedDate *time.Time

	Status     Status
	Resolution Resolution
	Details    Details

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks invariants that must hold before persisting a claim.
func (c *Claim) Validate() error {
	if c.TenantID == "" {
		return errors.NewValidationError("tenant_id", "is required")
	}
	if c.ClaimType == "" {
		return errors.New(errors.ErrCodeClaimTypeInvalid, "claim type is required")
	}
	if !c.Status.Valid() {
		return errors.New(errors.ErrCodeClaimStatusInvalid, "unknown claim status").
			WithDetail(string(c.Status))
	}
	if c.Details.ComplexityScore < 0 || c.Details.ComplexityScore > 10 {
		return errors.NewValidationError("complexity_score", "must be in [0, 10]")
	}
	if c.Details.EvidenceStrength < 0 || c.Details.EvidenceStrength > 10 {
		return errors.NewValidationError("evidence_strength", "must be in [0, 10]")
	}
	return nil
}

// IsResolved reports whether the claim has reached a terminal resolved state.
func (c *Claim) IsResolved() bool {
	return c.Status == StatusResolved || c.Status == StatusClosed
}

// ResolutionDays returns the whole days elapsed between filing and
// resolution, or 0 when either date is missing.
func (c *Claim) ResolutionDays() int {
	if c.FiledDate == nil || c.ResolvedDate == nil {
		return 0
	}
	d := c.ResolvedDate.Sub(*c.FiledDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// DaysToFile returns the whole days between the incident and the filing, or 0
// when either date is missing.
func (c *Claim) DaysToFile() int {
	if c.IncidentDate == nil || c.FiledDate == nil {
		return 0
	}
	d := c.FiledDate.Sub(*c.IncidentDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// WentToArbitration reports whether an arbitration decision is on record.
func (c *Claim) WentToArbitration() bool {
	return c.Details.ArbitrationDecision != ""
}
