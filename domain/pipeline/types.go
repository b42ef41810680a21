package pipeline

import (
	"strings"
	"time"

	"studiopulse/domain/core"
)

// PipelineStatus captures a client's funnel position and deal economics.
type PipelineStatus struct {
	Stage          Stage      `json:"stage"`
	EstimatedValue float64    `json:"estimated_value"`
	Probability    float64    `json:"probability"`
	FollowUpDate   *time.Time `json:"follow_up_date,omitempty"`
}

// AftercareStatus captures post-procedure care tracking. ComplianceScore is
// only meaningful once the client has reached the aftercare stage.
type AftercareStatus struct {
	ComplianceScore float64 `json:"compliance_score"`
}

// ClientRecord is the read-only input to the insight engine: one client's
// funnel snapshot as supplied by the upstream record provider.
type ClientRecord struct {
	ID        core.ClientID   `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Pipeline  PipelineStatus  `json:"pipeline"`
	Aftercare AftercareStatus `json:"aftercare"`
}

// FullName returns the client's display name.
func (c ClientRecord) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Overdue reports whether the client's follow-up date is set and strictly
// before the given reference time.
func (c ClientRecord) Overdue(now time.Time) bool {
	return c.Pipeline.FollowUpDate != nil && c.Pipeline.FollowUpDate.Before(now)
}

// Normalized returns a copy of the record with all numeric fields forced
// into their valid ranges and the stage collapsed onto a known funnel
// position. Provider data is never trusted to be pre-clamped.
func (c ClientRecord) Normalized() ClientRecord {
	c.Pipeline.Stage = ParseStage(string(c.Pipeline.Stage))
	c.Pipeline.Probability = Clamp01(c.Pipeline.Probability)
	c.Aftercare.ComplianceScore = Clamp01(c.Aftercare.ComplianceScore)
	if c.Pipeline.EstimatedValue < 0 {
		c.Pipeline.EstimatedValue = 0
	}
	return c
}

// Clamp01 forces v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeAll returns a normalized copy of every record in the list.
func NormalizeAll(clients []ClientRecord) []ClientRecord {
	out := make([]ClientRecord, len(clients))
	for i, c := range clients {
		out[i] = c.Normalized()
	}
	return out
}
