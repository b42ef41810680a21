package insight

import (
	"studiopulse/domain/core"
)

// ============================================================================
// INSIGHTS (population-level findings)
// ============================================================================

// Type classifies what aspect of the pipeline an insight speaks to.
type Type string

const (
	TypeRetention   Type = "retention"
	TypeRevenue     Type = "revenue"
	TypeConversion  Type = "conversion"
	TypeRisk        Type = "risk"
	TypeOpportunity Type = "opportunity"
)

// Impact rates how consequential acting on an insight is expected to be.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Insight is a qualitative finding about the whole client population.
// Confidence is a fixed weight assigned by whichever rule fired, not a
// statistic computed from the data spread.
type Insight struct {
	ID          core.InsightID `json:"id"`
	Type        Type           `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
	Impact      Impact         `json:"impact"`
	Action      string         `json:"action"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// ============================================================================
// PREDICTIONS (per-client scores)
// ============================================================================

// PredictionModel holds the four heuristic scores computed for one client,
// plus the stage-driven next actions. Regenerated wholesale on every run.
type PredictionModel struct {
	ClientID                core.ClientID  `json:"client_id"`
	RetentionProbability    float64        `json:"retention_probability"`
	NextPurchaseProbability float64        `json:"next_purchase_probability"`
	EstimatedLifetimeValue  float64        `json:"estimated_lifetime_value"`
	ChurnRisk               float64        `json:"churn_risk"`
	RecommendedActions      []string       `json:"recommended_actions"`
	LastUpdated             core.Timestamp `json:"last_updated"`
}

// ============================================================================
// RECOMMENDATIONS (prioritized actions)
// ============================================================================

// RecommendationType classifies the suggested action.
type RecommendationType string

const (
	RecFollowup  RecommendationType = "followup"
	RecUpsell    RecommendationType = "upsell"
	RecRetention RecommendationType = "retention"
	RecTiming    RecommendationType = "timing"
	RecProcedure RecommendationType = "procedure"
)

// Priority orders recommendations for the dashboard.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one prioritized action suggested for the studio team.
// ClientID is empty for population-level recommendations.
type Recommendation struct {
	ID              core.RecommendationID `json:"id"`
	Type            RecommendationType    `json:"type"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Priority        Priority              `json:"priority"`
	ClientID        core.ClientID         `json:"client_id,omitempty"`
	SuggestedDate   core.Timestamp        `json:"suggested_date"`
	ExpectedOutcome string                `json:"expected_outcome"`
}
