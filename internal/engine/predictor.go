package engine

import (
	"time"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
)

// Score caps and bonus weights for the per-client heuristics. These are
// fixed business constants, not fitted parameters.
const (
	retentionCap       = 0.95
	nextPurchaseCap    = 0.90
	churnCap           = 0.95
	premiumThreshold   = 1500.0
	complianceWeight   = 0.2
	churnActionTrigger = 0.7
	lifetimeMultiplier = 3.0
)

// stageActions maps each funnel stage to the studio's standard next steps.
var stageActions = map[pipeline.Stage][]string{
	pipeline.StageLead: {
		"Schedule consultation within 48 hours",
		"Send welcome package and pricing guide",
	},
	pipeline.StageConsultation: {"Send procedure details and prepare a quote"},
	pipeline.StageBooking:      {"Confirm appointment and send prep instructions"},
	pipeline.StageProcedure:    {"Schedule aftercare check-in within one week"},
	pipeline.StageAftercare:    {"Monitor healing progress and compliance"},
	pipeline.StageTouchup:      {"Book touch-up session and review results"},
	pipeline.StageRetention: {
		"Schedule annual touch-up",
		"Offer loyalty program benefits",
	},
}

var churnActions = []string{
	"Immediate follow-up required",
	"Consider special offer or discount",
}

// generatePredictions scores every client independently. Pure function of
// one normalized record plus "now"; no client influences another's scores.
func generatePredictions(clients []pipeline.ClientRecord, now time.Time) map[core.ClientID]insight.PredictionModel {
	predictions := make(map[core.ClientID]insight.PredictionModel, len(clients))
	for _, c := range clients {
		predictions[c.ID] = predictClient(c, now)
	}
	return predictions
}

func predictClient(c pipeline.ClientRecord, now time.Time) insight.PredictionModel {
	retention := retentionProbability(c)
	model := insight.PredictionModel{
		ClientID:                c.ID,
		RetentionProbability:    retention,
		NextPurchaseProbability: nextPurchaseProbability(c),
		EstimatedLifetimeValue:  c.Pipeline.EstimatedValue * (1 + retention*lifetimeMultiplier),
		ChurnRisk:               churnRisk(c, now),
		LastUpdated:             core.NewTimestamp(now),
	}
	model.RecommendedActions = recommendedActions(c.Pipeline.Stage, model.ChurnRisk)
	return model
}

// retentionProbability starts from a stage-indexed base, stacks value
// bonuses (both can apply above the premium threshold), and rewards
// aftercare compliance.
func retentionProbability(c pipeline.ClientRecord) float64 {
	score := 0.5
	switch c.Pipeline.Stage {
	case pipeline.StageLead:
		score = 0.2
	case pipeline.StageConsultation:
		score = 0.3
	case pipeline.StageBooking:
		score = 0.4
	case pipeline.StageProcedure:
		score = 0.6
	case pipeline.StageAftercare:
		score = 0.7
	case pipeline.StageTouchup:
		score = 0.8
	case pipeline.StageRetention:
		score = 0.9
	}

	if c.Pipeline.EstimatedValue > highValueThreshold {
		score += 0.1
	}
	if c.Pipeline.EstimatedValue > premiumThreshold {
		score += 0.1
	}
	score += c.Aftercare.ComplianceScore * complianceWeight

	return capAt(score, retentionCap)
}

func nextPurchaseProbability(c pipeline.ClientRecord) float64 {
	score := 0.3
	switch c.Pipeline.Stage {
	case pipeline.StageRetention:
		score = 0.8
	case pipeline.StageTouchup:
		score = 0.6
	case pipeline.StageAftercare:
		score = 0.4
	}

	if c.Pipeline.EstimatedValue > highValueThreshold {
		score += 0.2
	}

	return capAt(score, nextPurchaseCap)
}

// churnRisk overwrites the base by stage, then penalizes poor compliance
// and a lapsed follow-up.
func churnRisk(c pipeline.ClientRecord, now time.Time) float64 {
	risk := 0.5
	switch c.Pipeline.Stage {
	case pipeline.StageLead:
		risk = 0.8
	case pipeline.StageConsultation:
		risk = 0.6
	case pipeline.StageRetention:
		risk = 0.2
	}

	risk += (1 - c.Aftercare.ComplianceScore) * 0.3
	if c.Overdue(now) {
		risk += 0.3
	}

	return capAt(risk, churnCap)
}

func recommendedActions(stage pipeline.Stage, churn float64) []string {
	actions := make([]string, 0, 4)
	actions = append(actions, stageActions[stage]...)
	if churn > churnActionTrigger {
		actions = append(actions, churnActions...)
	}
	return actions
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
