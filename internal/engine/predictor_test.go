package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiopulse/domain/pipeline"
)

func TestRetentionProbabilityStacksBonusesAndCaps(t *testing.T) {
	// stage base 0.9 + 0.1 (>1000) + 0.1 (>1500) + 0.2 (full compliance)
	// = 1.3, capped at 0.95.
	c := withCompliance(makeClient("c1", pipeline.StageRetention, 2000, 0.5), 1.0)
	model := predictClient(c, testNow)

	assert.Equal(t, 0.95, model.RetentionProbability)
	assert.InDelta(t, 7700.0, model.EstimatedLifetimeValue, 1e-9) // 2000 * (1 + 0.95*3)
}

func TestRetentionProbabilityByStage(t *testing.T) {
	tests := []struct {
		stage    pipeline.Stage
		expected float64
	}{
		{pipeline.StageLead, 0.2},
		{pipeline.StageConsultation, 0.3},
		{pipeline.StageBooking, 0.4},
		{pipeline.StageProcedure, 0.6},
		{pipeline.StageAftercare, 0.7},
		{pipeline.StageTouchup, 0.8},
		{pipeline.StageRetention, 0.9},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			c := makeClient("c", tt.stage, 500, 0.5) // no bonuses
			model := predictClient(c, testNow)
			assert.InDelta(t, tt.expected, model.RetentionProbability, 1e-9)
		})
	}
}

func TestValueBonusesAreIndependent(t *testing.T) {
	// 1200 earns only the first bonus; 1600 earns both.
	mid := predictClient(makeClient("c", pipeline.StageLead, 1200, 0.5), testNow)
	assert.InDelta(t, 0.3, mid.RetentionProbability, 1e-9)

	premium := predictClient(makeClient("c", pipeline.StageLead, 1600, 0.5), testNow)
	assert.InDelta(t, 0.4, premium.RetentionProbability, 1e-9)
}

func TestNextPurchaseProbability(t *testing.T) {
	tests := []struct {
		name     string
		stage    pipeline.Stage
		value    float64
		expected float64
	}{
		{"default base", pipeline.StageLead, 500, 0.3},
		{"aftercare override", pipeline.StageAftercare, 500, 0.4},
		{"touchup override", pipeline.StageTouchup, 500, 0.6},
		{"retention override", pipeline.StageRetention, 500, 0.8},
		{"value bonus", pipeline.StageLead, 1500, 0.5},
		{"capped at 0.9", pipeline.StageRetention, 1500, 0.9}, // 0.8 + 0.2 -> cap
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := predictClient(makeClient("c", tt.stage, tt.value, 0.5), testNow)
			assert.InDelta(t, tt.expected, model.NextPurchaseProbability, 1e-9)
		})
	}
}

func TestChurnRiskLapsedLeadIsCapped(t *testing.T) {
	// stage 0.8 + (1-0)*0.3 + 0.3 overdue = 1.4, capped at 0.95.
	c := withFollowUp(makeClient("c1", pipeline.StageLead, 500, 0.5), testNow.Add(-24*time.Hour))
	model := predictClient(c, testNow)

	assert.Equal(t, 0.95, model.ChurnRisk)

	// Churn above 0.7 appends the rescue actions after the stage actions.
	require.Len(t, model.RecommendedActions, 4)
	assert.Equal(t, "Schedule consultation within 48 hours", model.RecommendedActions[0])
	assert.Equal(t, "Send welcome package and pricing guide", model.RecommendedActions[1])
	assert.Equal(t, "Immediate follow-up required", model.RecommendedActions[2])
	assert.Equal(t, "Consider special offer or discount", model.RecommendedActions[3])
}

func TestChurnRiskByStage(t *testing.T) {
	// Full compliance and no follow-up isolates the stage component.
	tests := []struct {
		stage    pipeline.Stage
		expected float64
	}{
		{pipeline.StageLead, 0.8},
		{pipeline.StageConsultation, 0.6},
		{pipeline.StageBooking, 0.5}, // no override, base holds
		{pipeline.StageRetention, 0.2},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			c := withCompliance(makeClient("c", tt.stage, 500, 0.5), 1.0)
			model := predictClient(c, testNow)
			assert.InDelta(t, tt.expected, model.ChurnRisk, 1e-9)
		})
	}
}

func TestLowChurnGetsOnlyStageActions(t *testing.T) {
	c := withCompliance(makeClient("c1", pipeline.StageRetention, 500, 0.5), 1.0)
	model := predictClient(c, testNow)

	assert.InDelta(t, 0.2, model.ChurnRisk, 1e-9)
	assert.Equal(t, []string{
		"Schedule annual touch-up",
		"Offer loyalty program benefits",
	}, model.RecommendedActions)
}

func TestGeneratePredictionsIdempotent(t *testing.T) {
	clients := []pipeline.ClientRecord{
		withCompliance(makeClient("c1", pipeline.StageRetention, 2000, 0.9), 1.0),
		withFollowUp(makeClient("c2", pipeline.StageLead, 500, 0.3), testNow.Add(-time.Hour)),
		makeClient("c3", pipeline.StageAftercare, 1200, 0.6),
	}

	first := generatePredictions(clients, testNow)
	second := generatePredictions(clients, testNow)

	assert.Equal(t, first, second, "identical input and clock must produce identical predictions")
}

func TestGeneratePredictionsEmptyInput(t *testing.T) {
	predictions := generatePredictions(nil, testNow)
	require.NotNil(t, predictions)
	assert.Empty(t, predictions)
}

func TestPredictionsArePerClient(t *testing.T) {
	clients := []pipeline.ClientRecord{
		makeClient("lead", pipeline.StageLead, 500, 0.5),
		makeClient("retained", pipeline.StageRetention, 500, 0.5),
	}

	predictions := generatePredictions(clients, testNow)
	require.Len(t, predictions, 2)
	assert.Greater(t, predictions["retained"].RetentionProbability, predictions["lead"].RetentionProbability)
	assert.Greater(t, predictions["lead"].ChurnRisk, predictions["retained"].ChurnRisk)
}
