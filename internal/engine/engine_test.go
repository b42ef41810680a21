package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
	"studiopulse/internal/testkit"
)

func newTestEngine() *Engine {
	return NewEngine(testkit.FixedClock{At: testNow})
}

func TestAnalyzePopulatesAllCaches(t *testing.T) {
	eng := newTestEngine()
	clients := []pipeline.ClientRecord{
		withFollowUp(makeClient("c1", pipeline.StageLead, 500, 0.5), testNow.Add(-time.Hour)),
		makeClient("c2", pipeline.StageRetention, 2000, 0.9),
	}

	result, err := eng.Analyze(context.Background(), clients)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.ID.String() == "")
	assert.Equal(t, testNow, result.GeneratedAt.Time())
	assert.Equal(t, 2, result.Funnel.TotalClients)
	assert.NotEmpty(t, result.Insights)
	assert.Len(t, result.Predictions, 2)
	assert.NotEmpty(t, result.Recommendations)

	// Accessors read what Analyze cached.
	assert.Equal(t, result.Insights, eng.Insights())
	assert.Equal(t, result.Recommendations, eng.Recommendations())
	assert.Equal(t, result.Funnel, eng.Funnel())
	assert.Equal(t, testNow, eng.LastRun().Time())

	model, err := eng.ClientPrediction("c2")
	require.NoError(t, err)
	assert.Equal(t, core.ClientID("c2"), model.ClientID)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Insights)
	assert.Empty(t, result.Predictions)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.Funnel.TotalClients)
}

func TestInsightsByType(t *testing.T) {
	eng := newTestEngine()
	clients := append(repeatClients(pipeline.StageLead, 10), repeatClients(pipeline.StageConsultation, 1)...)

	eng.GenerateInsights(clients)

	revenue := eng.InsightsByType(insight.TypeRevenue)
	require.Len(t, revenue, 1)
	assert.Equal(t, "Revenue Forecast", revenue[0].Title)

	conversion := eng.InsightsByType(insight.TypeConversion)
	require.NotEmpty(t, conversion)
	for _, ins := range conversion {
		assert.Equal(t, insight.TypeConversion, ins.Type)
	}

	assert.Empty(t, eng.InsightsByType(insight.TypeRetention))
}

func TestHighPriorityRecommendations(t *testing.T) {
	eng := newTestEngine()
	clients := []pipeline.ClientRecord{
		withFollowUp(makeClient("c1", pipeline.StageLead, 500, 0.5), testNow.Add(-time.Hour)),
		makeClient("c2", pipeline.StageRetention, 1500, 0.5),
	}

	eng.GenerateRecommendations(clients)

	high := eng.HighPriorityRecommendations()
	require.Len(t, high, 1)
	assert.Equal(t, insight.RecFollowup, high[0].Type)
}

func TestClientPredictionNotFound(t *testing.T) {
	eng := newTestEngine()
	eng.GeneratePredictions([]pipeline.ClientRecord{makeClient("c1", pipeline.StageLead, 500, 0.5)})

	_, err := eng.ClientPrediction("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPredictionNotFound)
	assert.True(t, core.IsNotFoundError(err))
}

func TestGeneratePredictionsReplacesCacheWholesale(t *testing.T) {
	eng := newTestEngine()

	eng.GeneratePredictions([]pipeline.ClientRecord{makeClient("old", pipeline.StageLead, 500, 0.5)})
	eng.GeneratePredictions([]pipeline.ClientRecord{makeClient("new", pipeline.StageLead, 500, 0.5)})

	_, err := eng.ClientPrediction("old")
	assert.ErrorIs(t, err, core.ErrPredictionNotFound, "previous run's entries must not survive")

	_, err = eng.ClientPrediction("new")
	assert.NoError(t, err)
}

func TestEnginesDoNotShareState(t *testing.T) {
	a := newTestEngine()
	b := newTestEngine()

	a.GeneratePredictions([]pipeline.ClientRecord{makeClient("c1", pipeline.StageLead, 500, 0.5)})

	_, err := b.ClientPrediction("c1")
	assert.ErrorIs(t, err, core.ErrPredictionNotFound)
}

func TestLastAnalysisBeforeFirstRun(t *testing.T) {
	eng := newTestEngine()

	_, err := eng.LastAnalysis()
	assert.ErrorIs(t, err, core.ErrAnalysisNotFound)
}

func TestAnalyzeNormalizesMalformedInput(t *testing.T) {
	eng := newTestEngine()
	clients := []pipeline.ClientRecord{
		{
			ID: "weird",
			Pipeline: pipeline.PipelineStatus{
				Stage:          pipeline.Stage("platinum"),
				EstimatedValue: -100,
				Probability:    2.5,
			},
			Aftercare: pipeline.AftercareStatus{ComplianceScore: -1},
		},
	}

	result, err := eng.Analyze(context.Background(), clients)
	require.NoError(t, err)

	model := result.Predictions["weird"]
	// Unknown stage collapses to lead: base retention 0.2, churn 0.8 + 0.3.
	assert.InDelta(t, 0.2, model.RetentionProbability, 1e-9)
	assert.InDelta(t, 0.95, model.ChurnRisk, 1e-9) // 0.8 + (1-0)*0.3 capped
	assert.Equal(t, 0.0, model.EstimatedLifetimeValue)
}

func TestAnalyzeIdempotentWithFixedClock(t *testing.T) {
	eng := newTestEngine()
	kit, err := testkit.NewTestKitWithConfig(testkit.ClientGeneratorConfig{
		ClientCount:  50,
		OverdueRate:  0.2,
		FollowUpRate: 0.5,
		ReferenceDay: testNow,
		Seed:         7,
	})
	require.NoError(t, err)

	first, err := eng.Analyze(context.Background(), kit.Clients())
	require.NoError(t, err)
	second, err := eng.Analyze(context.Background(), kit.Clients())
	require.NoError(t, err)

	// Numeric outputs are deterministic; only ids differ between runs.
	assert.Equal(t, first.Predictions, second.Predictions)
	assert.Equal(t, first.Funnel, second.Funnel)
	require.Len(t, second.Insights, len(first.Insights))
	for i := range first.Insights {
		assert.Equal(t, first.Insights[i].Title, second.Insights[i].Title)
		assert.Equal(t, first.Insights[i].Description, second.Insights[i].Description)
		assert.Equal(t, first.Insights[i].Confidence, second.Insights[i].Confidence)
	}
}
