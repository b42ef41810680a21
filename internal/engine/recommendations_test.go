package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
)

func recsOfType(recs []insight.Recommendation, t insight.RecommendationType) []insight.Recommendation {
	var out []insight.Recommendation
	for _, r := range recs {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func TestGenerateRecommendationsEmptyInput(t *testing.T) {
	recs := generateRecommendations(nil, testNow)
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestEachFilterProducesOneRecommendation(t *testing.T) {
	clients := []pipeline.ClientRecord{
		withFollowUp(makeClient("overdue", pipeline.StageLead, 500, 0.5), testNow.Add(-24*time.Hour)),
		makeClient("highvalue", pipeline.StageBooking, 1500, 0.5),
		makeClient("retained", pipeline.StageRetention, 500, 0.5),
		makeClient("consulting", pipeline.StageConsultation, 500, 0.5),
	}

	recs := generateRecommendations(clients, testNow)
	require.Len(t, recs, 4)

	followups := recsOfType(recs, insight.RecFollowup)
	require.Len(t, followups, 1)
	assert.Equal(t, core.ClientID("overdue"), followups[0].ClientID)
	assert.Equal(t, insight.PriorityHigh, followups[0].Priority)
	assert.Equal(t, testNow, followups[0].SuggestedDate.Time())

	upsells := recsOfType(recs, insight.RecUpsell)
	require.Len(t, upsells, 1)
	assert.Equal(t, core.ClientID("highvalue"), upsells[0].ClientID)
	assert.Equal(t, insight.PriorityMedium, upsells[0].Priority)
	assert.Equal(t, testNow.AddDate(0, 0, 7), upsells[0].SuggestedDate.Time())

	retentions := recsOfType(recs, insight.RecRetention)
	require.Len(t, retentions, 1)
	assert.Equal(t, core.ClientID("retained"), retentions[0].ClientID)
	assert.Equal(t, testNow.AddDate(0, 0, 30), retentions[0].SuggestedDate.Time())

	timings := recsOfType(recs, insight.RecTiming)
	require.Len(t, timings, 1)
	assert.Equal(t, core.ClientID("consulting"), timings[0].ClientID)
	assert.Equal(t, insight.PriorityHigh, timings[0].Priority)
	assert.Equal(t, testNow.AddDate(0, 0, 3), timings[0].SuggestedDate.Time())
}

func TestClientMatchingMultipleFiltersAppearsMultipleTimes(t *testing.T) {
	// Overdue, high-value, and in consultation: three entries for one client.
	c := withFollowUp(makeClient("busy", pipeline.StageConsultation, 2000, 0.5), testNow.Add(-time.Hour))

	recs := generateRecommendations([]pipeline.ClientRecord{c}, testNow)
	require.Len(t, recs, 3)

	types := make(map[insight.RecommendationType]int)
	for _, r := range recs {
		assert.Equal(t, core.ClientID("busy"), r.ClientID)
		types[r.Type]++
	}
	assert.Equal(t, 1, types[insight.RecFollowup])
	assert.Equal(t, 1, types[insight.RecUpsell])
	assert.Equal(t, 1, types[insight.RecTiming])
}

func TestRecommendationIDsUniqueWithinPass(t *testing.T) {
	clients := []pipeline.ClientRecord{
		withFollowUp(makeClient("a", pipeline.StageConsultation, 2000, 0.5), testNow.Add(-time.Hour)),
		withFollowUp(makeClient("b", pipeline.StageConsultation, 2000, 0.5), testNow.Add(-time.Hour)),
	}

	recs := generateRecommendations(clients, testNow)
	require.Len(t, recs, 6)

	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r.ID.String()], "duplicate recommendation id %s", r.ID)
		seen[r.ID.String()] = true
	}
}
