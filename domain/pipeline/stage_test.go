package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Stage
	}{
		{"known stage", "consultation", StageConsultation},
		{"retention", "retention", StageRetention},
		{"unknown collapses to lead", "vip", StageLead},
		{"empty collapses to lead", "", StageLead},
		{"case sensitive", "Lead", StageLead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStage(tt.input))
		})
	}
}

func TestStageOrdering(t *testing.T) {
	assert.True(t, StageRetention.AtLeast(StageAftercare))
	assert.True(t, StageAftercare.AtLeast(StageAftercare))
	assert.False(t, StageLead.AtLeast(StageConsultation))

	for i := 1; i < len(Stages); i++ {
		assert.Greater(t, Stages[i].Order(), Stages[i-1].Order())
	}
}

func TestNormalizedClampsInputs(t *testing.T) {
	c := ClientRecord{
		ID: "c1",
		Pipeline: PipelineStatus{
			Stage:          Stage("platinum"),
			EstimatedValue: -500,
			Probability:    1.7,
		},
		Aftercare: AftercareStatus{ComplianceScore: -0.2},
	}

	n := c.Normalized()
	assert.Equal(t, StageLead, n.Pipeline.Stage)
	assert.Equal(t, 0.0, n.Pipeline.EstimatedValue)
	assert.Equal(t, 1.0, n.Pipeline.Probability)
	assert.Equal(t, 0.0, n.Aftercare.ComplianceScore)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.False(t, ClientRecord{}.Overdue(now), "no follow-up date is never overdue")
	assert.True(t, ClientRecord{Pipeline: PipelineStatus{FollowUpDate: &past}}.Overdue(now))
	assert.False(t, ClientRecord{Pipeline: PipelineStatus{FollowUpDate: &future}}.Overdue(now))
	assert.False(t, ClientRecord{Pipeline: PipelineStatus{FollowUpDate: &now}}.Overdue(now), "strictly before only")
}
