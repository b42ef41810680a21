package engine

import (
	"time"

	"studiopulse/domain/core"
	"studiopulse/domain/pipeline"
)

// testNow is the pinned reference time used across engine tests.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func makeClient(id string, stage pipeline.Stage, value, probability float64) pipeline.ClientRecord {
	return pipeline.ClientRecord{
		ID:        core.ClientID(id),
		FirstName: "Test",
		LastName:  "Client",
		Pipeline: pipeline.PipelineStatus{
			Stage:          stage,
			EstimatedValue: value,
			Probability:    probability,
		},
	}
}

func withFollowUp(c pipeline.ClientRecord, at time.Time) pipeline.ClientRecord {
	c.Pipeline.FollowUpDate = &at
	return c
}

func withCompliance(c pipeline.ClientRecord, score float64) pipeline.ClientRecord {
	c.Aftercare.ComplianceScore = score
	return c
}

func repeatClients(stage pipeline.Stage, n int) []pipeline.ClientRecord {
	clients := make([]pipeline.ClientRecord, 0, n)
	for i := 0; i < n; i++ {
		clients = append(clients, makeClient(string(stage)+"-"+string(rune('a'+i)), stage, 500, 0.5))
	}
	return clients
}
