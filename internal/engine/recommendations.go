package engine

import (
	"fmt"
	"time"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
)

// Suggested scheduling offsets per recommendation rule.
const (
	upsellLeadTime    = 7 * 24 * time.Hour
	retentionLeadTime = 30 * 24 * time.Hour
	timingLeadTime    = 3 * 24 * time.Hour
)

// generateRecommendations runs four independent filters over the client
// list. A client satisfying several filters appears once per filter.
func generateRecommendations(clients []pipeline.ClientRecord, now time.Time) []insight.Recommendation {
	recommendations := make([]insight.Recommendation, 0, len(clients))

	add := func(t insight.RecommendationType, priority insight.Priority, clientID core.ClientID,
		title, description string, suggested time.Time, outcome string) {
		recommendations = append(recommendations, insight.Recommendation{
			ID:              core.NewRecommendationID(),
			Type:            t,
			Title:           title,
			Description:     description,
			Priority:        priority,
			ClientID:        clientID,
			SuggestedDate:   core.NewTimestamp(suggested),
			ExpectedOutcome: outcome,
		})
	}

	for _, c := range clients {
		if c.Overdue(now) {
			add(insight.RecFollowup, insight.PriorityHigh, c.ID,
				fmt.Sprintf("Follow up with %s", c.FullName()),
				fmt.Sprintf("Follow-up was due %s and is now overdue.",
					c.Pipeline.FollowUpDate.Format("Jan 2")),
				now,
				"Re-engage the client before the opportunity goes cold")
		}
	}

	for _, c := range clients {
		if c.Pipeline.EstimatedValue > highValueThreshold {
			add(insight.RecUpsell, insight.PriorityMedium, c.ID,
				fmt.Sprintf("Upsell opportunity: %s", c.FullName()),
				fmt.Sprintf("Deal value of %s qualifies for premium add-on services.",
					FormatUSD(c.Pipeline.EstimatedValue)),
				now.Add(upsellLeadTime),
				"Increase deal size with complementary services")
		}
	}

	for _, c := range clients {
		if c.Pipeline.Stage == pipeline.StageRetention {
			add(insight.RecRetention, insight.PriorityMedium, c.ID,
				fmt.Sprintf("Annual touch-up for %s", c.FullName()),
				"Retention-stage client is due for the annual touch-up conversation.",
				now.Add(retentionLeadTime),
				"Secure next year's touch-up booking")
		}
	}

	for _, c := range clients {
		if c.Pipeline.Stage == pipeline.StageConsultation {
			add(insight.RecTiming, insight.PriorityHigh, c.ID,
				fmt.Sprintf("Convert consultation for %s", c.FullName()),
				"Consultation completed; booking interest fades quickly after the first week.",
				now.Add(timingLeadTime),
				"Book the procedure while the consultation is fresh")
		}
	}

	return recommendations
}
