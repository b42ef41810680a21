package engine

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
)

// Rule thresholds. Confidence values are fixed per rule; they rate how
// reliable the rule itself is, not the spread of the underlying data.
const (
	leadConversionFloor    = 0.30
	consultConversionFloor = 0.50
	highValueThreshold     = 1000.0
	highProbabilityFloor   = 0.8
	lowComplianceFloor     = 0.7
)

// generateInsights runs every population-level rule over a normalized
// client snapshot. Rules fire independently; order here only determines
// array order on the dashboard.
func generateInsights(clients []pipeline.ClientRecord, now time.Time) []insight.Insight {
	insights := make([]insight.Insight, 0, 8)
	if len(clients) == 0 {
		return insights
	}

	funnel := buildFunnelSummary(clients)
	created := core.NewTimestamp(now)

	emit := func(t insight.Type, title, description string, confidence float64, impact insight.Impact, action string) {
		insights = append(insights, insight.Insight{
			ID:          core.NewInsightID(),
			Type:        t,
			Title:       title,
			Description: description,
			Confidence:  confidence,
			Impact:      impact,
			Action:      action,
			CreatedAt:   created,
		})
	}

	// Conversion gaps between adjacent funnel stages. The booking to
	// procedure ratio is computed alongside these (see FunnelSummary) but
	// has never had an insight rule attached; the dashboard funnel view is
	// its only consumer.
	if funnel.LeadToConsultation < leadConversionFloor {
		emit(insight.TypeConversion,
			"Low Lead-to-Consultation Conversion",
			fmt.Sprintf("Only %s of leads progress to a consultation. Studios typically convert 30%% or more.",
				FormatPercent(funnel.LeadToConsultation)),
			0.85, insight.ImpactHigh,
			"Review lead response times and tighten the consultation follow-up script")
	}
	if funnel.ConsultationToBooking < consultConversionFloor {
		emit(insight.TypeConversion,
			"Consultation-to-Booking Drop-off",
			fmt.Sprintf("%s of consultations convert to a booking, below the 50%% target.",
				FormatPercent(funnel.ConsultationToBooking)),
			0.78, insight.ImpactHigh,
			"Offer same-day booking incentives at the end of every consultation")
	}

	// High-value opportunity.
	highValue := filterClients(clients, func(c pipeline.ClientRecord) bool {
		return c.Pipeline.EstimatedValue > highValueThreshold
	})
	if len(highValue) > 0 {
		mean, _ := stats.Mean(estimatedValues(highValue))
		emit(insight.TypeOpportunity,
			"High-Value Clients in Pipeline",
			fmt.Sprintf("%d clients carry deals above %s, averaging %s each.",
				len(highValue), FormatUSD(highValueThreshold), FormatUSD(mean)),
			0.92, insight.ImpactHigh,
			"Prioritize personal outreach to high-value clients this week")
	}

	// High-probability opportunity.
	highProbability := filterClients(clients, func(c pipeline.ClientRecord) bool {
		return c.Pipeline.Probability > highProbabilityFloor
	})
	if len(highProbability) > 0 {
		emit(insight.TypeOpportunity,
			"Clients Ready to Convert",
			fmt.Sprintf("%d clients have a conversion probability above 80%%.", len(highProbability)),
			0.88, insight.ImpactMedium,
			"Send booking links to high-probability clients before interest cools")
	}

	// Overdue follow-ups.
	overdue := filterClients(clients, func(c pipeline.ClientRecord) bool {
		return c.Overdue(now)
	})
	if len(overdue) > 0 {
		emit(insight.TypeRisk,
			"Overdue Follow-ups",
			fmt.Sprintf("%d clients have follow-ups past their due date.", len(overdue)),
			0.95, insight.ImpactHigh,
			"Clear the overdue follow-up queue today")
	}

	// Low aftercare compliance.
	lowCompliance := filterClients(clients, func(c pipeline.ClientRecord) bool {
		return c.Pipeline.Stage == pipeline.StageAftercare &&
			c.Aftercare.ComplianceScore < lowComplianceFloor
	})
	if len(lowCompliance) > 0 {
		emit(insight.TypeRisk,
			"Low Aftercare Compliance",
			fmt.Sprintf("%d aftercare clients are below 70%% compliance with their care plan.", len(lowCompliance)),
			0.82, insight.ImpactMedium,
			"Send the aftercare reminder sequence and check in personally")
	}

	// Revenue forecast. Always fires exactly once.
	conversionRate := ratio(funnel.StageCounts[pipeline.StageRetention], funnel.TotalClients)
	projectedRevenue := funnel.WeightedPipelineValue * (1 + conversionRate)
	emit(insight.TypeRevenue,
		"Revenue Forecast",
		fmt.Sprintf("The pipeline holds %s in total value with %s projected after conversion.",
			FormatUSD(funnel.TotalPipelineValue), FormatUSD(projectedRevenue)),
		0.75, insight.ImpactMedium,
		"Focus the team on weighted pipeline value to hit the projection")

	// Retention optimization.
	retained := filterClients(clients, func(c pipeline.ClientRecord) bool {
		return c.Pipeline.Stage == pipeline.StageRetention
	})
	if len(retained) > 0 {
		mean, _ := stats.Mean(estimatedValues(retained))
		emit(insight.TypeRetention,
			"Retention Revenue Engine",
			fmt.Sprintf("%d retention-stage clients average %s in ongoing value.",
				len(retained), FormatUSD(mean)),
			0.88, insight.ImpactHigh,
			"Launch loyalty benefits for retention-stage clients")
	}

	return insights
}

func filterClients(clients []pipeline.ClientRecord, keep func(pipeline.ClientRecord) bool) []pipeline.ClientRecord {
	var out []pipeline.ClientRecord
	for _, c := range clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func estimatedValues(clients []pipeline.ClientRecord) []float64 {
	values := make([]float64, len(clients))
	for i, c := range clients {
		values[i] = c.Pipeline.EstimatedValue
	}
	return values
}
