package engine

import (
	"github.com/montanaflynn/stats"

	"studiopulse/domain/pipeline"
)

// FunnelSummary aggregates the client population by funnel position. The
// stage-to-stage ratios here are the same intermediates the conversion
// insight rules evaluate; the dashboard renders all three even though only
// the first two have insight rules attached.
type FunnelSummary struct {
	TotalClients          int                    `json:"total_clients"`
	StageCounts           map[pipeline.Stage]int `json:"stage_counts"`
	TotalPipelineValue    float64                `json:"total_pipeline_value"`
	WeightedPipelineValue float64                `json:"weighted_pipeline_value"`
	MedianEstimatedValue  float64                `json:"median_estimated_value"`
	LeadToConsultation    float64                `json:"lead_to_consultation"`
	ConsultationToBooking float64                `json:"consultation_to_booking"`
	BookingToProcedure    float64                `json:"booking_to_procedure"`
}

// buildFunnelSummary computes stage counts, pipeline totals, and conversion
// ratios over an already-normalized client list. Every denominator is
// guarded with max(count, 1) so an empty or lopsided funnel never divides
// by zero.
func buildFunnelSummary(clients []pipeline.ClientRecord) FunnelSummary {
	summary := FunnelSummary{
		TotalClients: len(clients),
		StageCounts:  make(map[pipeline.Stage]int, len(pipeline.Stages)),
	}
	for _, stage := range pipeline.Stages {
		summary.StageCounts[stage] = 0
	}

	values := make([]float64, 0, len(clients))
	for _, c := range clients {
		summary.StageCounts[c.Pipeline.Stage]++
		summary.TotalPipelineValue += c.Pipeline.EstimatedValue
		summary.WeightedPipelineValue += c.Pipeline.EstimatedValue * c.Pipeline.Probability
		values = append(values, c.Pipeline.EstimatedValue)
	}

	if len(values) > 0 {
		median, err := stats.Median(values)
		if err == nil {
			summary.MedianEstimatedValue = median
		}
	}

	summary.LeadToConsultation = ratio(summary.StageCounts[pipeline.StageConsultation], summary.StageCounts[pipeline.StageLead])
	summary.ConsultationToBooking = ratio(summary.StageCounts[pipeline.StageBooking], summary.StageCounts[pipeline.StageConsultation])
	summary.BookingToProcedure = ratio(summary.StageCounts[pipeline.StageProcedure], summary.StageCounts[pipeline.StageBooking])

	return summary
}

// ratio divides numerator by max(denominator, 1).
func ratio(numerator, denominator int) float64 {
	if denominator < 1 {
		denominator = 1
	}
	return float64(numerator) / float64(denominator)
}
