package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
	"studiopulse/ports"
)

// Engine generates pipeline insights, per-client predictions, and
// prioritized recommendations from a client snapshot. It is an explicit
// dependency handed to callers, never a package-level singleton, so
// parallel analyses (one per studio) cannot leak state into each other.
//
// The engine holds no durable state: each generation pass overwrites the
// corresponding cached result wholesale, and the caches exist only to back
// the read accessors the dashboard polls between runs.
type Engine struct {
	clock ports.ClockPort

	mu              sync.RWMutex
	insights        []insight.Insight
	recommendations []insight.Recommendation
	predictions     map[core.ClientID]insight.PredictionModel
	funnel          FunnelSummary
	lastRun         core.Timestamp
}

// AnalysisResult bundles the outputs of one full analysis pass.
type AnalysisResult struct {
	ID              core.AnalysisID                           `json:"id"`
	GeneratedAt     core.Timestamp                            `json:"generated_at"`
	Funnel          FunnelSummary                             `json:"funnel"`
	Insights        []insight.Insight                         `json:"insights"`
	Predictions     map[core.ClientID]insight.PredictionModel `json:"predictions"`
	Recommendations []insight.Recommendation                  `json:"recommendations"`
}

// NewEngine creates an engine. A nil clock falls back to the system clock.
func NewEngine(clock ports.ClockPort) *Engine {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Engine{
		clock:       clock,
		predictions: make(map[core.ClientID]insight.PredictionModel),
	}
}

// GenerateInsights runs every population-level rule over the snapshot and
// caches the result for InsightsByType.
func (e *Engine) GenerateInsights(clients []pipeline.ClientRecord) []insight.Insight {
	normalized := pipeline.NormalizeAll(clients)
	insights := generateInsights(normalized, e.clock.Now())

	e.mu.Lock()
	e.insights = insights
	e.funnel = buildFunnelSummary(normalized)
	e.mu.Unlock()

	return insights
}

// GeneratePredictions scores every client in the snapshot and replaces the
// prediction cache wholesale.
func (e *Engine) GeneratePredictions(clients []pipeline.ClientRecord) map[core.ClientID]insight.PredictionModel {
	predictions := generatePredictions(pipeline.NormalizeAll(clients), e.clock.Now())

	e.mu.Lock()
	e.predictions = predictions
	e.mu.Unlock()

	return predictions
}

// GenerateRecommendations runs the recommendation filters over the snapshot
// and caches the result for HighPriorityRecommendations.
func (e *Engine) GenerateRecommendations(clients []pipeline.ClientRecord) []insight.Recommendation {
	recommendations := generateRecommendations(pipeline.NormalizeAll(clients), e.clock.Now())

	e.mu.Lock()
	e.recommendations = recommendations
	e.mu.Unlock()

	return recommendations
}

// Analyze runs all three generation passes over one snapshot. The passes
// are independent pure functions of the same normalized list, so they run
// concurrently; results are stored under a single lock so readers never
// observe a half-updated analysis.
func (e *Engine) Analyze(ctx context.Context, clients []pipeline.ClientRecord) (*AnalysisResult, error) {
	normalized := pipeline.NormalizeAll(clients)
	now := e.clock.Now()

	var (
		insights        []insight.Insight
		predictions     map[core.ClientID]insight.PredictionModel
		recommendations []insight.Recommendation
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		insights = generateInsights(normalized, now)
		return nil
	})
	g.Go(func() error {
		predictions = generatePredictions(normalized, now)
		return nil
	})
	g.Go(func() error {
		recommendations = generateRecommendations(normalized, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		ID:              core.NewAnalysisID(),
		GeneratedAt:     core.NewTimestamp(now),
		Funnel:          buildFunnelSummary(normalized),
		Insights:        insights,
		Predictions:     predictions,
		Recommendations: recommendations,
	}

	e.mu.Lock()
	e.insights = insights
	e.predictions = predictions
	e.recommendations = recommendations
	e.funnel = result.Funnel
	e.lastRun = result.GeneratedAt
	e.mu.Unlock()

	return result, nil
}

// InsightsByType filters the last-generated insights by type.
func (e *Engine) InsightsByType(t insight.Type) []insight.Insight {
	e.mu.RLock()
	defer e.mu.RUnlock()

	filtered := make([]insight.Insight, 0, len(e.insights))
	for _, ins := range e.insights {
		if ins.Type == t {
			filtered = append(filtered, ins)
		}
	}
	return filtered
}

// Insights returns the last-generated insight list.
func (e *Engine) Insights() []insight.Insight {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]insight.Insight(nil), e.insights...)
}

// Recommendations returns the last-generated recommendation list.
func (e *Engine) Recommendations() []insight.Recommendation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]insight.Recommendation(nil), e.recommendations...)
}

// HighPriorityRecommendations filters the last-generated recommendations
// down to priority "high".
func (e *Engine) HighPriorityRecommendations() []insight.Recommendation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	filtered := make([]insight.Recommendation, 0, len(e.recommendations))
	for _, rec := range e.recommendations {
		if rec.Priority == insight.PriorityHigh {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// ClientPrediction looks up the cached prediction for one client. Unknown
// ids return core.ErrPredictionNotFound, never a panic.
func (e *Engine) ClientPrediction(id core.ClientID) (insight.PredictionModel, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	model, ok := e.predictions[id]
	if !ok {
		return insight.PredictionModel{}, core.ErrPredictionNotFound
	}
	return model, nil
}

// LastAnalysis reassembles the most recent full analysis from the caches.
// Returns core.ErrAnalysisNotFound before the first Analyze call.
func (e *Engine) LastAnalysis() (*AnalysisResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.lastRun.IsZero() {
		return nil, core.ErrAnalysisNotFound
	}

	predictions := make(map[core.ClientID]insight.PredictionModel, len(e.predictions))
	for id, model := range e.predictions {
		predictions[id] = model
	}

	return &AnalysisResult{
		GeneratedAt:     e.lastRun,
		Funnel:          e.funnel,
		Insights:        append([]insight.Insight(nil), e.insights...),
		Predictions:     predictions,
		Recommendations: append([]insight.Recommendation(nil), e.recommendations...),
	}, nil
}

// Funnel returns the funnel summary from the last analysis.
func (e *Engine) Funnel() FunnelSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.funnel
}

// LastRun returns when the last full analysis completed (zero if never).
func (e *Engine) LastRun() core.Timestamp {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastRun
}
