package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"studiopulse/domain/core"
	"studiopulse/domain/pipeline"
)

// ClientGeneratorConfig configures the synthetic client generator
type ClientGeneratorConfig struct {
	ClientCount  int       `json:"client_count"`
	OverdueRate  float64   `json:"overdue_rate"`
	FollowUpRate float64   `json:"follow_up_rate"`
	ReferenceDay time.Time `json:"reference_day"`
	Seed         int64     `json:"seed"`
}

// DefaultClientConfig returns sensible defaults for a mid-size studio
func DefaultClientConfig() ClientGeneratorConfig {
	return ClientGeneratorConfig{
		ClientCount:  200,
		OverdueRate:  0.15,
		FollowUpRate: 0.6,
		ReferenceDay: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

// ClientGenerator produces realistic synthetic studio clients for demos
// and tests. Deterministic for a given seed.
type ClientGenerator struct {
	config ClientGeneratorConfig
	rng    *rand.Rand
}

// NewClientGenerator creates a new synthetic client generator
func NewClientGenerator(config ClientGeneratorConfig) *ClientGenerator {
	return &ClientGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Deal values cluster around the studio's brow/liner price band with a
// long premium tail; quantile sampling keeps draws deterministic under
// the generator's own seeded stream.
var dealValueDist = distuv.LogNormal{Mu: 6.6, Sigma: 0.55}

// Probability and compliance skew optimistic for an established studio.
var probabilityDist = distuv.Beta{Alpha: 2.5, Beta: 1.8}
var complianceDist = distuv.Beta{Alpha: 3.2, Beta: 1.4}

var firstNames = []string{
	"Ava", "Mia", "Sofia", "Isla", "Nora", "Elena", "Ruby", "Jade",
	"Lena", "Chloe", "Maya", "Ivy", "Freya", "Aria", "Luna", "Daria",
}

var lastNames = []string{
	"Nguyen", "Garcia", "Kim", "Patel", "Novak", "Rossi", "Silva",
	"Kowalski", "Haddad", "Okafor", "Larsen", "Moreau", "Santos", "Ivanova",
}

// Stage mix for a studio with a healthy book: heavy at the top of the
// funnel, thinner through procedure, with a real retention base.
var stageWeights = []struct {
	stage  pipeline.Stage
	weight float64
}{
	{pipeline.StageLead, 0.28},
	{pipeline.StageConsultation, 0.18},
	{pipeline.StageBooking, 0.14},
	{pipeline.StageProcedure, 0.10},
	{pipeline.StageAftercare, 0.12},
	{pipeline.StageTouchup, 0.08},
	{pipeline.StageRetention, 0.10},
}

// Generate produces the configured number of synthetic client records.
func (g *ClientGenerator) Generate() []pipeline.ClientRecord {
	clients := make([]pipeline.ClientRecord, 0, g.config.ClientCount)
	for i := 0; i < g.config.ClientCount; i++ {
		clients = append(clients, g.generateClient(i))
	}
	return clients
}

func (g *ClientGenerator) generateClient(i int) pipeline.ClientRecord {
	stage := g.pickStage()

	record := pipeline.ClientRecord{
		ID:        core.ClientID(fmt.Sprintf("client-%04d", i+1)),
		FirstName: firstNames[g.rng.Intn(len(firstNames))],
		LastName:  lastNames[g.rng.Intn(len(lastNames))],
		Pipeline: pipeline.PipelineStatus{
			Stage:          stage,
			EstimatedValue: dealValueDist.Quantile(g.rng.Float64()),
			Probability:    probabilityDist.Quantile(g.rng.Float64()),
		},
	}

	if stage.AtLeast(pipeline.StageAftercare) {
		record.Aftercare.ComplianceScore = complianceDist.Quantile(g.rng.Float64())
	}

	if g.rng.Float64() < g.config.FollowUpRate {
		followUp := g.followUpDate()
		record.Pipeline.FollowUpDate = &followUp
	}

	return record
}

func (g *ClientGenerator) pickStage() pipeline.Stage {
	roll := g.rng.Float64()
	cumulative := 0.0
	for _, sw := range stageWeights {
		cumulative += sw.weight
		if roll < cumulative {
			return sw.stage
		}
	}
	return pipeline.StageRetention
}

// followUpDate places most follow-ups in the next two weeks, with the
// configured share already lapsed.
func (g *ClientGenerator) followUpDate() time.Time {
	days := g.rng.Intn(14) + 1
	if g.rng.Float64() < g.config.OverdueRate {
		return g.config.ReferenceDay.AddDate(0, 0, -days)
	}
	return g.config.ReferenceDay.AddDate(0, 0, days)
}
