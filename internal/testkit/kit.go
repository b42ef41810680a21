package testkit

import (
	"context"
	"time"

	"studiopulse/domain/pipeline"
)

// TestKit provides demo fixtures: a seeded synthetic client book exposed
// through the same port the production sources implement.
type TestKit struct {
	clients []pipeline.ClientRecord
}

// NewTestKit creates a test kit with the default synthetic client book.
func NewTestKit() (*TestKit, error) {
	return NewTestKitWithConfig(DefaultClientConfig())
}

// NewTestKitWithConfig creates a test kit from an explicit generator config.
func NewTestKitWithConfig(config ClientGeneratorConfig) (*TestKit, error) {
	generator := NewClientGenerator(config)
	return &TestKit{clients: generator.Generate()}, nil
}

// ListClients implements ports.ClientSourcePort over the synthetic book.
func (t *TestKit) ListClients(ctx context.Context) ([]pipeline.ClientRecord, error) {
	out := make([]pipeline.ClientRecord, len(t.clients))
	copy(out, t.clients)
	return out, nil
}

// Clients returns the raw synthetic book for direct fixture access.
func (t *TestKit) Clients() []pipeline.ClientRecord {
	return t.clients
}

// FixedClock is a ClockPort pinned to a single instant for tests.
type FixedClock struct {
	At time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.At }
