package ports

import (
	"context"

	"studiopulse/domain/pipeline"
)

// ClientSourcePort supplies the full client snapshot the engine analyzes.
// The engine never fetches, caches, or persists client records itself;
// whatever this port returns IS the population for one analysis run.
type ClientSourcePort interface {
	// ListClients returns every client record currently known to the studio.
	ListClients(ctx context.Context) ([]pipeline.ClientRecord, error)
}
