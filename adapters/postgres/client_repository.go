package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"studiopulse/domain/core"
	"studiopulse/domain/pipeline"
	"studiopulse/internal/errors"
	"studiopulse/ports"
)

// ClientRepository implements ports.ClientSourcePort against the studio's
// PostgreSQL client book.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new PostgreSQL client repository
func NewClientRepository(db *sqlx.DB) ports.ClientSourcePort {
	return &ClientRepository{db: db}
}

// clientRow mirrors the clients/pipeline join; nullable columns use sql
// null types and collapse to engine-safe defaults in toRecord.
type clientRow struct {
	ID              string          `db:"id"`
	FirstName       string          `db:"first_name"`
	LastName        string          `db:"last_name"`
	Stage           string          `db:"stage"`
	EstimatedValue  float64         `db:"estimated_value"`
	Probability     float64         `db:"probability"`
	FollowUpDate    sql.NullTime    `db:"follow_up_date"`
	ComplianceScore sql.NullFloat64 `db:"compliance_score"`
}

// ListClients returns every client with their current pipeline status.
func (r *ClientRepository) ListClients(ctx context.Context) ([]pipeline.ClientRecord, error) {
	var rows []clientRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT c.id, c.first_name, c.last_name,
		       p.stage, p.estimated_value, p.probability, p.follow_up_date,
		       COALESCE(a.compliance_score, 0) AS compliance_score
		FROM clients c
		JOIN client_pipeline p ON p.client_id = c.id
		LEFT JOIN aftercare_status a ON a.client_id = c.id
		ORDER BY c.created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load client pipeline records")
	}

	clients := make([]pipeline.ClientRecord, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, row.toRecord())
	}
	return clients, nil
}

func (row clientRow) toRecord() pipeline.ClientRecord {
	record := pipeline.ClientRecord{
		ID:        core.ClientID(row.ID),
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Pipeline: pipeline.PipelineStatus{
			Stage:          pipeline.ParseStage(row.Stage),
			EstimatedValue: row.EstimatedValue,
			Probability:    row.Probability,
		},
	}
	if row.FollowUpDate.Valid {
		followUp := row.FollowUpDate.Time.UTC()
		record.Pipeline.FollowUpDate = &followUp
	}
	if row.ComplianceScore.Valid {
		record.Aftercare.ComplianceScore = row.ComplianceScore.Float64
	}
	return record
}

// Ping verifies the database connection with a short timeout.
func (r *ClientRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "database connection test failed")
	}
	return nil
}
