package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// EventRepo implements event.Repository against PostgreSQL. Cry events are
// insert-once: concurrent classifier callbacks never update the same row.
type EventRepo struct{ db *sql.DB }

// NewEventRepo creates a Postgres-backed cry event repository.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Create(ctx context.Context, e *domain.CryEvent) (int64, error) {
	var id int64
	var duration interface{}
	if e.DurationMs != nil {
		duration = *e.DurationMs
	}
	var confidence interface{}
	if e.Confidence != nil {
		confidence = *e.Confidence
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cry_event
			(infant_id, event_time, duration_ms, confidence, severity,
			 cry_type, detected_by, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING event_id
	`, e.InfantID, e.EventTime, duration, confidence, e.Severity,
		e.CryType, e.DetectedBy, e.IsResolved).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create cry event: %w", err)
	}
	return id, nil
}
