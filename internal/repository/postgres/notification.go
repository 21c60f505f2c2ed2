package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// NotificationRepo implements notify.LogStore against PostgreSQL.
// The notification log is append-only.
type NotificationRepo struct{ db *sql.DB }

// NewNotificationRepo creates a Postgres-backed notification repository.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Save(ctx context.Context, n *domain.NotificationLog) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notification_log
			(event_id, guardian_id, channel, sent_at, status,
			 provider_msg_id, latency_ms, action_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING notification_id
	`, n.EventID, n.GuardianID, n.Channel, n.SentAt, n.Status,
		nullIfEmpty(n.ProviderMsgID), n.LatencyMs, n.ActionText).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save notification log: %w", err)
	}
	return id, nil
}
