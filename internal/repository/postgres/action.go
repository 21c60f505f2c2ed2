package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/service/action"
)

// ActionRepo implements action.Repository against PostgreSQL.
type ActionRepo struct{ db *sql.DB }

// NewActionRepo creates a Postgres-backed action repository.
func NewActionRepo(db *sql.DB) *ActionRepo { return &ActionRepo{db: db} }

func (r *ActionRepo) Create(ctx context.Context, a *domain.ActionLog) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO action_log (event_id, action_detail, result, executed_at, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING action_id
	`, a.EventID, a.ActionDetail, nullIfEmpty(string(a.Result))).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create action: %w", err)
	}
	return id, nil
}

func (r *ActionRepo) Update(ctx context.Context, actionID int64, u action.UpdateFields) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE action_log
		SET action_detail = COALESCE($1, action_detail),
		    result        = COALESCE($2, result),
		    executed_at   = NOW()
		WHERE action_id = $3
	`, u.ActionDetail, (*string)(u.Result), actionID)
	if err != nil {
		return fmt.Errorf("update action: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return action.ErrNotFound
	}
	return nil
}

// Delete removes the action and its embedding in one transaction.
func (r *ActionRepo) Delete(ctx context.Context, actionID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete action: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM action_embedding WHERE action_id = $1
	`, actionID); err != nil {
		return fmt.Errorf("delete embedding: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM action_log WHERE action_id = $1
	`, actionID)
	if err != nil {
		return fmt.Errorf("delete action: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return action.ErrNotFound
	}

	return tx.Commit()
}

func (r *ActionRepo) GetContext(ctx context.Context, actionID int64) (*action.Context, error) {
	c := &action.Context{}
	var result sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT a.action_detail, a.result, e.cry_type, e.severity
		FROM action_log a
		JOIN cry_event e ON a.event_id = e.event_id
		WHERE a.action_id = $1
	`, actionID).Scan(&c.Detail, &result, &c.CryType, &c.Severity)
	if err == sql.ErrNoRows {
		return nil, action.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get action context: %w", err)
	}
	c.Result = domain.ActionResult(result.String)
	return c, nil
}

// ReplaceEmbedding swaps the action's embedding in a single transaction so
// at most one row exists per action at any point.
func (r *ActionRepo) ReplaceEmbedding(ctx context.Context, actionID int64, modelName string, vector []float64) error {
	payload, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace embedding: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM action_embedding WHERE action_id = $1
	`, actionID); err != nil {
		return fmt.Errorf("delete old embedding: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO action_embedding (action_id, model_name, embedding_json, created_at)
		VALUES ($1, $2, $3, NOW())
	`, actionID, modelName, string(payload)); err != nil {
		return fmt.Errorf("insert embedding: %w", err)
	}

	return tx.Commit()
}

func (r *ActionRepo) OutcomesByCause(ctx context.Context, cause domain.CryType) ([]action.Outcome, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.action_detail, COALESCE(a.result, '')
		FROM action_log a
		JOIN cry_event e ON a.event_id = e.event_id
		WHERE e.cry_type = $1
	`, cause)
	if err != nil {
		return nil, fmt.Errorf("outcomes by cause: %w", err)
	}
	defer rows.Close()

	var out []action.Outcome
	for rows.Next() {
		var o action.Outcome
		var result string
		if err := rows.Scan(&o.Detail, &result); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Result = domain.ActionResult(result)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Dashboard joins events with their notification and actions. One query,
// regrouped in memory: events newest first, actions oldest first.
func (r *ActionRepo) Dashboard(ctx context.Context, infantID int64) ([]domain.DashboardEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.event_id, e.event_time, e.cry_type, e.severity, e.confidence,
		       n.notification_id, n.sent_at, n.status, n.action_text,
		       a.action_id, a.action_detail, a.result, a.executed_at
		FROM cry_event e
		LEFT JOIN notification_log n ON n.event_id = e.event_id
		LEFT JOIN action_log a ON a.event_id = e.event_id
		WHERE e.infant_id = $1
		ORDER BY e.event_time DESC, a.executed_at ASC
	`, infantID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	defer rows.Close()

	var out []domain.DashboardEvent
	index := map[int64]int{}
	for rows.Next() {
		var (
			ev         domain.DashboardEvent
			confidence sql.NullFloat64
			notifID    sql.NullInt64
			sentAt     sql.NullTime
			status     sql.NullString
			actionText sql.NullString
			actionID   sql.NullInt64
			detail     sql.NullString
			result     sql.NullString
			executedAt sql.NullTime
		)
		if err := rows.Scan(
			&ev.EventID, &ev.EventTime, &ev.CryType, &ev.Severity, &confidence,
			&notifID, &sentAt, &status, &actionText,
			&actionID, &detail, &result, &executedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dashboard row: %w", err)
		}

		i, seen := index[ev.EventID]
		if !seen {
			if confidence.Valid {
				ev.Confidence = &confidence.Float64
			}
			if notifID.Valid {
				ev.Notification = &domain.DashboardNotification{
					NotificationID: notifID.Int64,
					SentAt:         sentAt.Time,
					Status:         domain.NotificationStatus(status.String),
					ActionText:     actionText.String,
				}
			}
			ev.Actions = []domain.DashboardAction{}
			out = append(out, ev)
			i = len(out) - 1
			index[ev.EventID] = i
		}

		if actionID.Valid {
			out[i].Actions = append(out[i].Actions, domain.DashboardAction{
				ActionID:     actionID.Int64,
				ActionDetail: detail.String,
				Result:       domain.ActionResult(result.String),
				ExecutedAt:   executedAt.Time,
			})
		}
	}
	return out, rows.Err()
}
