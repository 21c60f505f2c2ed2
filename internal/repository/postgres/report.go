package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/service/report"
)

// ReportRepo implements report.Repository and report.Store against
// PostgreSQL. Each breakdown is a single grouped pass over cry_event;
// no event is read twice within a breakdown.
type ReportRepo struct{ db *sql.DB }

// NewReportRepo creates a Postgres-backed report repository.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

func (r *ReportRepo) Summary(ctx context.Context, infantID int64, start, end time.Time) (domain.ReportSummary, error) {
	var s domain.ReportSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(duration_ms), 0) / 1000.0,
		       COALESCE(AVG(duration_ms), 0) / 1000.0,
		       COALESCE(MIN(duration_ms), 0) / 1000.0,
		       COALESCE(MAX(duration_ms), 0) / 1000.0,
		       COALESCE(AVG(confidence), 0)
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
	`, infantID, start, end).Scan(
		&s.TotalEvents, &s.TotalDurationSecs, &s.AvgDurationSecs,
		&s.MinDurationSecs, &s.MaxDurationSecs, &s.AvgConfidence,
	)
	if err != nil {
		return s, fmt.Errorf("report summary: %w", err)
	}
	return s, nil
}

func (r *ReportRepo) CountByCryType(ctx context.Context, infantID int64, start, end time.Time) ([]domain.CryTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cry_type, COUNT(*) AS cnt,
		       COALESCE(AVG(duration_ms), 0) / 1000.0,
		       COALESCE(MIN(duration_ms), 0) / 1000.0,
		       COALESCE(MAX(duration_ms), 0) / 1000.0
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
		GROUP BY cry_type
		ORDER BY cnt DESC
	`, infantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("count by cry type: %w", err)
	}
	defer rows.Close()

	var out []domain.CryTypeCount
	for rows.Next() {
		var c domain.CryTypeCount
		if err := rows.Scan(&c.CryType, &c.Count, &c.AvgDurationSecs, &c.MinDurationSecs, &c.MaxDurationSecs); err != nil {
			return nil, fmt.Errorf("scan cry type row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) CountByHour(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(HOUR FROM event_time)::int AS hour_value, COUNT(*)
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
		GROUP BY hour_value
	`, infantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("count by hour: %w", err)
	}
	defer rows.Close()

	out := map[int]int{}
	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return nil, fmt.Errorf("scan hour row: %w", err)
		}
		out[hour] = count
	}
	return out, rows.Err()
}

func (r *ReportRepo) CountByDayOfWeek(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(DOW FROM event_time)::int AS day_value, COUNT(*)
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
		GROUP BY day_value
	`, infantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("count by day of week: %w", err)
	}
	defer rows.Close()

	out := map[int]int{}
	for rows.Next() {
		var day, count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan day row: %w", err)
		}
		out[day] = count
	}
	return out, rows.Err()
}

func (r *ReportRepo) CountBySeverity(ctx context.Context, infantID int64, start, end time.Time) ([]domain.SeverityCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT severity, COUNT(*),
		       COALESCE(AVG(duration_ms), 0) / 1000.0
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
		GROUP BY severity
	`, infantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("count by severity: %w", err)
	}
	defer rows.Close()

	var out []domain.SeverityCount
	for rows.Next() {
		var s domain.SeverityCount
		if err := rows.Scan(&s.Severity, &s.Count, &s.AvgDurationSecs); err != nil {
			return nil, fmt.Errorf("scan severity row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ReportRepo) DailyTrend(ctx context.Context, infantID int64, start, end time.Time) ([]domain.DailyCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(event_time, 'YYYY-MM-DD') AS day, COUNT(*),
		       COALESCE(SUM(duration_ms), 0) / 1000.0,
		       COALESCE(AVG(duration_ms), 0) / 1000.0
		FROM cry_event
		WHERE infant_id = $1 AND event_time BETWEEN $2 AND $3
		GROUP BY day
		ORDER BY day ASC
	`, infantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyCount
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.Date, &d.Count, &d.TotalDurationSecs, &d.AvgDurationSecs); err != nil {
			return nil, fmt.Errorf("scan daily row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ReportRepo) TopActions(ctx context.Context, infantID int64, start, end time.Time, limit int) ([]domain.TopAction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.action_detail, COUNT(*) AS cnt,
		       AVG(CASE a.result
		           WHEN 'success' THEN 5
		           WHEN 'partial' THEN 3
		           WHEN 'fail' THEN 1
		           ELSE 0 END)::float AS effectiveness
		FROM action_log a
		JOIN cry_event e ON a.event_id = e.event_id
		WHERE e.infant_id = $1 AND e.event_time BETWEEN $2 AND $3
		GROUP BY a.action_detail
		ORDER BY cnt DESC
		LIMIT $4
	`, infantID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top actions: %w", err)
	}
	defer rows.Close()

	var out []domain.TopAction
	for rows.Next() {
		var a domain.TopAction
		if err := rows.Scan(&a.ActionDetail, &a.Count, &a.Effectiveness); err != nil {
			return nil, fmt.Errorf("scan top action: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ReportRepo) LatestPrediction(ctx context.Context, infantID int64) (*time.Time, error) {
	var predicted time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT predicted_next_time
		FROM pattern_analysis
		WHERE infant_id = $1 AND predicted_next_time IS NOT NULL
		ORDER BY created_at DESC
		LIMIT 1
	`, infantID).Scan(&predicted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest prediction: %w", err)
	}
	return &predicted, nil
}

func (r *ReportRepo) Save(ctx context.Context, rep *domain.Report) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO report (infant_id, start_date, end_date, narrative, stats_json, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING report_id
	`, rep.InfantID, rep.StartDate, rep.EndDate, rep.Narrative, rep.StatsJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save report: %w", err)
	}
	return id, nil
}

func (r *ReportRepo) Get(ctx context.Context, infantID, reportID int64) (*domain.Report, error) {
	rep := &domain.Report{}
	err := r.db.QueryRowContext(ctx, `
		SELECT report_id, infant_id, start_date, end_date, narrative, stats_json, created_at
		FROM report
		WHERE report_id = $1 AND infant_id = $2
	`, reportID, infantID).Scan(
		&rep.ReportID, &rep.InfantID, &rep.StartDate, &rep.EndDate,
		&rep.Narrative, &rep.StatsJSON, &rep.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, report.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *ReportRepo) List(ctx context.Context, infantID int64, limit, offset int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT report_id, infant_id, start_date, end_date, narrative, stats_json, created_at
		FROM report
		WHERE infant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, infantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(
			&rep.ReportID, &rep.InfantID, &rep.StartDate, &rep.EndDate,
			&rep.Narrative, &rep.StatsJSON, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
