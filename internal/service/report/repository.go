package report

import (
	"context"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Repository defines the data access contract for report aggregation.
// All window parameters are closed intervals, inclusive on both ends.
// Implementations must be safe for concurrent use; Compute calls every
// aggregation method concurrently over the same window.
type Repository interface {
	// Summary returns the headline counts for the window. Duration and
	// percentage text fields are left empty; the service fills them.
	Summary(ctx context.Context, infantID int64, start, end time.Time) (domain.ReportSummary, error)

	// CountByCryType returns per-cause rows ordered by count DESC, with
	// duration aggregates in seconds. Percentage is left empty.
	CountByCryType(ctx context.Context, infantID int64, start, end time.Time) ([]domain.CryTypeCount, error)

	// CountByHour returns counts keyed by hour-of-day. Only hours with
	// events need to be present; the service densifies to 24 slots.
	CountByHour(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error)

	// CountByDayOfWeek returns counts keyed by weekday (0=Sunday).
	CountByDayOfWeek(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error)

	// CountBySeverity returns per-severity rows. Order is not guaranteed;
	// the service sorts High, Medium, Low. Percentage is left empty.
	CountBySeverity(ctx context.Context, infantID int64, start, end time.Time) ([]domain.SeverityCount, error)

	// DailyTrend returns per-day rows ordered by date ASC. Only days with
	// events are present.
	DailyTrend(ctx context.Context, infantID int64, start, end time.Time) ([]domain.DailyCount, error)

	// TopActions returns the most-used soothing actions in the window with
	// their mean reward, ordered by count DESC, at most limit rows.
	TopActions(ctx context.Context, infantID int64, start, end time.Time, limit int) ([]domain.TopAction, error)

	// LatestPrediction returns the newest non-null next-cry prediction for
	// the infant, or (nil, nil) when none exists.
	LatestPrediction(ctx context.Context, infantID int64) (*time.Time, error)
}

// Store persists generated report documents.
type Store interface {
	// Save inserts a report and returns its ID.
	Save(ctx context.Context, r *domain.Report) (int64, error)

	// Get returns a single report. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, infantID, reportID int64) (*domain.Report, error)

	// List returns reports for an infant, newest first.
	List(ctx context.Context, infantID int64, limit, offset int) ([]domain.Report, error)
}
