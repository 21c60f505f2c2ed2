package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// topActionsLimit caps the top-actions breakdown.
const topActionsLimit = 5

// Narrator turns aggregated report data into natural-language text.
type Narrator interface {
	Narrate(ctx context.Context, data *domain.ReportData) (string, error)
}

// Cache holds computed report data keyed by infant and window. A nil
// Cache disables caching.
type Cache interface {
	Get(ctx context.Context, infantID int64, start, end string) (*domain.ReportData, bool)
	Set(ctx context.Context, infantID int64, start, end string, data *domain.ReportData)
}

// Service implements report business logic: multi-dimensional aggregation
// over cry events and actions, insight derivation, AI narration, and report
// persistence. All public methods are safe for concurrent use if the
// underlying repository is concurrency-safe.
type Service struct {
	repo     Repository
	store    Store
	narrator Narrator
	cache    Cache
}

// NewService creates a report service. narrator and cache may be nil;
// Text and Generate fail without a narrator, Compute skips caching
// without a cache.
func NewService(repo Repository, store Store, narrator Narrator, cache Cache) *Service {
	return &Service{repo: repo, store: store, narrator: narrator, cache: cache}
}

// ParseWindow converts YYYY-MM-DD bounds into a closed timestamp interval:
// start at 00:00:00 and end at 23:59:59, both inclusive.
func ParseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate %q", ErrInvalidRange, startDate)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %q", ErrInvalidRange, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, endDate, startDate)
	}
	return start, end.Add(24*time.Hour - time.Second), nil
}

// Compute aggregates all report breakdowns for an infant over a closed
// [startDate, endDate] window. The eight breakdowns are independent and
// run concurrently; insight derivation joins on all of them.
func (s *Service) Compute(ctx context.Context, infantID int64, startDate, endDate string) (*domain.ReportData, error) {
	start, end, err := ParseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, infantID, startDate, endDate); ok {
			return data, nil
		}
	}

	var (
		summary    domain.ReportSummary
		byCryType  []domain.CryTypeCount
		byHour     map[int]int
		byDay      map[int]int
		bySeverity []domain.SeverityCount
		daily      []domain.DailyCount
		topActions []domain.TopAction
		predicted  *time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.repo.Summary(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		byCryType, err = s.repo.CountByCryType(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		byHour, err = s.repo.CountByHour(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		byDay, err = s.repo.CountByDayOfWeek(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		bySeverity, err = s.repo.CountBySeverity(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.repo.DailyTrend(gctx, infantID, start, end)
		return err
	})
	g.Go(func() (err error) {
		topActions, err = s.repo.TopActions(gctx, infantID, start, end, topActionsLimit)
		return err
	})
	g.Go(func() (err error) {
		predicted, err = s.repo.LatestPrediction(gctx, infantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute report: %w", err)
	}

	total := summary.TotalEvents
	summary.TotalDurationText = FormatDurationKorean(summary.TotalDurationSecs)
	summary.AvgDurationText = FormatDurationKorean(summary.AvgDurationSecs)

	for i := range byCryType {
		byCryType[i].Percentage = FormatPercent(byCryType[i].Count, total)
	}
	sort.SliceStable(byCryType, func(i, j int) bool {
		return byCryType[i].Count > byCryType[j].Count
	})

	for i := range bySeverity {
		bySeverity[i].Percentage = FormatPercent(bySeverity[i].Count, total)
	}
	sort.SliceStable(bySeverity, func(i, j int) bool {
		return bySeverity[i].Severity.Rank() < bySeverity[j].Severity.Rank()
	})

	// byHour is always dense: 24 slots, zero-filled
	hours := make([]domain.HourCount, 24)
	for h := 0; h < 24; h++ {
		hours[h] = domain.HourCount{Hour: h, Count: byHour[h]}
	}

	var byDayOfWeek []domain.DayOfWeekCount
	for d := 0; d < 7; d++ {
		if n, ok := byDay[d]; ok && n > 0 {
			byDayOfWeek = append(byDayOfWeek, domain.DayOfWeekCount{
				Day:     d,
				DayName: domain.KoreanDayNames[d],
				Count:   n,
			})
		}
	}

	sort.SliceStable(topActions, func(i, j int) bool {
		return topActions[i].Count > topActions[j].Count
	})
	if len(topActions) > topActionsLimit {
		topActions = topActions[:topActionsLimit]
	}

	prediction := domain.Prediction{Confidence: "none"}
	if predicted != nil {
		prediction.NextCryTime = predicted
		prediction.Confidence = "medium"
	}

	data := &domain.ReportData{
		InfantID:    infantID,
		StartDate:   startDate,
		EndDate:     endDate,
		Summary:     summary,
		ByCryType:   byCryType,
		ByHour:      hours,
		ByDayOfWeek: byDayOfWeek,
		BySeverity:  bySeverity,
		DailyTrend:  daily,
		TopActions:  topActions,
		Prediction:  prediction,
	}
	data.Insights = deriveInsights(data)

	if s.cache != nil {
		s.cache.Set(ctx, infantID, startDate, endDate, data)
	}
	return data, nil
}

// Text computes the report and narrates it. Narration errors propagate;
// there is no fallback for the reporting path.
func (s *Service) Text(ctx context.Context, infantID int64, startDate, endDate string) (string, *domain.ReportData, error) {
	data, err := s.Compute(ctx, infantID, startDate, endDate)
	if err != nil {
		return "", nil, err
	}
	if s.narrator == nil {
		return "", nil, fmt.Errorf("narrator not configured")
	}
	text, err := s.narrator.Narrate(ctx, data)
	if err != nil {
		return "", nil, fmt.Errorf("narrate report: %w", err)
	}
	return text, data, nil
}

// Generate computes, narrates, and persists a report document.
func (s *Service) Generate(ctx context.Context, infantID int64, startDate, endDate string) (*domain.Report, error) {
	text, data, err := s.Text(ctx, infantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	stats, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}

	r := &domain.Report{
		InfantID:  infantID,
		StartDate: startDate,
		EndDate:   endDate,
		Narrative: text,
		StatsJSON: string(stats),
	}
	id, err := s.store.Save(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ReportID = id
	log.Printf("[report.Service] Infant %d: report %d generated for %s..%s", infantID, id, startDate, endDate)
	return r, nil
}

// Get returns a persisted report.
func (s *Service) Get(ctx context.Context, infantID, reportID int64) (*domain.Report, error) {
	return s.store.Get(ctx, infantID, reportID)
}

// List returns persisted reports for an infant, newest first.
func (s *Service) List(ctx context.Context, infantID int64, limit, offset int) ([]domain.Report, error) {
	return s.store.List(ctx, infantID, limit, offset)
}
