package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// fakeRepo returns canned aggregation rows, in the raw form the postgres
// repository produces them.
type fakeRepo struct {
	summary    domain.ReportSummary
	byCryType  []domain.CryTypeCount
	byHour     map[int]int
	byDay      map[int]int
	bySeverity []domain.SeverityCount
	daily      []domain.DailyCount
	topActions []domain.TopAction
	predicted  *time.Time

	err error
}

func (f *fakeRepo) Summary(ctx context.Context, infantID int64, start, end time.Time) (domain.ReportSummary, error) {
	return f.summary, f.err
}

func (f *fakeRepo) CountByCryType(ctx context.Context, infantID int64, start, end time.Time) ([]domain.CryTypeCount, error) {
	return f.byCryType, f.err
}

func (f *fakeRepo) CountByHour(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error) {
	return f.byHour, f.err
}

func (f *fakeRepo) CountByDayOfWeek(ctx context.Context, infantID int64, start, end time.Time) (map[int]int, error) {
	return f.byDay, f.err
}

func (f *fakeRepo) CountBySeverity(ctx context.Context, infantID int64, start, end time.Time) ([]domain.SeverityCount, error) {
	return f.bySeverity, f.err
}

func (f *fakeRepo) DailyTrend(ctx context.Context, infantID int64, start, end time.Time) ([]domain.DailyCount, error) {
	return f.daily, f.err
}

func (f *fakeRepo) TopActions(ctx context.Context, infantID int64, start, end time.Time, limit int) ([]domain.TopAction, error) {
	return f.topActions, f.err
}

func (f *fakeRepo) LatestPrediction(ctx context.Context, infantID int64) (*time.Time, error) {
	return f.predicted, f.err
}

type fakeStore struct {
	saved  []*domain.Report
	nextID int64
}

func (f *fakeStore) Save(ctx context.Context, r *domain.Report) (int64, error) {
	f.nextID++
	f.saved = append(f.saved, r)
	return f.nextID, nil
}

func (f *fakeStore) Get(ctx context.Context, infantID, reportID int64) (*domain.Report, error) {
	return nil, ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, infantID int64, limit, offset int) ([]domain.Report, error) {
	return nil, nil
}

type fakeNarrator struct {
	text string
	err  error
}

func (f *fakeNarrator) Narrate(ctx context.Context, data *domain.ReportData) (string, error) {
	return f.text, f.err
}

// weekRepo models two hungry cries of 30s and 45s plus one tired cry of
// 20s inside a single week.
func weekRepo() *fakeRepo {
	return &fakeRepo{
		summary: domain.ReportSummary{
			TotalEvents:       3,
			TotalDurationSecs: 95,
			AvgDurationSecs:   31.666667,
			MinDurationSecs:   20,
			MaxDurationSecs:   45,
			AvgConfidence:     0.91,
		},
		byCryType: []domain.CryTypeCount{
			{CryType: domain.CryHungry, Count: 2, AvgDurationSecs: 37.5, MinDurationSecs: 30, MaxDurationSecs: 45},
			{CryType: domain.CryTired, Count: 1, AvgDurationSecs: 20, MinDurationSecs: 20, MaxDurationSecs: 20},
		},
		byHour: map[int]int{3: 2, 14: 1},
		byDay:  map[int]int{1: 2, 4: 1},
		bySeverity: []domain.SeverityCount{
			{Severity: domain.SeverityLow, Count: 1, AvgDurationSecs: 20},
			{Severity: domain.SeverityHigh, Count: 2, AvgDurationSecs: 37.5},
		},
		daily: []domain.DailyCount{
			{Date: "2026-08-03", Count: 2, TotalDurationSecs: 75, AvgDurationSecs: 37.5},
			{Date: "2026-08-06", Count: 1, TotalDurationSecs: 20, AvgDurationSecs: 20},
		},
		topActions: []domain.TopAction{
			{ActionDetail: "분유 120ml 수유", Count: 2, Effectiveness: 5},
			{ActionDetail: "자장가 들려주기", Count: 1, Effectiveness: 3},
		},
	}
}

func TestComputeFillsDerivedFields(t *testing.T) {
	svc := NewService(weekRepo(), &fakeStore{}, nil, nil)

	data, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	assert.Equal(t, int64(1), data.InfantID)
	assert.Equal(t, "2026-08-01", data.StartDate)
	assert.Equal(t, "2026-08-07", data.EndDate)

	assert.Equal(t, 3, data.Summary.TotalEvents)
	assert.Equal(t, "1분 35초", data.Summary.TotalDurationText)
	assert.Equal(t, "31초", data.Summary.AvgDurationText)

	require.Len(t, data.ByCryType, 2)
	assert.Equal(t, domain.CryHungry, data.ByCryType[0].CryType)
	assert.Equal(t, "66.7", data.ByCryType[0].Percentage)
	assert.Equal(t, "33.3", data.ByCryType[1].Percentage)

	// dense 24-hour breakdown, zero-filled
	require.Len(t, data.ByHour, 24)
	assert.Equal(t, 2, data.ByHour[3].Count)
	assert.Equal(t, 1, data.ByHour[14].Count)
	assert.Equal(t, 0, data.ByHour[0].Count)

	// sparse weekday breakdown with Korean names
	require.Len(t, data.ByDayOfWeek, 2)
	assert.Equal(t, 1, data.ByDayOfWeek[0].Day)
	assert.Equal(t, "월요일", data.ByDayOfWeek[0].DayName)
	assert.Equal(t, "목요일", data.ByDayOfWeek[1].DayName)

	// severities sorted High, Medium, Low
	require.Len(t, data.BySeverity, 2)
	assert.Equal(t, domain.SeverityHigh, data.BySeverity[0].Severity)
	assert.Equal(t, "66.7", data.BySeverity[0].Percentage)
	assert.Equal(t, domain.SeverityLow, data.BySeverity[1].Severity)

	assert.Equal(t, "none", data.Prediction.Confidence)
	assert.Nil(t, data.Prediction.NextCryTime)
}

func TestComputeInsightOrder(t *testing.T) {
	svc := NewService(weekRepo(), &fakeStore{}, nil, nil)

	data, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	// hungry dominates, 3시 peaks, High severity present, top action
	// recorded; average duration is short so no long_duration warning.
	types := make([]string, len(data.Insights))
	for i, in := range data.Insights {
		types[i] = in.Type
	}
	assert.Equal(t, []string{"dominant_cry_type", "peak_hour", "high_severity", "effective_action"}, types)

	assert.Contains(t, data.Insights[0].Message, "hungry")
	assert.Contains(t, data.Insights[0].Message, "66.7%")
	assert.Contains(t, data.Insights[1].Message, "3시")
	assert.Equal(t, "warning", data.Insights[2].Level)
	assert.Contains(t, data.Insights[3].Message, "분유 120ml 수유")
}

func TestComputeLongDurationInsight(t *testing.T) {
	repo := weekRepo()
	repo.summary.AvgDurationSecs = 150
	svc := NewService(repo, &fakeStore{}, nil, nil)

	data, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	var found bool
	for _, in := range data.Insights {
		if in.Type == "long_duration" {
			found = true
			assert.Equal(t, "warning", in.Level)
			assert.Contains(t, in.Message, "2분 30초")
		}
	}
	assert.True(t, found)
}

func TestComputeEmptyWindow(t *testing.T) {
	svc := NewService(&fakeRepo{byHour: map[int]int{}, byDay: map[int]int{}}, &fakeStore{}, nil, nil)

	data, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	assert.Equal(t, 0, data.Summary.TotalEvents)
	assert.Equal(t, "0초", data.Summary.TotalDurationText)
	assert.Len(t, data.ByHour, 24)
	assert.Empty(t, data.ByDayOfWeek)
	assert.Empty(t, data.Insights)
	assert.Equal(t, "none", data.Prediction.Confidence)
}

func TestComputePrediction(t *testing.T) {
	next := time.Date(2026, 8, 8, 3, 0, 0, 0, time.UTC)
	repo := weekRepo()
	repo.predicted = &next
	svc := NewService(repo, &fakeStore{}, nil, nil)

	data, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	assert.Equal(t, "medium", data.Prediction.Confidence)
	require.NotNil(t, data.Prediction.NextCryTime)
	assert.True(t, next.Equal(*data.Prediction.NextCryTime))
}

func TestComputeInvalidWindow(t *testing.T) {
	svc := NewService(weekRepo(), &fakeStore{}, nil, nil)

	_, err := svc.Compute(context.Background(), 1, "bad-date", "2026-08-07")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Compute(context.Background(), 1, "2026-08-07", "2026-08-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestComputeRepoError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, &fakeStore{}, nil, nil)

	_, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	assert.Error(t, err)
}

func TestParseWindowClosedInterval(t *testing.T) {
	start, end, err := ParseWindow("2026-08-01", "2026-08-01")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC), end)
}

func TestTextPropagatesNarratorError(t *testing.T) {
	svc := NewService(weekRepo(), &fakeStore{}, &fakeNarrator{err: errors.New("quota exceeded")}, nil)

	_, _, err := svc.Text(context.Background(), 1, "2026-08-01", "2026-08-07")
	assert.Error(t, err)
}

func TestGeneratePersistsReport(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(weekRepo(), store, &fakeNarrator{text: "이번 주 리포트"}, nil)

	rep, err := svc.Generate(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)

	assert.Equal(t, int64(1), rep.ReportID)
	assert.Equal(t, "이번 주 리포트", rep.Narrative)
	assert.NotEmpty(t, rep.StatsJSON)
	require.Len(t, store.saved, 1)
}

// cacheSpy records cache traffic and serves one canned hit.
type cacheSpy struct {
	hit  *domain.ReportData
	gets int
	sets int
}

func (c *cacheSpy) Get(ctx context.Context, infantID int64, start, end string) (*domain.ReportData, bool) {
	c.gets++
	return c.hit, c.hit != nil
}

func (c *cacheSpy) Set(ctx context.Context, infantID int64, start, end string, data *domain.ReportData) {
	c.sets++
}

func TestComputeUsesCache(t *testing.T) {
	spy := &cacheSpy{}
	svc := NewService(weekRepo(), &fakeStore{}, nil, spy)

	first, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)
	assert.Equal(t, 1, spy.gets)
	assert.Equal(t, 1, spy.sets)

	spy.hit = first
	again, err := svc.Compute(context.Background(), 1, "2026-08-01", "2026-08-07")
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, spy.sets)
}
