package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

func TestCreateCryEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	eventTime := time.Date(2026, 8, 27, 3, 15, 0, 0, time.UTC)
	durationMs := int64(31500)
	confidence := 0.92

	mock.ExpectQuery(`INSERT INTO cry_event`).
		WithArgs(int64(7), eventTime, durationMs, confidence,
			"High", "hungry", "AI_MODEL", "N").
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(41)))

	id, err := NewEventRepo(db).Create(context.Background(), &domain.CryEvent{
		InfantID:   7,
		EventTime:  eventTime,
		DurationMs: &durationMs,
		Confidence: &confidence,
		Severity:   domain.SeverityHigh,
		CryType:    domain.CryHungry,
		DetectedBy: "AI_MODEL",
		IsResolved: "N",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCryEventNullsOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	eventTime := time.Date(2026, 8, 27, 3, 15, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO cry_event`).
		WithArgs(int64(7), eventTime, nil, nil,
			"Medium", "discomfort", "AI_MODEL", "N").
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(42)))

	id, err := NewEventRepo(db).Create(context.Background(), &domain.CryEvent{
		InfantID:   7,
		EventTime:  eventTime,
		Severity:   domain.SeverityMedium,
		CryType:    domain.CryDiscomfort,
		DetectedBy: "AI_MODEL",
		IsResolved: "N",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}
