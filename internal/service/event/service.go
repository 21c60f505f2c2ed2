// Package event ingests classifier-reported cry events, normalizing the
// model's loose labels into the closed domain enums before persistence.
package event

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Sentinel errors for the event service layer.
var (
	ErrMissingInfant = errors.New("infant_id is required")
	ErrMissingReason = errors.New("reason is required")
)

// Repository defines the data access contract for cry events.
type Repository interface {
	// Create inserts a cry event and returns its ID.
	Create(ctx context.Context, e *domain.CryEvent) (int64, error)
}

// Service persists classifier callbacks as cry events.
type Service struct {
	repo Repository
}

// NewService creates an event service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IngestInput is the classifier's callback payload. Duration arrives in
// seconds; Timestamp may be empty, meaning "now".
type IngestInput struct {
	InfantID        int64    `json:"infant_id"`
	Reason          string   `json:"reason"`
	Severity        string   `json:"severity"`
	Confidence      *float64 `json:"confidence"`
	DurationSeconds *float64 `json:"duration"`
	Timestamp       string   `json:"timestamp"`
}

// Ingest normalizes and stores one classifier result. Unknown cry labels
// map to discomfort, severity defaults to Medium, and durations convert
// from seconds to milliseconds.
func (s *Service) Ingest(ctx context.Context, input IngestInput) (*domain.CryEvent, error) {
	if input.InfantID == 0 {
		return nil, ErrMissingInfant
	}
	if input.Reason == "" {
		return nil, ErrMissingReason
	}

	cryType := domain.NormalizeCryType(input.Reason)
	severity := domain.NormalizeSeverity(input.Severity)
	log.Printf("[event.Service] mapping: %s -> %s, %s -> %s", input.Reason, cryType, input.Severity, severity)

	eventTime := time.Now()
	if input.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, input.Timestamp); err == nil {
			eventTime = t
		}
	}

	var durationMs *int64
	if input.DurationSeconds != nil {
		ms := int64(*input.DurationSeconds * 1000)
		durationMs = &ms
	}

	e := &domain.CryEvent{
		InfantID:   input.InfantID,
		EventTime:  eventTime,
		DurationMs: durationMs,
		Confidence: input.Confidence,
		Severity:   severity,
		CryType:    cryType,
		DetectedBy: "AI_MODEL",
		IsResolved: "N",
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	e.EventID = id
	return e, nil
}
