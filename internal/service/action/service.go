package action

import (
	"context"
	"fmt"
	"log"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Service implements caregiver-action business logic: recording, editing,
// and deleting actions, keeping each action's embedding in sync with its
// content, and ranking historical actions per cry cause.
type Service struct {
	repo     Repository
	embedder Embedder
}

// NewService creates an action service. embedder may be nil, in which case
// embedding maintenance is skipped.
func NewService(repo Repository, embedder Embedder) *Service {
	return &Service{repo: repo, embedder: embedder}
}

// CreateInput holds the fields for recording a new action.
type CreateInput struct {
	EventID      int64               `json:"eventId"`
	ActionDetail string              `json:"actionDetail"`
	Result       domain.ActionResult `json:"result"`
}

// Record validates and persists a new action, then generates its embedding.
// Embedding failure does not fail the record: the embedding is a disposable
// cache and recomputation is idempotent.
func (s *Service) Record(ctx context.Context, input CreateInput) (*domain.ActionLog, error) {
	if input.EventID == 0 {
		return nil, ErrMissingEvent
	}
	if input.ActionDetail == "" {
		return nil, ErrMissingDetail
	}

	a := &domain.ActionLog{
		EventID:      input.EventID,
		ActionDetail: input.ActionDetail,
		Result:       input.Result,
	}
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ActionID = id

	s.refreshEmbedding(ctx, id)
	return a, nil
}

// Update modifies an action's detail and/or result and regenerates its
// embedding, since the embedding is keyed by action content.
func (s *Service) Update(ctx context.Context, actionID int64, u UpdateFields) error {
	if u.ActionDetail == nil && u.Result == nil {
		return ErrNoFields
	}
	if err := s.repo.Update(ctx, actionID, u); err != nil {
		return err
	}
	s.refreshEmbedding(ctx, actionID)
	return nil
}

// Delete removes an action and its embedding.
func (s *Service) Delete(ctx context.Context, actionID int64) error {
	return s.repo.Delete(ctx, actionID)
}

// Dashboard returns the event+notification+action join view for an infant.
func (s *Service) Dashboard(ctx context.Context, infantID int64) ([]domain.DashboardEvent, error) {
	return s.repo.Dashboard(ctx, infantID)
}

// refreshEmbedding rebuilds the embedding for an action from its current
// content. Best-effort: failures are logged, never propagated.
func (s *Service) refreshEmbedding(ctx context.Context, actionID int64) {
	if s.embedder == nil {
		return
	}

	actx, err := s.repo.GetContext(ctx, actionID)
	if err != nil {
		log.Printf("[action.Service] Action %d: context lookup for embedding failed: %v", actionID, err)
		return
	}

	input := embeddingInput(actx)
	vector, err := s.embedder.Embed(ctx, input)
	if err != nil {
		log.Printf("[action.Service] Action %d: embedding generation failed: %v", actionID, err)
		return
	}

	if err := s.repo.ReplaceEmbedding(ctx, actionID, s.embedder.ModelName(), vector); err != nil {
		log.Printf("[action.Service] Action %d: embedding save failed: %v", actionID, err)
	}
}

// embeddingInput builds the text the embedding is computed over: cry
// context plus the action taken.
func embeddingInput(c *Context) string {
	cause := string(c.CryType)
	if cause == "" {
		cause = "unknown"
	}
	severity := string(c.Severity)
	if severity == "" {
		severity = "Unknown"
	}
	return fmt.Sprintf("원인: %s\n강도: %s\n조치: %s", cause, severity, c.Detail)
}
