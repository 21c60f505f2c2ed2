package action

import (
	"context"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// Outcome is one historical action row joined to its event's cry type,
// raw input for the suggestion ranker.
type Outcome struct {
	Detail string
	Result domain.ActionResult
}

// Context is the cry context of one action, used to build its embedding
// input text.
type Context struct {
	Detail   string
	Result   domain.ActionResult
	CryType  domain.CryType
	Severity domain.Severity
}

// UpdateFields holds the mutable fields for an action update.
// Nil fields are not applied.
type UpdateFields struct {
	ActionDetail *string              `json:"actionDetail"`
	Result       *domain.ActionResult `json:"result"`
}

// Repository defines the data access contract for caregiver actions and
// their embeddings. Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new action and returns its ID.
	Create(ctx context.Context, a *domain.ActionLog) (int64, error)

	// Update modifies an action. Only non-nil fields are applied.
	// Returns ErrNotFound if the action doesn't exist.
	Update(ctx context.Context, actionID int64, u UpdateFields) error

	// Delete removes an action together with its embedding, atomically.
	// Returns ErrNotFound if the action doesn't exist.
	Delete(ctx context.Context, actionID int64) error

	// GetContext returns the action's detail and the cry context of its
	// event. Returns ErrNotFound if the action doesn't exist.
	GetContext(ctx context.Context, actionID int64) (*Context, error)

	// ReplaceEmbedding removes any existing embedding for the action and
	// inserts the new one, in a single transaction, so at most one
	// embedding ever exists per action.
	ReplaceEmbedding(ctx context.Context, actionID int64, modelName string, vector []float64) error

	// OutcomesByCause returns every action row whose event has the given
	// cry type.
	OutcomesByCause(ctx context.Context, cause domain.CryType) ([]Outcome, error)

	// Dashboard joins events, notifications, and actions for an infant,
	// newest event first.
	Dashboard(ctx context.Context, infantID int64) ([]domain.DashboardEvent, error)
}

// Embedder produces an embedding vector for a text input.
type Embedder interface {
	Embed(ctx context.Context, input string) ([]float64, error)
	ModelName() string
}
