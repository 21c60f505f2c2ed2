package domain

import "time"

// ActionResult records how a soothing action worked out.
type ActionResult string

const (
	ActionSuccess ActionResult = "success"
	ActionPartial ActionResult = "partial"
	ActionFail    ActionResult = "fail"
)

// RewardScore converts an action result into the reward used by the
// top-actions breakdown: success=5, partial=3, fail=1, anything else 0.
func (r ActionResult) RewardScore() int {
	switch r {
	case ActionSuccess:
		return 5
	case ActionPartial:
		return 3
	case ActionFail:
		return 1
	}
	return 0
}

// ActionLog is one caregiver-recorded soothing attempt, tied to a cry event.
// Result may be empty when the outcome is not yet known.
type ActionLog struct {
	ActionID     int64        `json:"actionId" db:"action_id"`
	EventID      int64        `json:"eventId" db:"event_id"`
	ActionDetail string       `json:"actionDetail" db:"action_detail"`
	Result       ActionResult `json:"result" db:"result"`
	ExecutedAt   time.Time    `json:"executedAt" db:"executed_at"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// ActionEmbedding is the vector representation of an action in its cry
// context. At most one embedding exists per action; edits to the action's
// detail or result replace the row.
type ActionEmbedding struct {
	EmbeddingID int64     `json:"embeddingId" db:"embedding_id"`
	ActionID    int64     `json:"actionId" db:"action_id"`
	ModelName   string    `json:"modelName" db:"model_name"`
	Vector      []float64 `json:"vector" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// RankedAction is one action-suggestion group: attempts sharing the exact
// same detail text for a given cry type, scored by successRate * ln(1+trials).
type RankedAction struct {
	Detail      string  `json:"detail"`
	Trials      int     `json:"trials"`
	Success     int     `json:"success"`
	Partial     int     `json:"partial"`
	Fail        int     `json:"fail"`
	SuccessRate float64 `json:"successRate"`
	Score       float64 `json:"score"`
}
