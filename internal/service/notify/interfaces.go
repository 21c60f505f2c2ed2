package notify

import (
	"context"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/sms"
)

// GuardianInfo is the resolved contact the dispatcher alerts for an event.
type GuardianInfo struct {
	InfantName string
	GuardianID int64
	Phone      string
}

// GuardianResolver looks up the infant's guardian and contact details.
type GuardianResolver interface {
	// InfantGuardian returns the guardian for an infant, or an error when
	// the infant or its guardian cannot be resolved.
	InfantGuardian(ctx context.Context, infantID int64) (*GuardianInfo, error)
}

// LogStore persists notification audit rows.
type LogStore interface {
	Save(ctx context.Context, n *domain.NotificationLog) (int64, error)
}

// Sender delivers an SMS to an E.164 number. Structured provider
// rejections come back as *sms.ProviderError.
type Sender interface {
	Send(ctx context.Context, to, body string) (*sms.SendResult, error)
}

// Ranker returns historically effective actions for a cry cause.
type Ranker interface {
	Rank(ctx context.Context, cause domain.CryType, minTrials int) ([]domain.RankedAction, error)
}

// TextGenerator produces the recommendation sentence for the SMS body.
// Implementations must not fail: when generation is impossible they return
// deterministic fallback text built from the cause and severity.
type TextGenerator interface {
	ActionText(ctx context.Context, cause domain.CryType, infantName string, severity domain.Severity, ranked []domain.RankedAction) string
}
