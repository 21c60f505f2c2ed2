package api

import (
	"context"

	"github.com/cradlewatch/cradlewatch/internal/ai"
	"github.com/cradlewatch/cradlewatch/internal/auth"
	"github.com/cradlewatch/cradlewatch/internal/cache"
	"github.com/cradlewatch/cradlewatch/internal/service/action"
	"github.com/cradlewatch/cradlewatch/internal/service/event"
	"github.com/cradlewatch/cradlewatch/internal/service/infant"
	"github.com/cradlewatch/cradlewatch/internal/service/notify"
	"github.com/cradlewatch/cradlewatch/internal/service/report"
)

// ChatAssistant answers a guardian message with the prior conversation
// replayed as context.
type ChatAssistant interface {
	ChatReply(ctx context.Context, history []ai.ChatTurn, message string) (string, error)
}

// Handlers bundles all HTTP handlers with their service dependencies.
type Handlers struct {
	reports    *report.Service
	actions    *action.Service
	events     *event.Service
	infants    *infant.Service
	authSvc    *auth.Service
	dispatcher *notify.Dispatcher
	chat       ChatAssistant
	dedup      *cache.Dedup
	health     *HealthChecker

	// defaultDays is the report window used when no start/end query
	// params are supplied.
	defaultDays int
}

// NewHandlers creates the handler set. dedup may be nil when Redis is
// disabled; duplicate classifier callbacks are then processed twice.
func NewHandlers(
	reports *report.Service,
	actions *action.Service,
	events *event.Service,
	infants *infant.Service,
	authSvc *auth.Service,
	dispatcher *notify.Dispatcher,
	chat ChatAssistant,
	dedup *cache.Dedup,
	health *HealthChecker,
	defaultDays int,
) *Handlers {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &Handlers{
		reports:     reports,
		actions:     actions,
		events:      events,
		infants:     infants,
		authSvc:     authSvc,
		dispatcher:  dispatcher,
		chat:        chat,
		dedup:       dedup,
		health:      health,
		defaultDays: defaultDays,
	}
}
