package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/pkg/logger"
	"github.com/cradlewatch/cradlewatch/internal/sms"
)

// Event is one classifier-reported cry the dispatcher alerts on.
type Event struct {
	EventID  int64
	InfantID int64
	Cause    domain.CryType
	Severity domain.Severity
}

// Dispatcher orchestrates the guardian alert for a single cry event:
// guardian resolution, AI action text with deterministic fallback, SMS
// transmission with per-error-class status mapping, and a durable audit
// row for every attempt past guardian resolution. Dispatch never returns
// an error: notification is a best-effort side effect and must not fail
// the classification callback that triggered it.
type Dispatcher struct {
	guardians GuardianResolver
	logs      LogStore
	ranker    Ranker
	textGen   TextGenerator
	sender    Sender
	minTrials int
}

// NewDispatcher creates a notification dispatcher. sender may be nil when
// SMS is disabled; every attempt then terminates as status "error" after
// phone resolution.
func NewDispatcher(guardians GuardianResolver, logs LogStore, ranker Ranker, textGen TextGenerator, sender Sender, minTrials int) *Dispatcher {
	return &Dispatcher{
		guardians: guardians,
		logs:      logs,
		ranker:    ranker,
		textGen:   textGen,
		sender:    sender,
		minTrials: minTrials,
	}
}

// Dispatch runs the alert state machine for one event and returns the
// terminal status. An empty status means the guardian could not be
// resolved and nothing was logged.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) domain.NotificationStatus {
	info, err := d.guardians.InfantGuardian(ctx, ev.InfantID)
	if err != nil {
		// Nothing to key an audit row to: the guardian itself is unknown.
		logger.Warn("notification skipped, guardian lookup failed",
			"infantId", ev.InfantID, "eventId", ev.EventID, "error", err.Error())
		return ""
	}

	ranked, err := d.ranker.Rank(ctx, ev.Cause, d.minTrials)
	if err != nil {
		logger.Warn("action ranking failed, generating text without history",
			"eventId", ev.EventID, "error", err.Error())
		ranked = nil
	}
	actionText := d.textGen.ActionText(ctx, ev.Cause, info.InfantName, ev.Severity, ranked)
	body := buildSMSBody(info.InfantName, ev.Cause, actionText)

	phone := sms.NormalizePhone(info.Phone)
	if phone == "" {
		logger.Warn("guardian has no usable phone, skipping SMS",
			"guardianId", info.GuardianID, "eventId", ev.EventID)
		d.saveLog(ctx, ev, info.GuardianID, domain.NotificationNoPhone, "", 0, actionText)
		return domain.NotificationNoPhone
	}

	status := domain.NotificationError
	providerMsgID := ""
	start := time.Now()
	if d.sender == nil {
		logger.Warn("sms sender not configured", "eventId", ev.EventID)
	} else if result, sendErr := d.sender.Send(ctx, phone, body); sendErr != nil {
		var perr *sms.ProviderError
		if errors.As(sendErr, &perr) {
			switch perr.Code {
			case 21608:
				status = domain.NotificationUnverifiedNumber
			case 21211:
				status = domain.NotificationInvalidNumber
			}
		}
		logger.Error("sms send failed",
			"eventId", ev.EventID, "phone", phone, "status", string(status), "error", sendErr.Error())
	} else if result.Success {
		status = domain.NotificationSent
		providerMsgID = result.MessageID
	} else {
		status = domain.NotificationFailed
	}
	latency := time.Since(start).Milliseconds()

	d.saveLog(ctx, ev, info.GuardianID, status, providerMsgID, latency, actionText)
	return status
}

func (d *Dispatcher) saveLog(ctx context.Context, ev Event, guardianID int64, status domain.NotificationStatus, providerMsgID string, latencyMs int64, actionText string) {
	n := &domain.NotificationLog{
		EventID:       ev.EventID,
		GuardianID:    guardianID,
		Channel:       "sms",
		SentAt:        time.Now(),
		Status:        status,
		ProviderMsgID: providerMsgID,
		LatencyMs:     latencyMs,
		ActionText:    actionText,
	}
	if _, err := d.logs.Save(ctx, n); err != nil {
		logger.Error("notification log save failed",
			"eventId", ev.EventID, "status", string(status), "error", err.Error())
	}
}

// buildSMSBody assembles the guardian-facing message text.
func buildSMSBody(infantName string, cause domain.CryType, actionText string) string {
	return fmt.Sprintf("[알림] 아이(%s)가 지금 울고 있어요.\n울음 원인 추정: %s\n추천 조치: %s",
		infantName, cause.KoreanDescription(), actionText)
}
