package domain

import "time"

// NotificationStatus is the terminal state of one guardian-alert attempt.
type NotificationStatus string

const (
	// NotificationSent means the SMS provider accepted the message.
	NotificationSent NotificationStatus = "sent"
	// NotificationFailed means the provider reported a non-success
	// result without raising a structured error.
	NotificationFailed NotificationStatus = "failed"
	// NotificationNoPhone means the guardian had no usable phone number;
	// the provider was never called.
	NotificationNoPhone NotificationStatus = "no_phone"
	// NotificationUnverifiedNumber maps provider error 21608 (trial
	// accounts can only message verified numbers).
	NotificationUnverifiedNumber NotificationStatus = "unverified_number"
	// NotificationInvalidNumber maps provider error 21211.
	NotificationInvalidNumber NotificationStatus = "invalid_number"
	// NotificationError covers every other provider failure.
	NotificationError NotificationStatus = "error"
)

// NotificationLog is the append-only audit row written for every alert
// attempt whose guardian was resolvable. Exactly one row per attempt.
type NotificationLog struct {
	NotificationID int64              `json:"notificationId" db:"notification_id"`
	EventID        int64              `json:"eventId" db:"event_id"`
	GuardianID     int64              `json:"guardianId" db:"guardian_id"`
	Channel        string             `json:"channel" db:"channel"`
	SentAt         time.Time          `json:"sentAt" db:"sent_at"`
	Status         NotificationStatus `json:"status" db:"status"`
	ProviderMsgID  string             `json:"providerMsgId" db:"provider_msg_id"`
	LatencyMs      int64              `json:"latencyMs" db:"latency_ms"`
	ActionText     string             `json:"actionText" db:"action_text"`
}
