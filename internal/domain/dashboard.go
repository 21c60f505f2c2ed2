package domain

import "time"

// DashboardNotification is the notification slice of a dashboard row.
type DashboardNotification struct {
	NotificationID int64              `json:"notificationId"`
	SentAt         time.Time          `json:"sentAt"`
	Status         NotificationStatus `json:"status"`
	ActionText     string             `json:"actionText"`
}

// DashboardAction is one recorded action attached to a dashboard event.
type DashboardAction struct {
	ActionID     int64        `json:"actionId"`
	ActionDetail string       `json:"actionDetail"`
	Result       ActionResult `json:"result"`
	ExecutedAt   time.Time    `json:"executedAt"`
}

// DashboardEvent joins a cry event with its notification outcome and any
// caregiver actions, newest event first, actions oldest first.
type DashboardEvent struct {
	EventID      int64                  `json:"eventId"`
	EventTime    time.Time              `json:"eventTime"`
	CryType      CryType                `json:"cryType"`
	Severity     Severity               `json:"severity"`
	Confidence   *float64               `json:"confidence"`
	Notification *DashboardNotification `json:"notification"`
	Actions      []DashboardAction      `json:"actions"`
}
