package action

import "errors"

// Sentinel errors for the action service layer.
var (
	ErrNotFound      = errors.New("action not found")
	ErrMissingDetail = errors.New("actionDetail is required")
	ErrMissingEvent  = errors.New("eventId is required")
	ErrNoFields      = errors.New("no fields to update")
)
