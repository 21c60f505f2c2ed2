package report

import "errors"

// Sentinel errors for the report service layer.
var (
	ErrNotFound     = errors.New("report not found")
	ErrInvalidRange = errors.New("invalid date range")
)
