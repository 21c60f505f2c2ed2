package domain

import "time"

// ReportSummary is the headline numbers for a reporting window. Durations
// are in seconds; each also carries a human-readable Korean rendering.
type ReportSummary struct {
	TotalEvents       int     `json:"totalEvents"`
	TotalDurationSecs float64 `json:"totalDurationSeconds"`
	AvgDurationSecs   float64 `json:"avgDurationSeconds"`
	MinDurationSecs   float64 `json:"minDurationSeconds"`
	MaxDurationSecs   float64 `json:"maxDurationSeconds"`
	TotalDurationText string  `json:"totalDurationText"`
	AvgDurationText   string  `json:"avgDurationText"`
	AvgConfidence     float64 `json:"avgConfidence"`
}

// CryTypeCount is one row of the by-cry-type breakdown. Percentage is
// rendered to one decimal place, e.g. "66.7".
type CryTypeCount struct {
	CryType         CryType `json:"cryType"`
	Count           int     `json:"count"`
	Percentage      string  `json:"percentage"`
	AvgDurationSecs float64 `json:"avgDurationSeconds"`
	MinDurationSecs float64 `json:"minDurationSeconds"`
	MaxDurationSecs float64 `json:"maxDurationSeconds"`
}

// HourCount is one slot of the dense 24-entry by-hour breakdown.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayOfWeekCount is one row of the sparse by-day-of-week breakdown.
// Day is 0=Sunday..6=Saturday; DayName is the Korean weekday name.
type DayOfWeekCount struct {
	Day     int    `json:"day"`
	DayName string `json:"dayName"`
	Count   int    `json:"count"`
}

// SeverityCount is one row of the by-severity breakdown, ordered
// High, Medium, Low.
type SeverityCount struct {
	Severity        Severity `json:"severity"`
	Count           int      `json:"count"`
	Percentage      string   `json:"percentage"`
	AvgDurationSecs float64  `json:"avgDurationSeconds"`
}

// DailyCount is one day of the daily trend, ascending by date.
type DailyCount struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	Count             int     `json:"count"`
	TotalDurationSecs float64 `json:"totalDurationSeconds"`
	AvgDurationSecs   float64 `json:"avgDurationSeconds"`
}

// TopAction is one row of the top-actions breakdown: an action detail with
// its usage count and mean reward (success=5, partial=3, fail=1, other=0).
type TopAction struct {
	ActionDetail  string  `json:"actionDetail"`
	Count         int     `json:"count"`
	Effectiveness float64 `json:"effectiveness"`
}

// Prediction carries the latest next-cry prediction, if any. Confidence is
// "medium" when a prediction exists and "none" otherwise.
type Prediction struct {
	NextCryTime *time.Time `json:"nextCryTime"`
	Confidence  string     `json:"confidence"`
}

// Insight is one human-readable observation derived from the breakdowns.
type Insight struct {
	Type    string `json:"type"`
	Level   string `json:"level"` // info, warning, success
	Message string `json:"message"`
}

// ReportData is the full aggregation result for an infant over a closed
// [start, end] window.
type ReportData struct {
	InfantID    int64            `json:"infantId"`
	StartDate   string           `json:"startDate"` // YYYY-MM-DD
	EndDate     string           `json:"endDate"`
	Summary     ReportSummary    `json:"summary"`
	ByCryType   []CryTypeCount   `json:"byCryType"`
	ByHour      []HourCount      `json:"byHour"`
	ByDayOfWeek []DayOfWeekCount `json:"byDayOfWeek"`
	BySeverity  []SeverityCount  `json:"bySeverity"`
	DailyTrend  []DailyCount     `json:"dailyTrend"`
	TopActions  []TopAction      `json:"topActions"`
	Prediction  Prediction       `json:"prediction"`
	Insights    []Insight        `json:"insights"`
}

// Report is a persisted AI-narrated report document.
type Report struct {
	ReportID  int64     `json:"reportId" db:"report_id"`
	InfantID  int64     `json:"infantId" db:"infant_id"`
	StartDate string    `json:"startDate" db:"start_date"`
	EndDate   string    `json:"endDate" db:"end_date"`
	Narrative string    `json:"narrative" db:"narrative"`
	StatsJSON string    `json:"-" db:"stats_json"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// KoreanDayNames maps time.Weekday ordinals (0=Sunday) to Korean names.
var KoreanDayNames = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
