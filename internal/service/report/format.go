package report

import (
	"fmt"
	"strings"
)

// FormatDurationKorean renders a duration in seconds as Korean text,
// e.g. "1시간 30분 5초". Zero-valued units are omitted; a zero or
// negative duration renders as "0초".
func FormatDurationKorean(totalSeconds float64) string {
	secs := int64(totalSeconds)
	if secs <= 0 {
		return "0초"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d시간", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d분", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d초", seconds))
	}
	if len(parts) == 0 {
		return "0초"
	}
	return strings.Join(parts, " ")
}

// FormatPercent renders a count as a percentage of total to one decimal
// place, e.g. "66.7". Returns "0" when total is zero.
func FormatPercent(count, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(count)*100/float64(total))
}
