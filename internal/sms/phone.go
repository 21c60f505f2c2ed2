package sms

import "strings"

// NormalizePhone converts a Korean phone number in any common local format
// to E.164. Returns "" when the input carries no digits at all.
//
//	"010-1234-5678"  → "+821012345678"
//	"821012345678"   → "+821012345678"
//	"+821012345678"  → "+821012345678"
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	trimmed := digits.String()
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "0") {
		return "+82" + trimmed[1:]
	}
	if strings.HasPrefix(trimmed, "82") {
		return "+" + trimmed
	}
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return trimmed
}
