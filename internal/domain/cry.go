package domain

import (
	"strings"
	"time"
)

// CryType enumerates the causes the audio classifier can assign to a cry.
// The set is closed: lookup tables keyed by CryType (Korean labels, insight
// recommendations) switch exhaustively over these values, so adding a type
// is a single point of change.
type CryType string

const (
	CryHungry     CryType = "hungry"
	CryTired      CryType = "tired"
	CryDiscomfort CryType = "discomfort"
	CryBellyPain  CryType = "belly_pain"
	CryColdHot    CryType = "cold_hot"
	CryBurping    CryType = "burping"
	CryEmotional  CryType = "emotional"
)

// AllCryTypes returns every known cry type, in classifier order.
func AllCryTypes() []CryType {
	return []CryType{
		CryHungry, CryTired, CryDiscomfort, CryBellyPain,
		CryColdHot, CryBurping, CryEmotional,
	}
}

// Valid reports whether t is one of the closed cry types.
func (t CryType) Valid() bool {
	switch t {
	case CryHungry, CryTired, CryDiscomfort, CryBellyPain,
		CryColdHot, CryBurping, CryEmotional:
		return true
	}
	return false
}

// cryTypeAliases maps the classifier's loose output labels onto the closed
// set. Unknown labels fall back to discomfort.
var cryTypeAliases = map[string]CryType{
	"needs_attention": CryDiscomfort,
	"pain":            CryBellyPain,
	"uncomfortable":   CryDiscomfort,
	"not_cry":         CryEmotional,
}

// NormalizeCryType maps a raw classifier label to a valid CryType.
// Matching is case-insensitive.
func NormalizeCryType(raw string) CryType {
	label := strings.ToLower(raw)
	if t := CryType(label); t.Valid() {
		return t
	}
	if t, ok := cryTypeAliases[label]; ok {
		return t
	}
	return CryDiscomfort
}

// KoreanDescription returns the short Korean sentence used in SMS bodies and
// AI prompts to describe the estimated cause.
func (t CryType) KoreanDescription() string {
	switch t {
	case CryHungry:
		return "배고픈 것으로 보입니다."
	case CryBurping:
		return "트림이 필요해 보입니다."
	case CryBellyPain:
		return "배 통증이 있는 것으로 보입니다."
	case CryColdHot:
		return "주변 온도(차갑거나 뜨거움)로 인한 것으로 보입니다."
	case CryDiscomfort:
		return "자세나 기저귀 등으로 불편한 것으로 보입니다."
	case CryEmotional:
		return "정서적 이유(불안, 외로움 등)로 보입니다."
	case CryTired:
		return "피곤하거나 졸린 것으로 보입니다."
	}
	return "원인을 정확히 파악하지 못했습니다."
}

// Severity is the ordinal urgency classification of a cry.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// NormalizeSeverity title-cases the classifier's severity label and defaults
// to Medium when the value is empty or unrecognized.
func NormalizeSeverity(raw string) Severity {
	switch {
	case raw == "":
		return SeverityMedium
	}
	switch Severity(upperFirst(raw)) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	}
	return SeverityMedium
}

// Rank orders severities High(0) > Medium(1) > Low(2) > other(3) for
// report sorting.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	}
	return 3
}

// Korean returns the Korean phrase for the severity, for prompts and SMS.
func (s Severity) Korean() string {
	switch s {
	case SeverityLow:
		return "약한 울음"
	case SeverityMedium:
		return "보통 정도의 울음"
	case SeverityHigh:
		return "심한 울음"
	}
	return "울음 강도 정보 없음"
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := 1; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// CryEvent is one detected crying episode. Rows are written once by the
// classifier callback and never mutated afterwards except is_resolved.
type CryEvent struct {
	EventID    int64     `json:"eventId" db:"event_id"`
	InfantID   int64     `json:"infantId" db:"infant_id"`
	EventTime  time.Time `json:"eventTime" db:"event_time"`
	DurationMs *int64    `json:"durationMs" db:"duration_ms"`
	Confidence *float64  `json:"confidence" db:"confidence"`
	Severity   Severity  `json:"severity" db:"severity"`
	CryType    CryType   `json:"cryType" db:"cry_type"`
	DetectedBy string    `json:"detectedBy" db:"detected_by"`
	IsResolved string    `json:"isResolved" db:"is_resolved"` // 'Y' or 'N'
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Guardian is the registered caregiver who owns one or more infants.
// Phone may be empty or malformed; normalization happens at use, not storage.
type Guardian struct {
	GuardianID   int64      `json:"guardianId" db:"guardian_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Phone        string     `json:"phone" db:"phone"`
	Status       string     `json:"status" db:"status"`
	LastLoginAt  *time.Time `json:"lastLoginAt" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// Infant is a monitored child, owned by exactly one guardian.
type Infant struct {
	InfantID   int64      `json:"infantId" db:"infant_id"`
	GuardianID int64      `json:"guardianId" db:"guardian_id"`
	Name       string     `json:"name" db:"name"`
	BirthDate  *time.Time `json:"birthDate" db:"birth_date"`
	Gender     string     `json:"gender" db:"gender"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// PatternAnalysis is an externally produced next-cry prediction. The backend
// only ever reads the most recent row per infant.
type PatternAnalysis struct {
	InfantID          int64      `json:"infantId" db:"infant_id"`
	PredictedNextTime *time.Time `json:"predictedNextTime" db:"predicted_next_time"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}
