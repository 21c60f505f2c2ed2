package report

import (
	"fmt"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// longDurationThresholdSecs is the average cry duration above which the
// long-duration warning fires.
const longDurationThresholdSecs = 120

// cryTypeRecommendations maps each cry type to the caregiver tip attached
// to the dominant-cry-type insight.
var cryTypeRecommendations = map[domain.CryType]string{
	domain.CryHungry:     "수유 간격을 일정하게 유지하고, 울기 전 배고픔 신호(입 오물거림, 손 빨기)를 살펴보세요.",
	domain.CryTired:      "졸음 신호가 보이면 조용하고 어두운 환경에서 재우는 루틴을 만들어 보세요.",
	domain.CryDiscomfort: "기저귀 상태와 옷차림, 눕힌 자세를 먼저 점검해 보세요.",
	domain.CryBellyPain:  "수유 후 트림을 충분히 시키고, 배를 시계 방향으로 부드럽게 마사지해 보세요.",
	domain.CryColdHot:    "실내 온도를 22~24도로 유지하고 손발 온도로 체온을 확인해 보세요.",
	domain.CryBurping:    "수유 중간과 수유 후에 세워 안고 등을 토닥여 트림을 시켜 주세요.",
	domain.CryEmotional:  "아이와 눈을 맞추고 안아주며 차분한 목소리로 말을 걸어 주세요.",
}

// deriveInsights applies the fixed insight rules, in order, over a fully
// computed report. Each rule fires independently.
func deriveInsights(data *domain.ReportData) []domain.Insight {
	insights := []domain.Insight{}

	// 1. dominant cry type with a type-specific recommendation
	if len(data.ByCryType) > 0 {
		top := data.ByCryType[0]
		rec := cryTypeRecommendations[top.CryType]
		if rec == "" {
			rec = "아이의 상태를 주기적으로 살펴봐 주세요."
		}
		insights = append(insights, domain.Insight{
			Type:  "dominant_cry_type",
			Level: "info",
			Message: fmt.Sprintf("가장 잦은 울음 원인은 %s(%s%%)입니다. %s",
				top.CryType, top.Percentage, rec),
		})
	}

	// 2. peak hour
	peakHour, peakCount := -1, 0
	for _, h := range data.ByHour {
		if h.Count > peakCount {
			peakHour, peakCount = h.Hour, h.Count
		}
	}
	if peakCount > 0 {
		insights = append(insights, domain.Insight{
			Type:  "peak_hour",
			Level: "info",
			Message: fmt.Sprintf("%d시에 울음이 가장 잦았습니다(%d회). 이 시간대 전후의 수유와 수면 패턴을 살펴보세요.",
				peakHour, peakCount),
		})
	}

	// 3. high-severity presence
	for _, sv := range data.BySeverity {
		if sv.Severity == domain.SeverityHigh && sv.Count > 0 {
			insights = append(insights, domain.Insight{
				Type:  "high_severity",
				Level: "warning",
				Message: fmt.Sprintf("심한 울음이 %d회 있었습니다. 반복되면 소아과 상담을 고려해 보세요.",
					sv.Count),
			})
			break
		}
	}

	// 4. long average duration
	if data.Summary.AvgDurationSecs > longDurationThresholdSecs {
		insights = append(insights, domain.Insight{
			Type:  "long_duration",
			Level: "warning",
			Message: fmt.Sprintf("평균 울음 지속 시간이 %s로 긴 편입니다. 달래기 전 원인 확인에 시간을 더 써 보세요.",
				data.Summary.AvgDurationText),
		})
	}

	// 5. most effective action
	if len(data.TopActions) > 0 {
		best := data.TopActions[0]
		for _, a := range data.TopActions[1:] {
			if a.Effectiveness > best.Effectiveness {
				best = a
			}
		}
		insights = append(insights, domain.Insight{
			Type:  "effective_action",
			Level: "success",
			Message: fmt.Sprintf("'%s' 조치가 가장 효과적이었습니다. 비슷한 상황에서 먼저 시도해 보세요.",
				best.ActionDetail),
		})
	}

	return insights
}
