package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/pkg/logger"
)

// ActionText generates the short Korean recommendation sentence sent to a
// guardian when their infant cries. The ranked action groups, when present,
// bias the suggestion toward what historically worked. This call can never
// hard-fail: any AI error falls back to a deterministic sentence built from
// the cause and severity, so the notification pipeline always has text.
func (c *Client) ActionText(ctx context.Context, cause domain.CryType, infantName string, severity domain.Severity, ranked []domain.RankedAction) string {
	causeKorean := cause.KoreanDescription()
	severityKo := severity.Korean()

	var sb strings.Builder
	sb.WriteString("너는 아기를 돌보는 보호자에게 간단한 조치 방법을 알려주는 도우미야.\n")
	sb.WriteString("다음 정보를 참고해서 한글로 1~2문장 정도의 짧은 조치 문장을 만들어줘.\n\n")
	fmt.Fprintf(&sb, "- 아이 이름: %s\n", infantName)
	fmt.Fprintf(&sb, "- 울음의 원인(추정): %s\n", causeKorean)
	fmt.Fprintf(&sb, "- 울음의 강도: %s\n", severityKo)
	if len(ranked) > 0 {
		sb.WriteString("- 과거에 효과가 있었던 조치(성공률 순):\n")
		for i, g := range ranked {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "  %d. %s (시도 %d회, 성공률 %.0f%%)\n", i+1, g.Detail, g.Trials, g.SuccessRate*100)
		}
	}
	sb.WriteString("\n문장은 공손하지만 너무 딱딱하지 않게 써줘.\n")

	text, err := c.Complete(ctx, "", sb.String())
	if err != nil {
		logger.Warn("action text generation failed, using fallback", "error", err.Error())
		return fallbackActionText(infantName, causeKorean, severityKo)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackActionText(infantName, causeKorean, severityKo)
	}
	return text
}

func fallbackActionText(infantName, causeKorean, severityKo string) string {
	return fmt.Sprintf(
		"%s의 상태를 확인하시고, %s 상황과 %s을(를) 고려해서 차분히 안아주고 주변 환경(기저귀, 온도, 수유 간격 등)을 점검해 주세요.",
		infantName, causeKorean, severityKo)
}
