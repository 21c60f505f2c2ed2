package action

import (
	"context"
	"math"
	"sort"

	"github.com/cradlewatch/cradlewatch/internal/domain"
)

// DefaultMinTrials is the minimum number of attempts an action group needs
// before it is eligible for ranking.
const DefaultMinTrials = 2

// Rank groups historical actions for a cry cause by exact detail text and
// scores each group by successRate * ln(1+trials), so a single lucky trial
// cannot outrank a consistently effective action. Groups with fewer than
// minTrials attempts are excluded entirely. An empty result is valid and
// means no prior data.
func (s *Service) Rank(ctx context.Context, cause domain.CryType, minTrials int) ([]domain.RankedAction, error) {
	if minTrials <= 0 {
		minTrials = DefaultMinTrials
	}

	outcomes, err := s.repo.OutcomesByCause(ctx, cause)
	if err != nil {
		return nil, err
	}
	return rankOutcomes(outcomes, minTrials), nil
}

func rankOutcomes(outcomes []Outcome, minTrials int) []domain.RankedAction {
	byDetail := map[string]*domain.RankedAction{}
	var order []string

	for _, o := range outcomes {
		g := byDetail[o.Detail]
		if g == nil {
			g = &domain.RankedAction{Detail: o.Detail}
			byDetail[o.Detail] = g
			order = append(order, o.Detail)
		}
		g.Trials++
		switch o.Result {
		case domain.ActionSuccess:
			g.Success++
		case domain.ActionPartial:
			g.Partial++
		case domain.ActionFail:
			g.Fail++
		}
	}

	var ranked []domain.RankedAction
	for _, detail := range order {
		g := byDetail[detail]
		if g.Trials < minTrials {
			continue
		}
		g.SuccessRate = float64(g.Success) / float64(g.Trials)
		g.Score = g.SuccessRate * math.Log(1+float64(g.Trials))
		ranked = append(ranked, *g)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
