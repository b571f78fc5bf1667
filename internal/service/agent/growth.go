package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

const maxOpportunities = 3

const growthPrompt = `Ты — аналитик по увеличению LTV.

Данные клиента:
%s

Найди 3 точки роста. Ответь JSON:
{
  "growth_opportunities": [
    {
      "type": "cross-sell/upsell/reactivation/etc",
      "reason": "почему",
      "suggestion": "что предложить",
      "expected_ltv_increase": 15
    }
  ],
  "priority_order": ["type1", "type2", "type3"]
}`

// GrowthOpportunities asks for up to three ranked ways to raise the user's
// lifetime value. Items that do not decode are skipped.
func (s *Service) GrowthOpportunities(ctx context.Context, profile domain.UserProfile) []domain.GrowthOpportunity {
	res := s.llm.Complete(ctx, systemAnalyst, fmt.Sprintf(growthPrompt, toJSON(profile)))
	logResult(ctx, s.log, "growth_opportunities", res)

	out := make([]domain.GrowthOpportunity, 0, maxOpportunities)
	if !res.Structured() {
		return out
	}

	var payload struct {
		Opportunities []json.RawMessage `json:"growth_opportunities"`
	}
	if err := res.Decode(&payload); err != nil {
		return out
	}

	for _, raw := range payload.Opportunities {
		if len(out) == maxOpportunities {
			break
		}
		var g domain.GrowthOpportunity
		if err := json.Unmarshal(raw, &g); err != nil {
			continue
		}
		out = append(out, g)
	}
	return out
}
