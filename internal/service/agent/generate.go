package agent

import (
	"context"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
)

// TextContext is the extra material for message copy.
type TextContext struct {
	RecentViews     []string `json:"recent_views"`
	PurchaseHistory []string `json:"purchase_history"`
}

// GenerateText writes message copy for profile on channel. It returns the
// answer's "text" field, else its "content" field, else "".
func (s *Service) GenerateText(ctx context.Context, profile domain.UserProfile, channel domain.Channel, tc TextContext) string {
	name := profile.Name
	if name == "" {
		name = "Клиент"
	}
	segment := profile.Segment
	if segment == "" {
		segment = domain.SegmentNew
	}

	text := prompt.Render(s.templates.GetTemplate(ctx, domain.PromptTextGenerator), map[string]string{
		"name":             name,
		"interests":        toJSON(nonNil(profile.Interests)),
		"segment":          string(segment),
		"channel":          string(channel),
		"recent_views":     toJSON(nonNil(tc.RecentViews)),
		"purchase_history": toJSON(nonNil(tc.PurchaseHistory)),
	})

	res := s.llm.Complete(ctx, systemWriter, text)
	logResult(ctx, s.log, "generate_text", res)

	fields := res.Map()
	for _, key := range []string{"text", "content"} {
		if v, ok := fields[key].(string); ok {
			return v
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
