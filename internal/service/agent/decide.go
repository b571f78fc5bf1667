package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
)

// eventView is the event as the decision prompt presents it.
type eventView struct {
	UserID     string         `json:"user_id"`
	Event      string         `json:"event"`
	ProductID  *string        `json:"product_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties"`
}

// Decide asks whether the user should be contacted after event. recent holds
// earlier events of the last window, newest first. A non-JSON answer becomes
// a negative decision carrying the answer as reasoning.
func (s *Service) Decide(ctx context.Context, profile domain.UserProfile, event domain.Event, recent []domain.Event) domain.Decision {
	if recent == nil {
		recent = []domain.Event{}
	}
	props := event.Properties
	if props == nil {
		props = map[string]any{}
	}

	text := prompt.Render(s.templates.GetTemplate(ctx, domain.PromptDecisionAgent), map[string]string{
		"user_profile": toJSON(profile),
		"event": toJSON(eventView{
			UserID:     event.UserID,
			Event:      event.EventType,
			ProductID:  event.ProductID,
			Timestamp:  event.Timestamp,
			Properties: props,
		}),
		"recent_activity": toJSON(recent),
	})

	res := s.llm.Complete(ctx, systemDecision, text)
	logResult(ctx, s.log, "decide", res)

	if !res.Structured() {
		return domain.Decision{ShouldEngage: false, Reasoning: res.Text}
	}

	var d domain.Decision
	if err := res.Decode(&d); err != nil {
		s.log.WarnContext(ctx, "undecodable decision, not engaging",
			slog.String("user_id", profile.UserID),
			slog.String("error", err.Error()),
		)
		return domain.Decision{ShouldEngage: false, Reasoning: toJSON(res.Fields)}
	}
	return d
}
