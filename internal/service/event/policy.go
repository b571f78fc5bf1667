package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

const policyReasoning = "Контакт-политика: лимит сообщений за последний час исчерпан"

// applyPolicy caps how often a user is contacted. It returns the decision to
// act on and whether the agent's own decision was suppressed. VIP users are
// never capped.
func (s *Service) applyPolicy(ctx context.Context, profile domain.UserProfile, d domain.Decision) (domain.Decision, bool, error) {
	if !s.cfg.EnforceContactPolicy || !d.Engages() {
		return d, false, nil
	}
	if profile.IsVIP(s.cfg.VIPThreshold()) {
		return d, false, nil
	}

	sent, err := s.messages.CountSince(ctx, profile.UserID, s.now().Add(-time.Hour))
	if err != nil {
		return d, false, fmt.Errorf("count recent messages: %w", err)
	}
	if sent < s.cfg.MaxMessagesPerHour {
		return d, false, nil
	}

	s.log.InfoContext(ctx, "decision suppressed by contact policy",
		slog.String("user_id", profile.UserID),
		slog.Int("sent_last_hour", sent),
		slog.String("channel", string(d.Action.Type)),
		slog.String("reasoning", d.Reasoning),
	)
	return domain.Decision{ShouldEngage: false, Reasoning: policyReasoning}, true, nil
}
