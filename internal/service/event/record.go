package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// Decision outcomes as counted in metrics.
const (
	outcomeEngage     = "engage"
	outcomeSkip       = "skip"
	outcomeSuppressed = "suppressed"
)

// RecordEvent stores the event, creating the user on first sight, asks the
// agent whether to engage and stores a pending message when it does.
func (s *Service) RecordEvent(ctx context.Context, input RecordInput) (*Outcome, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		profile domain.UserProfile
		stored  domain.Event
	)

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, created, err := s.users.GetOrCreate(txCtx, domain.NewUserProfile(strings.TrimSpace(input.UserID), now))
		if err != nil {
			return fmt.Errorf("get or create user: %w", err)
		}
		if created {
			s.log.InfoContext(ctx, "user created", slog.String("user_id", p.UserID))
		}
		profile = *p

		e, err := s.events.Create(txCtx, &domain.Event{
			UserID:     profile.UserID,
			EventType:  strings.TrimSpace(input.Event),
			ProductID:  input.ProductID,
			Timestamp:  input.Timestamp.UTC(),
			Properties: input.Properties,
		})
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		stored = *e
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recent, err := s.events.ListRecent(ctx, domain.RecentEventFilter{
		UserID:    profile.UserID,
		Since:     now.Add(-s.cfg.RecentWindow),
		ExcludeID: stored.ID,
		Limit:     s.cfg.RecentLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}

	decision, suppressed, err := s.applyPolicy(ctx, profile, s.agent.Decide(ctx, profile, stored, recent))
	if err != nil {
		return nil, err
	}

	out := &Outcome{Decision: decision}
	switch {
	case suppressed:
		s.countDecision(outcomeSuppressed)
	case !decision.Engages():
		s.countDecision(outcomeSkip)
	default:
		s.countDecision(outcomeEngage)
		id, err := s.storeMessage(ctx, profile, decision.Action, now)
		if err != nil {
			return nil, err
		}
		out.MessageID = id
	}

	s.log.InfoContext(ctx, "event processed",
		slog.String("user_id", profile.UserID),
		slog.Int64("event_id", stored.ID),
		slog.String("event", stored.EventType),
		slog.Bool("should_engage", decision.ShouldEngage),
	)
	return out, nil
}

// storeMessage persists the action as a pending message and dispatches it.
// Unknown channels are skipped; a failed dispatch leaves the message pending.
func (s *Service) storeMessage(ctx context.Context, profile domain.UserProfile, a *domain.Action, now time.Time) (*int64, error) {
	if !a.Type.IsValid() {
		s.log.WarnContext(ctx, "unknown action type, message not stored",
			slog.String("user_id", profile.UserID),
			slog.String("type", string(a.Type)),
		)
		return nil, nil
	}

	var subject *string
	if a.Subject != "" {
		subject = &a.Subject
	}

	msg, err := s.messages.Create(ctx, &domain.OutboundMessage{
		UserID:    profile.UserID,
		Channel:   a.Type,
		Subject:   subject,
		Body:      a.Body,
		Status:    domain.MessageStatusPending,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if s.metrics != nil {
		s.metrics.MessagesCreated.WithLabelValues(string(msg.Channel)).Inc()
	}

	if err := s.notifier.Dispatch(ctx, profile, *msg); err != nil {
		s.log.WarnContext(ctx, "dispatch failed",
			slog.Int64("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
	}
	return &msg.ID, nil
}

func (s *Service) countDecision(outcome string) {
	if s.metrics != nil {
		s.metrics.Decisions.WithLabelValues(outcome).Inc()
	}
}
