// Package message lets admins review outbound messages and record delivery.
package message

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// RecentLimit is how many messages the admin list shows.
const RecentLimit = 100

type messageRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.OutboundMessage, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus, sentAt *time.Time) (*domain.OutboundMessage, error)
	ListRecent(ctx context.Context, limit int) ([]domain.OutboundMessage, error)
}

// Service implements message review.
type Service struct {
	log      *slog.Logger
	messages messageRepo
	now      func() time.Time
}

// NewService creates a new message service.
func NewService(logger *slog.Logger, messages messageRepo) *Service {
	return &Service{
		log:      logger.With("service", "message"),
		messages: messages,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListRecent returns the newest messages across all users.
func (s *Service) ListRecent(ctx context.Context) ([]domain.OutboundMessage, error) {
	messages, err := s.messages.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// UpdateStatus moves message id to status. Sent and delivered stamp sent_at
// unless it is already set. Moves not allowed by the status lifecycle are
// conflicts; setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.OutboundMessage, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be pending, sent, delivered or failed")
	}

	current, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	if current.Status == status {
		return current, nil
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("message %d: %s -> %s: %w", id, current.Status, status, domain.ErrConflict)
	}

	var sentAt *time.Time
	if status == domain.MessageStatusSent || status == domain.MessageStatusDelivered {
		now := s.now()
		sentAt = &now
	}

	updated, err := s.messages.UpdateStatus(ctx, id, status, sentAt)
	if err != nil {
		return nil, fmt.Errorf("update message status: %w", err)
	}

	s.log.InfoContext(ctx, "message status changed",
		slog.Int64("message_id", id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(status)),
	)
	return updated, nil
}
