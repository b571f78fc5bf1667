// Package dashboard assembles the admin overview.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

const (
	recentWindow = 24 * time.Hour
	recentLimit  = 10
)

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

type eventRepo interface {
	Count(ctx context.Context) (int, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]domain.Event, error)
}

type messageCounter interface {
	Count(ctx context.Context) (total, pending int, err error)
}

// Service computes dashboard statistics.
type Service struct {
	log      *slog.Logger
	users    userCounter
	events   eventRepo
	messages messageCounter
	now      func() time.Time
}

// NewService creates a new dashboard service.
func NewService(logger *slog.Logger, users userCounter, events eventRepo, messages messageCounter) *Service {
	return &Service{
		log:      logger.With("service", "dashboard"),
		users:    users,
		events:   events,
		messages: messages,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Stats returns totals and the latest events of the last day.
func (s *Service) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	events, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	total, pending, err := s.messages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	recent, err := s.events.ListSince(ctx, s.now().Add(-recentWindow), recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	if recent == nil {
		recent = []domain.Event{}
	}

	return &domain.DashboardStats{
		TotalUsers:      users,
		TotalEvents:     events,
		TotalMessages:   total,
		PendingMessages: pending,
		RecentEvents:    recent,
	}, nil
}
