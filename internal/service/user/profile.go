package user

import (
	"context"
	"fmt"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/agent"
)

// GetProfile returns the profile of userID.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return p, nil
}

// ListEvents returns all events of userID, newest first. An unknown user has
// an empty history.
func (s *Service) ListEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListMessages returns all messages of userID, newest first.
func (s *Service) ListMessages(ctx context.Context, userID string) ([]domain.OutboundMessage, error) {
	messages, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// List returns a page of users and the total count.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.UserProfile, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	users, err := s.users.List(ctx, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// GenerateText drafts message copy for a stored user.
func (s *Service) GenerateText(ctx context.Context, input GenerateTextInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	p, err := s.GetProfile(ctx, input.UserID)
	if err != nil {
		return "", err
	}
	return s.agent.GenerateText(ctx, *p, input.Channel, agent.TextContext{
		RecentViews:     input.RecentViews,
		PurchaseHistory: input.PurchaseHistory,
	}), nil
}

// GrowthOpportunities suggests up to three ways to raise the user's value.
func (s *Service) GrowthOpportunities(ctx context.Context, userID string) ([]domain.GrowthOpportunity, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.agent.GrowthOpportunities(ctx, *p), nil
}
