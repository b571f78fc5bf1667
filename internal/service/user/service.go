// Package user exposes customer profiles and their history to admins.
package user

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/agent"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	List(ctx context.Context, limit, offset int) ([]domain.UserProfile, error)
	Count(ctx context.Context) (int, error)
}

type eventRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Event, error)
}

type messageRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.OutboundMessage, error)
}

type copywriter interface {
	GenerateText(ctx context.Context, profile domain.UserProfile, channel domain.Channel, tc agent.TextContext) string
	GrowthOpportunities(ctx context.Context, profile domain.UserProfile) []domain.GrowthOpportunity
}

// Service provides read access to users and per-user agent tools.
type Service struct {
	log      *slog.Logger
	users    userRepo
	events   eventRepo
	messages messageRepo
	agent    copywriter
}

// NewService creates a new user service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	events eventRepo,
	messages messageRepo,
	agent copywriter,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		events:   events,
		messages: messages,
		agent:    agent,
	}
}
