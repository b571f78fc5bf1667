// Package event ingests shop events and turns them into engagement decisions.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/config"
	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetOrCreate(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, bool, error)
}

type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	ListRecent(ctx context.Context, f domain.RecentEventFilter) ([]domain.Event, error)
}

type messageRepo interface {
	Create(ctx context.Context, m *domain.OutboundMessage) (*domain.OutboundMessage, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type decider interface {
	Decide(ctx context.Context, profile domain.UserProfile, event domain.Event, recent []domain.Event) domain.Decision
}

type notifier interface {
	Dispatch(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service records events and acts on the agent's decisions.
type Service struct {
	log      *slog.Logger
	cfg      config.AgentConfig
	tx       txManager
	users    userRepo
	events   eventRepo
	messages messageRepo
	agent    decider
	notifier notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewService creates a new event service.
func NewService(
	logger *slog.Logger,
	cfg config.AgentConfig,
	tx txManager,
	users userRepo,
	events eventRepo,
	messages messageRepo,
	agent decider,
	notifier notifier,
	m *metrics.Metrics,
) *Service {
	return &Service{
		log:      logger.With("service", "event"),
		cfg:      cfg,
		tx:       tx,
		users:    users,
		events:   events,
		messages: messages,
		agent:    agent,
		notifier: notifier,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}
