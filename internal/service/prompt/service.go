// Package prompt stores the prompt templates the agent renders and resolves
// them by name with built-in fallbacks.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// promptRepo defines the persistence the template store needs.
type promptRepo interface {
	GetActiveByName(ctx context.Context, name string) (*domain.PromptTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.PromptTemplate, error)
	List(ctx context.Context) ([]domain.PromptTemplate, error)
	Create(ctx context.Context, p *domain.PromptTemplate) (*domain.PromptTemplate, error)
	Update(ctx context.Context, id int64, p *domain.PromptTemplate, now time.Time) (*domain.PromptTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements template lookup and admin CRUD.
type Service struct {
	log     *slog.Logger
	prompts promptRepo
	now     func() time.Time
}

// NewService creates a new prompt service.
func NewService(logger *slog.Logger, prompts promptRepo) *Service {
	return &Service{
		log:     logger.With("service", "prompt"),
		prompts: prompts,
		now:     time.Now,
	}
}

// GetTemplate returns the active stored template for name, else the built-in
// default, else "". Storage failures are logged and treated as a miss.
func (s *Service) GetTemplate(ctx context.Context, name string) string {
	p, err := s.prompts.GetActiveByName(ctx, name)
	switch {
	case err == nil:
		return p.Template
	case errors.Is(err, domain.ErrNotFound):
	default:
		s.log.WarnContext(ctx, "template lookup failed, using default",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
	return DefaultTemplate(name)
}

// List returns all stored templates, newest first.
func (s *Service) List(ctx context.Context) ([]domain.PromptTemplate, error) {
	prompts, err := s.prompts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("prompt.List: %w", err)
	}
	return prompts, nil
}

// Get returns a stored template by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.PromptTemplate, error) {
	p, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("prompt.Get: %w", err)
	}
	return p, nil
}

// Create stores a new template. A taken name yields domain.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, input SaveInput) (*domain.PromptTemplate, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p, err := s.prompts.Create(ctx, &domain.PromptTemplate{
		Name:        input.Name,
		Template:    input.Template,
		Description: input.Description,
		IsActive:    input.active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt.Create: %w", err)
	}

	s.log.InfoContext(ctx, "prompt created", slog.Int64("prompt_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// Update overwrites template id.
func (s *Service) Update(ctx context.Context, id int64, input SaveInput) (*domain.PromptTemplate, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.prompts.Update(ctx, id, &domain.PromptTemplate{
		Name:        input.Name,
		Template:    input.Template,
		Description: input.Description,
		IsActive:    input.active(),
	}, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("prompt.Update: %w", err)
	}

	s.log.InfoContext(ctx, "prompt updated", slog.Int64("prompt_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// Delete removes template id. Lookups for its name fall back to defaults.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.prompts.Delete(ctx, id); err != nil {
		return fmt.Errorf("prompt.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "prompt deleted", slog.Int64("prompt_id", id))
	return nil
}
