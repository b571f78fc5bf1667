// Package prompt implements prompt template persistence using PostgreSQL.
package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/engage-agent/internal/adapter/postgres"
	"github.com/heartmarshall/engage-agent/internal/domain"
)

const table = "prompts"

var columns = []string{"id", "name", "template", "description", "is_active", "created_at", "updated_at"}

// Repo provides prompt template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new prompt repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetActiveByName returns the most recently updated active template named name.
func (r *Repo) GetActiveByName(ctx context.Context, name string) (*domain.PromptTemplate, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"name": name, "is_active": true}).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p, err := scanPrompt(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "prompt", name)
	}
	return p, nil
}

// GetByID returns a template by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.PromptTemplate, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p, err := scanPrompt(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "prompt", id)
	}
	return p, nil
}

// List returns all templates, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.PromptTemplate, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "prompt", "list")
	}
	defer rows.Close()

	prompts := make([]domain.PromptTemplate, 0)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, postgres.MapError(err, "prompt", "list")
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "prompt", "list")
	}
	return prompts, nil
}

// Create inserts p. A duplicate name maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p *domain.PromptTemplate) (*domain.PromptTemplate, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("name", "template", "description", "is_active", "created_at", "updated_at").
		Values(p.Name, p.Template, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanPrompt(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "prompt", p.Name)
	}
	return got, nil
}

// Update overwrites the editable fields of template id.
func (r *Repo) Update(ctx context.Context, id int64, p *domain.PromptTemplate, now time.Time) (*domain.PromptTemplate, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("name", p.Name).
		Set("template", p.Template).
		Set("description", p.Description).
		Set("is_active", p.IsActive).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanPrompt(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "prompt", id)
	}
	return got, nil
}

// Delete removes template id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "prompt", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "prompt", id)
	}
	return nil
}

func scanPrompt(row pgx.Row) (*domain.PromptTemplate, error) {
	var p domain.PromptTemplate
	err := row.Scan(&p.ID, &p.Name, &p.Template, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
