// Package event implements the append-only event log using PostgreSQL.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/engage-agent/internal/adapter/postgres"
	"github.com/heartmarshall/engage-agent/internal/domain"
)

const table = "events"

var columns = []string{"id", "user_id", "event_type", "product_id", "timestamp", "properties"}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create appends e and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	props := e.Properties
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "event_type", "product_id", "timestamp", "properties").
		Values(e.UserID, e.EventType, e.ProductID, e.Timestamp, raw).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanEvent(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "event", e.UserID)
	}
	return got, nil
}

// ListByUser returns all events of userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("timestamp DESC", "id DESC"), userID)
}

// ListRecent returns the user's events matching f, newest first.
func (r *Repo) ListRecent(ctx context.Context, f domain.RecentEventFilter) ([]domain.Event, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": f.UserID}).
		Where(sq.Gt{"timestamp": f.Since}).
		OrderBy("timestamp DESC", "id DESC").
		Limit(uint64(f.Limit))
	if f.ExcludeID != 0 {
		b = b.Where(sq.NotEq{"id": f.ExcludeID})
	}
	return r.list(ctx, b, f.UserID)
}

// ListSince returns events of all users newer than since, newest first.
func (r *Repo) ListSince(ctx context.Context, since time.Time, limit int) ([]domain.Event, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Gt{"timestamp": since}).
		OrderBy("timestamp DESC", "id DESC").
		Limit(uint64(limit)), "recent")
}

// Count returns the total number of events.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM events`).
		Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "event", "count")
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, b sq.SelectBuilder, key string) ([]domain.Event, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "event", key)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "event", key)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "event", key)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e   domain.Event
		raw []byte
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.EventType, &e.ProductID, &e.Timestamp, &raw); err != nil {
		return nil, err
	}
	e.Properties = map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e.Properties); err != nil {
			return nil, fmt.Errorf("unmarshal properties: %w", err)
		}
	}
	return &e, nil
}
