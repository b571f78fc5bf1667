// Package message implements outbound message persistence using PostgreSQL.
package message

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

const table = "messages"

var columns = []string{"id", "user_id", "message_type", "subject", "content", "status", "sent_at", "created_at"}

// Repo provides outbound message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new message repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts m and returns the stored row.
func (r *Repo) Create(ctx context.Context, m *domain.OutboundMessage) (*domain.OutboundMessage, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "message_type", "subject", "content", "status", "created_at").
		Values(m.UserID, string(m.Channel), m.Subject, m.Body, string(m.Status), m.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanMessage(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "message", m.UserID)
	}
	return got, nil
}

// GetByID returns a message by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.OutboundMessage, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	m, err := scanMessage(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "message", id)
	}
	return m, nil
}

// UpdateStatus sets the status of a message. sentAt is stored only when the
// row has no sent_at yet; pass nil to leave it unchanged.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus, sentAt *time.Time) (*domain.OutboundMessage, error) {
	b := postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	if sentAt != nil {
		b = b.Set("sent_at", sq.Expr("COALESCE(sent_at, ?)", *sentAt))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	m, err := scanMessage(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "message", id)
	}
	return m, nil
}

// ListByUser returns all messages of userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.OutboundMessage, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC"), userID)
}

// ListRecent returns the latest messages of all users, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.OutboundMessage, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)), "recent")
}

// CountSince returns how many messages were created for userID after since.
func (r *Repo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"created_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "message", userID)
	}
	return n, nil
}

// Count returns the total number of messages and how many of them are pending.
func (r *Repo) Count(ctx context.Context) (total, pending int, err error) {
	err = postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*), count(*) FILTER (WHERE status = 'pending') FROM messages`).
		Scan(&total, &pending)
	if err != nil {
		return 0, 0, postgres.MapError(err, "message", "count")
	}
	return total, pending, nil
}

func (r *Repo) list(ctx context.Context, b sq.SelectBuilder, key string) ([]domain.OutboundMessage, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "message", key)
	}
	defer rows.Close()

	msgs := make([]domain.OutboundMessage, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, postgres.MapError(err, "message", key)
		}
		msgs = append(msgs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "message", key)
	}
	return msgs, nil
}

func scanMessage(row pgx.Row) (*domain.OutboundMessage, error) {
	var (
		m       domain.OutboundMessage
		channel string
		status  string
	)
	err := row.Scan(&m.ID, &m.UserID, &channel, &m.Subject, &m.Body, &status, &m.SentAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Channel = domain.Channel(channel)
	m.Status = domain.MessageStatus(status)
	return &m, nil
}
