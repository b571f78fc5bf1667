// Package user implements the customer profile repository using PostgreSQL.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/engage-agent/internal/adapter/postgres"
	"github.com/heartmarshall/engage-agent/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "user_id", "name", "email", "phone", "segment",
	"total_spent::text", "interests", "created_at", "updated_at",
}

// Repo provides user profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByUserID returns a profile by its external user id.
func (r *Repo) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	return u, nil
}

// GetOrCreate inserts p unless a profile with the same user id already
// exists. It returns the stored profile and whether it was created.
func (r *Repo) GetOrCreate(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, bool, error) {
	interests, err := json.Marshal(nonNil(p.Interests))
	if err != nil {
		return nil, false, fmt.Errorf("marshal interests: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "name", "email", "phone", "segment", "total_spent", "interests", "created_at", "updated_at").
		Values(p.UserID, p.Name, p.Email, p.Phone, string(p.Segment), p.TotalSpent.String(), interests, p.CreatedAt, p.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO NOTHING RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, postgres.MapError(err, "user", p.UserID)
	}

	existing, err := r.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// List returns profiles ordered by creation time, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.UserProfile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}
	defer rows.Close()

	users := make([]domain.UserProfile, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user", "list")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}
	return users, nil
}

// Count returns the total number of profiles.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM users`).
		Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "user", "count")
	}
	return n, nil
}

func scanUser(row pgx.Row) (*domain.UserProfile, error) {
	var (
		u         domain.UserProfile
		segment   string
		spent     string
		interests []byte
	)
	err := row.Scan(
		&u.ID, &u.UserID, &u.Name, &u.Email, &u.Phone, &segment,
		&spent, &interests, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Segment = domain.Segment(segment)
	if u.TotalSpent, err = decimal.NewFromString(spent); err != nil {
		return nil, fmt.Errorf("parse total_spent %q: %w", spent, err)
	}
	u.Interests = []string{}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &u.Interests); err != nil {
			return nil, fmt.Errorf("unmarshal interests: %w", err)
		}
	}
	return &u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
