package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a profile with a unique external id and default fields.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.UserProfile {
	t.Helper()
	return SeedUserWithSpend(t, pool, decimal.Zero)
}

// SeedUserWithSpend creates a profile with the given total_spent.
func SeedUserWithSpend(t *testing.T, pool *pgxpool.Pool, spent decimal.Decimal) domain.UserProfile {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.NewUserProfile("user-"+uniqueSuffix(), now)
	u.TotalSpent = spent
	u.Interests = []string{"shoes", "bags"}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (user_id, name, segment, total_spent, interests, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		u.UserID, u.Name, string(u.Segment), u.TotalSpent.String(), mustJSON(t, u.Interests), u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return u
}

// SeedEvent appends an event of the given type at ts.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, userID, eventType string, ts time.Time) domain.Event {
	t.Helper()

	e := domain.Event{
		UserID:     userID,
		EventType:  eventType,
		Timestamp:  ts.UTC().Truncate(time.Microsecond),
		Properties: map[string]any{},
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO events (user_id, event_type, timestamp, properties)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		e.UserID, e.EventType, e.Timestamp, mustJSON(t, e.Properties),
	).Scan(&e.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	return e
}

// SeedMessage inserts a pending email created at createdAt.
func SeedMessage(t *testing.T, pool *pgxpool.Pool, userID string, createdAt time.Time) domain.OutboundMessage {
	t.Helper()

	m := domain.OutboundMessage{
		UserID:    userID,
		Channel:   domain.ChannelEmail,
		Body:      "seeded body " + uniqueSuffix(),
		Status:    domain.MessageStatusPending,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO messages (user_id, message_type, content, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		m.UserID, string(m.Channel), m.Body, string(m.Status), m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedMessage insert: %v", err)
	}

	return m
}

// SeedPrompt inserts a template with a unique name and returns it.
func SeedPrompt(t *testing.T, pool *pgxpool.Pool, template string, active bool) domain.PromptTemplate {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.PromptTemplate{
		Name:      "prompt_" + uniqueSuffix(),
		Template:  template,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO prompts (name, template, description, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.Name, p.Template, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedPrompt insert: %v", err)
	}

	return p
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("testhelper: marshal: %v", err)
	}
	return b
}
