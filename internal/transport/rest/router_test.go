package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/engage-agent/internal/config"
	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/metrics"
	"github.com/heartmarshall/engage-agent/internal/service/auth"
	"github.com/heartmarshall/engage-agent/internal/service/event"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
	"github.com/heartmarshall/engage-agent/internal/service/user"
	"github.com/heartmarshall/engage-agent/internal/transport/middleware"
	"github.com/heartmarshall/engage-agent/web"
)

const testToken = "good-token"

type fixture struct {
	events    *eventServiceMock
	auth      *authServiceMock
	dashboard *dashboardServiceMock
	messages  *messageServiceMock
	quality   *qualityCheckerMock
	users     *userServiceMock
	prompts   *promptServiceMock
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		events:    &eventServiceMock{},
		dashboard: &dashboardServiceMock{},
		messages:  &messageServiceMock{},
		quality:   &qualityCheckerMock{},
		users:     &userServiceMock{},
		prompts:   &promptServiceMock{},
		auth: &authServiceMock{
			ValidateTokenFunc: func(ctx context.Context, token string) (string, error) {
				if token != testToken {
					return "", domain.ErrUnauthorized
				}
				return "admin", nil
			},
		},
	}

	pagesHandler, err := NewPagesHandler(web.FS, logger)
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	f.router = NewRouter(Handlers{
		Event:  NewEventHandler(f.events, logger),
		Auth:   NewAuthHandler(f.auth, logger),
		Admin:  NewAdminHandler(f.dashboard, f.messages, f.quality, logger),
		User:   NewUserHandler(f.users, logger),
		Prompt: NewPromptHandler(f.prompts, logger),
		Health: NewHealthHandler(&dbPingerMock{}, "test", "mock"),
		Pages:  pagesHandler,
	}, RouterConfig{
		Logger:    logger,
		Metrics:   metrics.New(nil),
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST", AllowedHeaders: "Authorization,Content-Type"},
		RateLimit: config.RateLimitConfig{EventsPerMinute: 1000, LoginPerMinute: 1000},
		Limiter:   limiter,
		Tokens:    f.auth,
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func ptr[T any](v T) *T { return &v }

func TestRouter_RecordEvent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.events.RecordEventFunc = func(ctx context.Context, input event.RecordInput) (*event.Outcome, error) {
		return &event.Outcome{
			Decision:  domain.Decision{ShouldEngage: true, Reasoning: "cart", Action: &domain.Action{Type: domain.ChannelEmail, Body: "hi"}},
			MessageID: ptr(int64(42)),
		}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/event",
		`{"user_id":"u1","event":"cart_abandon","product_id":"sku-1","timestamp":"2025-01-02T10:00:00","properties":{"price":10}}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "processed", resp["status"])
	assert.EqualValues(t, 42, resp["message_id"])
	decision := resp["agent_decision"].(map[string]any)
	assert.Equal(t, true, decision["should_engage"])

	require.Len(t, f.events.RecordEventCalls, 1)
	in := f.events.RecordEventCalls[0]
	assert.Equal(t, "u1", in.UserID)
	assert.Equal(t, "cart_abandon", in.Event)
	require.NotNil(t, in.ProductID)
	assert.Equal(t, "sku-1", *in.ProductID)
	require.NotNil(t, in.Timestamp)
	assert.True(t, in.Timestamp.Equal(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)))
	assert.EqualValues(t, 10, in.Properties["price"])
}

func TestRouter_RecordEvent_NoMessage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.events.RecordEventFunc = func(ctx context.Context, input event.RecordInput) (*event.Outcome, error) {
		return &event.Outcome{Decision: domain.Decision{Reasoning: "no"}}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/event", `{"user_id":"u1","event":"page_view","timestamp":"2025-01-02T10:00:00Z"}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	_, hasID := resp["message_id"]
	assert.False(t, hasID)
}

func TestRouter_RecordEvent_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{"empty body", "", nil, http.StatusBadRequest, "validation error"},
		{"malformed json", `{"user_id":`, nil, http.StatusBadRequest, "validation error"},
		{"bad timestamp", `{"user_id":"u1","event":"x","timestamp":"yesterday"}`, nil, http.StatusBadRequest, "validation error"},
		{"service validation", `{"user_id":"","event":"x","timestamp":"2025-01-02T10:00:00Z"}`,
			domain.NewValidationError("user_id", "required"), http.StatusBadRequest, "validation error"},
		{"internal", `{"user_id":"u1","event":"x","timestamp":"2025-01-02T10:00:00Z"}`,
			errors.New("db down"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.events.RecordEventFunc = func(ctx context.Context, input event.RecordInput) (*event.Outcome, error) {
				return nil, tt.svcErr
			}

			rec := f.do(t, http.MethodPost, "/api/event", tt.body, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody[errorResponse](t, rec)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestRouter_Login(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.LoginFunc = func(ctx context.Context, input auth.LoginInput) (*auth.TokenResult, error) {
		if input.Username == "admin" && input.Password == "secret" {
			return &auth.TokenResult{AccessToken: "tok", TokenType: "bearer"}, nil
		}
		return nil, domain.ErrUnauthorized
	}

	rec := f.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"secret"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[tokenResponse](t, rec)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	rec = f.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	t.Parallel()

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/users/u1"},
		{http.MethodGet, "/api/users/u1/events"},
		{http.MethodGet, "/api/users/u1/messages"},
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPost, "/api/admin/users/u1/generate-text"},
		{http.MethodGet, "/api/admin/users/u1/growth"},
		{http.MethodPost, "/api/admin/agent/check-quality"},
		{http.MethodGet, "/api/admin/messages"},
		{http.MethodPatch, "/api/admin/messages/1/status"},
		{http.MethodGet, "/api/admin/prompts"},
		{http.MethodPost, "/api/admin/prompts"},
		{http.MethodGet, "/api/admin/prompts/1"},
		{http.MethodPut, "/api/admin/prompts/1"},
		{http.MethodDelete, "/api/admin/prompts/1"},
	}

	f := newFixture(t)
	for _, p := range paths {
		rec := f.do(t, p.method, p.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestRouter_UserProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.GetProfileFunc = func(ctx context.Context, userID string) (*domain.UserProfile, error) {
		if userID != "u1" {
			return nil, domain.ErrNotFound
		}
		return &domain.UserProfile{ID: 1, UserID: "u1", Name: "Клиент", Segment: domain.SegmentNew, Interests: []string{}}, nil
	}
	f.users.ListEventsFunc = func(ctx context.Context, userID string) ([]domain.Event, error) {
		return nil, nil
	}
	f.users.ListMessagesFunc = func(ctx context.Context, userID string) ([]domain.OutboundMessage, error) {
		return []domain.OutboundMessage{{ID: 3, UserID: userID, Channel: domain.ChannelSMS, Body: "hi", Status: domain.MessageStatusPending}}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/users/u1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "u1", profile["user_id"])
	assert.Equal(t, "Клиент", profile["name"])

	rec = f.do(t, http.MethodGet, "/api/users/missing", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/u1/events", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/users/u1/messages", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decodeBody[[]map[string]any](t, rec)
	require.Len(t, msgs, 1)
	assert.Equal(t, "sms", msgs[0]["message_type"])
	assert.Equal(t, "hi", msgs[0]["content"])
}

func TestRouter_UserList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var got user.ListInput
	f.users.ListFunc = func(ctx context.Context, input user.ListInput) ([]domain.UserProfile, int, error) {
		got = input
		return nil, 0, nil
	}

	rec := f.do(t, http.MethodGet, "/api/admin/users?limit=5&offset=10", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[],"total":0}`, rec.Body.String())
	assert.Equal(t, user.ListInput{Limit: 5, Offset: 10}, got)

	rec = f.do(t, http.MethodGet, "/api/admin/users?limit=abc", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GenerateText(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var got user.GenerateTextInput
	f.users.GenerateTextFunc = func(ctx context.Context, input user.GenerateTextInput) (string, error) {
		got = input
		return "Привет!", nil
	}

	rec := f.do(t, http.MethodPost, "/api/admin/users/u1/generate-text",
		`{"channel":"push","recent_views":["a"],"purchase_history":["b"]}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"Привет!"}`, rec.Body.String())
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, domain.ChannelPush, got.Channel)
	assert.Equal(t, []string{"a"}, got.RecentViews)
	assert.Equal(t, []string{"b"}, got.PurchaseHistory)
}

func TestRouter_Growth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.GrowthOpportunitiesFunc = func(ctx context.Context, userID string) ([]domain.GrowthOpportunity, error) {
		return []domain.GrowthOpportunity{{Type: "upsell", Reason: "r", Suggestion: "s", ExpectedLTVIncrease: 12.5}}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/admin/users/u1/growth", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string][]domain.GrowthOpportunity](t, rec)
	require.Len(t, resp["growth_opportunities"], 1)
	assert.Equal(t, "upsell", resp["growth_opportunities"][0].Type)
}

func TestRouter_Dashboard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.dashboard.StatsFunc = func(ctx context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{TotalUsers: 2, TotalEvents: 5, TotalMessages: 3, PendingMessages: 1, RecentEvents: []domain.Event{}}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/admin/dashboard", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_users":2,"total_events":5,"total_messages":3,"pending_messages":1,"recent_events":[]}`,
		rec.Body.String())
}

func TestRouter_CheckQuality(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var gotMessage string
	var gotContext map[string]any
	f.quality.CheckQualityFunc = func(ctx context.Context, message string, userContext map[string]any) domain.QualityReport {
		gotMessage, gotContext = message, userContext
		return domain.QualityReport{OverallScore: 0.9, Approved: true, CriteriaScores: map[string]float64{}}
	}

	rec := f.do(t, http.MethodPost, "/api/admin/agent/check-quality", `{"message":"Привет","user_context":{"segment":"vip"}}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[domain.QualityReport](t, rec)
	assert.True(t, report.Approved)
	assert.InDelta(t, 0.9, report.OverallScore, 1e-9)
	assert.Equal(t, "Привет", gotMessage)
	assert.Equal(t, "vip", gotContext["segment"])
}

func TestRouter_Messages(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.messages.ListRecentFunc = func(ctx context.Context) ([]domain.OutboundMessage, error) {
		return nil, nil
	}
	f.messages.UpdateStatusFunc = func(ctx context.Context, id int64, status domain.MessageStatus) (*domain.OutboundMessage, error) {
		switch {
		case id == 404:
			return nil, domain.ErrNotFound
		case status == domain.MessageStatusPending:
			return nil, domain.ErrConflict
		}
		return &domain.OutboundMessage{ID: id, Status: status}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/admin/messages", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(t, http.MethodPatch, "/api/admin/messages/7/status", `{"status":"sent"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	msg := decodeBody[domain.OutboundMessage](t, rec)
	assert.Equal(t, int64(7), msg.ID)
	assert.Equal(t, domain.MessageStatusSent, msg.Status)

	rec = f.do(t, http.MethodPatch, "/api/admin/messages/404/status", `{"status":"sent"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/admin/messages/7/status", `{"status":"pending"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/admin/messages/abc/status", `{"status":"sent"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Prompts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var created prompt.SaveInput
	f.prompts.ListFunc = func(ctx context.Context) ([]domain.PromptTemplate, error) {
		return []domain.PromptTemplate{{ID: 1, Name: "decision"}}, nil
	}
	f.prompts.GetFunc = func(ctx context.Context, id int64) (*domain.PromptTemplate, error) {
		if id != 1 {
			return nil, domain.ErrNotFound
		}
		return &domain.PromptTemplate{ID: 1, Name: "decision"}, nil
	}
	f.prompts.CreateFunc = func(ctx context.Context, input prompt.SaveInput) (*domain.PromptTemplate, error) {
		created = input
		if input.Name == "decision" {
			return nil, domain.ErrAlreadyExists
		}
		return &domain.PromptTemplate{ID: 2, Name: input.Name, Template: input.Template, IsActive: *input.IsActive}, nil
	}
	f.prompts.UpdateFunc = func(ctx context.Context, id int64, input prompt.SaveInput) (*domain.PromptTemplate, error) {
		return &domain.PromptTemplate{ID: id, Name: input.Name}, nil
	}
	f.prompts.DeleteFunc = func(ctx context.Context, id int64) error {
		return nil
	}

	rec := f.do(t, http.MethodGet, "/api/admin/prompts", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.PromptTemplate](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/api/admin/prompts/1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/admin/prompts/9", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/prompts", `{"name":"growth","template":"T {user_profile}","is_active":false}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created.IsActive)
	assert.False(t, *created.IsActive)
	assert.Equal(t, "T {user_profile}", created.Template)

	rec = f.do(t, http.MethodPost, "/api/admin/prompts", `{"name":"decision","template":"T","is_active":true}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/admin/prompts/1", `{"name":"renamed","template":"T"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renamed", decodeBody[domain.PromptTemplate](t, rec).Name)

	rec = f.do(t, http.MethodDelete, "/api/admin/prompts/1", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_PagesAndHealth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, path := range []string{"/", "/dashboard", "/users", "/events", "/messages", "/prompts"} {
		rec := f.do(t, http.MethodGet, path, "", false)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, rec.Body.String(), "Engage Agent", path)
	}

	rec := f.do(t, http.MethodGet, "/live", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/nope", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
