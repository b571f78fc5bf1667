package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/engage-agent/internal/config"
	"github.com/heartmarshall/engage-agent/internal/metrics"
	"github.com/heartmarshall/engage-agent/internal/transport/middleware"
)

// TokenValidator checks admin bearer tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Event  *EventHandler
	Auth   *AuthHandler
	Admin  *AdminHandler
	User   *UserHandler
	Prompt *PromptHandler
	Health *HealthHandler
	Pages  *PagesHandler
}

// RouterConfig carries the cross-cutting dependencies of the router.
type RouterConfig struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Limiter   *middleware.RateLimiter
	Tokens    TokenValidator
}

// NewRouter builds the HTTP routing tree.
func NewRouter(h Handlers, rc RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(rc.Logger),
		middleware.Logger(rc.Logger),
		middleware.Metrics(rc.Metrics),
		middleware.CORS(rc.CORS),
	)

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)
	if rc.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rc.Gatherer, promhttp.HandlerOpts{}))
	}

	if h.Pages != nil {
		r.Get("/", h.Pages.Page("login"))
		for _, p := range pages[1:] {
			r.Get("/"+p.name, h.Pages.Page(p.name))
		}
	}

	r.With(rc.Limiter.Limit("events", rc.RateLimit.EventsPerMinute)).Post("/api/event", h.Event.Record)
	r.With(rc.Limiter.Limit("login", rc.RateLimit.LoginPerMinute)).Post("/api/admin/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(rc.Tokens))

		r.Route("/api/users/{user_id}", func(r chi.Router) {
			r.Get("/", h.User.Get)
			r.Get("/events", h.User.Events)
			r.Get("/messages", h.User.Messages)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/dashboard", h.Admin.Dashboard)

			r.Get("/users", h.User.List)
			r.Post("/users/{user_id}/generate-text", h.User.GenerateText)
			r.Get("/users/{user_id}/growth", h.User.Growth)

			r.Post("/agent/check-quality", h.Admin.CheckQuality)

			r.Get("/messages", h.Admin.Messages)
			r.Patch("/messages/{id}/status", h.Admin.UpdateMessageStatus)

			r.Route("/prompts", func(r chi.Router) {
				r.Get("/", h.Prompt.List)
				r.Post("/", h.Prompt.Create)
				r.Get("/{id}", h.Prompt.Get)
				r.Put("/{id}", h.Prompt.Update)
				r.Delete("/{id}", h.Prompt.Delete)
			})
		})
	})

	return r
}
