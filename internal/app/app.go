package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/engage-agent/internal/adapter/postgres"
	eventrepo "github.com/heartmarshall/engage-agent/internal/adapter/postgres/event"
	messagerepo "github.com/heartmarshall/engage-agent/internal/adapter/postgres/message"
	promptrepo "github.com/heartmarshall/engage-agent/internal/adapter/postgres/prompt"
	userrepo "github.com/heartmarshall/engage-agent/internal/adapter/postgres/user"
	"github.com/heartmarshall/engage-agent/internal/auth"
	"github.com/heartmarshall/engage-agent/internal/config"
	"github.com/heartmarshall/engage-agent/internal/llm"
	"github.com/heartmarshall/engage-agent/internal/metrics"
	"github.com/heartmarshall/engage-agent/internal/notify"
	"github.com/heartmarshall/engage-agent/internal/service/agent"
	authsvc "github.com/heartmarshall/engage-agent/internal/service/auth"
	"github.com/heartmarshall/engage-agent/internal/service/dashboard"
	"github.com/heartmarshall/engage-agent/internal/service/event"
	"github.com/heartmarshall/engage-agent/internal/service/message"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
	"github.com/heartmarshall/engage-agent/internal/service/user"
	"github.com/heartmarshall/engage-agent/internal/transport/middleware"
	"github.com/heartmarshall/engage-agent/internal/transport/rest"
	"github.com/heartmarshall/engage-agent/migrations"
	"github.com/heartmarshall/engage-agent/web"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool, migrations.FS)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Repositories.
	txManager := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	events := eventrepo.New(pool)
	messages := messagerepo.New(pool)
	prompts := promptrepo.New(pool)

	// Services.
	promptService := prompt.NewService(logger, prompts)
	llmClient := llm.New(cfg.LLM, logger, m)
	agentSvc := agent.NewService(logger, promptService, llmClient)
	dispatcher := notify.NewDispatcher(logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService, err := authsvc.NewService(logger, jwtManager, cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	eventService := event.NewService(logger, cfg.Agent, txManager, users, events, messages, agentSvc, dispatcher, m)
	userService := user.NewService(logger, users, events, messages, agentSvc)
	messageService := message.NewService(logger, messages)
	dashboardService := dashboard.NewService(logger, users, events, messages)

	// Transport.
	pages, err := newPagesHandler(cfg.Server, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Event:  rest.NewEventHandler(eventService, logger),
		Auth:   rest.NewAuthHandler(authService, logger),
		Admin:  rest.NewAdminHandler(dashboardService, messageService, agentSvc, logger),
		User:   rest.NewUserHandler(userService, logger),
		Prompt: rest.NewPromptHandler(promptService, logger),
		Health: rest.NewHealthHandler(pool, Version, llmClient.Mode()),
		Pages:  pages,
	}, rest.RouterConfig{
		Logger:    logger,
		Metrics:   m,
		Gatherer:  reg,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Limiter:   limiter,
		Tokens:    authService,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.String("llm", llmClient.Mode()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newPagesHandler serves the embedded templates unless a directory override
// is configured.
func newPagesHandler(cfg config.ServerConfig, logger *slog.Logger) (*rest.PagesHandler, error) {
	var fsys fs.FS = web.FS
	if cfg.WebDir != "" {
		fsys = os.DirFS(cfg.WebDir)
	}
	pages, err := rest.NewPagesHandler(fsys, logger)
	if err != nil {
		return nil, fmt.Errorf("load web templates: %w", err)
	}
	return pages, nil
}
