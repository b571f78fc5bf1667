// Package agent turns user context into prompts, asks the LLM and interprets
// its answers: engagement decisions, message copy, quality verdicts and
// growth opportunities.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/heartmarshall/engage-agent/internal/llm"
)

// System messages per operation.
const (
	systemDecision = "Ты — AI-агент персонализации"
	systemWriter   = "Ты — профессиональный копирайтер"
	systemEditor   = "Ты — строгий редактор"
	systemAnalyst  = "Ты — аналитик по LTV"
)

// templateStore resolves prompt templates by name.
type templateStore interface {
	GetTemplate(ctx context.Context, name string) string
}

// completer sends a prompt to the model. It never fails.
type completer interface {
	Complete(ctx context.Context, system, prompt string) llm.Result
}

// Service implements the personalization agent.
type Service struct {
	log       *slog.Logger
	templates templateStore
	llm       completer
}

// NewService creates a new agent service.
func NewService(logger *slog.Logger, templates templateStore, llm completer) *Service {
	return &Service{
		log:       logger.With("service", "agent"),
		templates: templates,
		llm:       llm,
	}
}

// toJSON renders v for prompt interpolation. Non-ASCII text stays readable
// and HTML characters are not escaped.
func toJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func logResult(ctx context.Context, log *slog.Logger, op string, res llm.Result) {
	log.DebugContext(ctx, "llm answered",
		slog.String("op", op),
		slog.String("source", string(res.Source)),
		slog.String("kind", string(res.Kind)),
		slog.String("fallback_reason", string(res.FallbackReason)),
	)
}
