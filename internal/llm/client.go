// Package llm wraps the chat-completion endpoint used by the personalization
// agent. Every failure degrades to the deterministic mock, so Complete never
// returns an error.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/engage-agent/internal/config"
	"github.com/heartmarshall/engage-agent/internal/metrics"
)

// provider performs one completion and returns the raw payload text.
type provider interface {
	complete(ctx context.Context, system, prompt string) (string, error)
}

// StatusError is returned by providers when the endpoint answers non-2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// errBadResponse marks a 2xx answer whose envelope could not be used.
var errBadResponse = errors.New("malformed completion response")

// Client sends prompts to the configured provider.
type Client struct {
	provider     provider
	providerName string
	timeout      time.Duration
	log          *slog.Logger
	metrics      *metrics.Metrics
}

// New creates a client for cfg.Provider. Without an API key the client never
// touches the network. m may be nil.
func New(cfg config.LLMConfig, log *slog.Logger, m *metrics.Metrics) *Client {
	c := &Client{
		providerName: cfg.Provider,
		timeout:      cfg.Timeout,
		log:          log.With("adapter", "llm", "provider", cfg.Provider),
		metrics:      m,
	}
	if cfg.APIKey == "" {
		return c
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		c.provider = newAnthropicProvider(cfg)
	default:
		c.provider = newOpenAIProvider(cfg)
	}
	return c
}

// Mode reports where answers come from: the provider name, or "mock" when
// no API key is configured.
func (c *Client) Mode() string {
	if c.provider == nil {
		return "mock"
	}
	return c.providerName
}

// Complete asks the model to answer prompt under the given system message.
func (c *Client) Complete(ctx context.Context, system, prompt string) Result {
	start := time.Now()
	res := c.complete(ctx, system, prompt)

	if c.metrics != nil {
		c.metrics.LLMRequests.WithLabelValues(c.providerName, string(res.Source), string(res.Kind)).Inc()
		c.metrics.LLMDuration.WithLabelValues(c.providerName).Observe(time.Since(start).Seconds())
	}
	return res
}

func (c *Client) complete(ctx context.Context, system, prompt string) Result {
	if c.provider == nil {
		c.log.WarnContext(ctx, "llm api key not set, using mock response")
		return Mock(prompt, FallbackNoAPIKey)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content, err := c.provider.complete(ctx, system, prompt)
	if err != nil {
		reason := classify(err)
		c.log.WarnContext(ctx, "llm call failed, using mock response",
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()),
		)
		return Mock(prompt, reason)
	}

	return parseContent(content)
}

func classify(err error) FallbackReason {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return FallbackBadStatus
	case errors.Is(err, errBadResponse):
		return FallbackBadResponse
	default:
		return FallbackTransportError
	}
}
