package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AdminUsername == "" {
		return fmt.Errorf("auth.admin_username is required")
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("auth.admin_password or auth.admin_password_hash is required")
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if err := c.Agent.validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	switch l.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderOpenAI, ProviderAnthropic, l.Provider)
	}
	l.Model = strings.TrimSpace(l.Model)
	switch {
	case l.Model == "" && l.Provider == ProviderAnthropic:
		l.Model = DefaultAnthropicModel
	case l.Model == "":
		l.Model = DefaultOpenAIModel
	case l.Provider == ProviderAnthropic && strings.HasPrefix(strings.ToLower(l.Model), "gpt-"):
		return fmt.Errorf("model %q is an OpenAI model, provider is %q", l.Model, l.Provider)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %v)", l.Temperature)
	}
	l.APIBase = strings.TrimRight(l.APIBase, "/")
	return nil
}

func (a *AgentConfig) validate() error {
	if a.MaxMessagesPerHour < 1 {
		return fmt.Errorf("max_messages_per_hour must be >= 1 (got %d)", a.MaxMessagesPerHour)
	}
	if a.VIPThresholdRaw < 0 {
		return fmt.Errorf("vip_threshold must be >= 0 (got %v)", a.VIPThresholdRaw)
	}
	if a.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be > 0 (got %v)", a.RecentWindow)
	}
	if a.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be >= 1 (got %d)", a.RecentLimit)
	}
	return nil
}
