package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	Agent     AgentConfig     `yaml:"agent"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	WebDir          string        `yaml:"web_dir"          env:"SERVER_WEB_DIR"          env-default:""`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"          env:"SECRET_KEY"            env-required:"true"`
	JWTIssuer         string        `yaml:"jwt_issuer"          env:"AUTH_JWT_ISSUER"       env-default:"engage-agent"`
	AccessTokenTTL    time.Duration `yaml:"access_token_ttl"    env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	AdminUsername     string        `yaml:"admin_username"      env:"ADMIN_USERNAME"        env-default:"admin"`
	AdminPassword     string        `yaml:"admin_password"      env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
}

// LLM provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Models used when llm.model is left empty.
const (
	DefaultOpenAIModel    = "gpt-4"
	DefaultAnthropicModel = "claude-sonnet-4-5"
)

// LLMConfig holds settings for the completion endpoint. An empty APIKey
// switches the client to canned mock responses.
type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"LLM_PROVIDER"      env-default:"openai"`
	APIKey      string        `yaml:"api_key"     env:"OPENAI_API_KEY"`
	Model       string        `yaml:"model"       env:"OPENAI_MODEL"`
	APIBase     string        `yaml:"api_base"    env:"OPENAI_API_BASE"   env-default:"https://api.openai.com/v1"`
	Temperature float64       `yaml:"temperature" env:"AGENT_TEMPERATURE" env-default:"0.7"`
	MaxTokens   int64         `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"    env-default:"1024"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"       env-default:"60s"`
}

// AgentConfig holds engagement policy settings.
type AgentConfig struct {
	MaxMessagesPerHour   int           `yaml:"max_messages_per_hour"  env:"MAX_MESSAGES_PER_HOUR"  env-default:"1"`
	VIPThresholdRaw      float64       `yaml:"vip_threshold"          env:"VIP_THRESHOLD"          env-default:"10000"`
	EnforceContactPolicy bool          `yaml:"enforce_contact_policy" env:"ENFORCE_CONTACT_POLICY" env-default:"true"`
	RecentWindow         time.Duration `yaml:"recent_window"          env:"AGENT_RECENT_WINDOW"    env-default:"24h"`
	RecentLimit          int           `yaml:"recent_limit"           env:"AGENT_RECENT_LIMIT"     env-default:"10"`
}

// VIPThreshold returns the spend above which the contact policy does not apply.
func (c AgentConfig) VIPThreshold() decimal.Decimal {
	return decimal.NewFromFloat(c.VIPThresholdRaw)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for unauthenticated endpoints.
type RateLimitConfig struct {
	EventsPerMinute int           `yaml:"events_per_minute" env:"RATE_LIMIT_EVENTS_PER_MINUTE" env-default:"600"`
	LoginPerMinute  int           `yaml:"login_per_minute"  env:"RATE_LIMIT_LOGIN_PER_MINUTE"  env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}
