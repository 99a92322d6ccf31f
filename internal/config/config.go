package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                  int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel              string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	APIPrefix             string `mapstructure:"api_prefix" validate:"required,startswith=/"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	// CORSAllowedOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	OTPLifetimeMinutes   int    `mapstructure:"otp_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// OTPLifetime returns how long a mailed login passcode stays valid.
func (c AuthConfig) OTPLifetime() time.Duration {
	return time.Duration(c.OTPLifetimeMinutes) * time.Minute
}

// Provider names accepted by LLMConfig.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// LLMConfig contains all LLM integration related settings. Credentials are
// optional: a missing key for the selected provider disables generation.
type LLMConfig struct {
	Provider          string `mapstructure:"provider" validate:"required,oneof=gemini openrouter"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	OpenRouterAPIKey  string `mapstructure:"openrouter_api_key"`
	OpenRouterBaseURL string `mapstructure:"openrouter_base_url" validate:"omitempty,url"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	DailyQuota        int    `mapstructure:"daily_quota" validate:"gte=0"`
	ItemsPerChapter   int    `mapstructure:"items_per_chapter" validate:"required,gt=0"`
}

// APIKey returns the credential for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderOpenRouter {
		return c.OpenRouterAPIKey
	}
	return c.GeminiAPIKey
}

// Timeout returns the provider call bound.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MailConfig holds SMTP settings for one-time passcode delivery. Leaving
// SMTPEmail empty disables the passcode step at login.
type MailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port" validate:"gte=0,lt=65536"`
	SMTPEmail    string `mapstructure:"smtp_email" validate:"omitempty,email"`
	SMTPPassword string `mapstructure:"smtp_password"`
}

// Enabled reports whether outbound mail is configured.
func (c MailConfig) Enabled() bool {
	return c.SMTPEmail != "" && c.SMTPHost != ""
}
