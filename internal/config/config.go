// Package config loads service configuration with Viper from defaults, an
// optional config file and PROMPTLAB_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PROMPTLAB_SERVER_ADDR.
const EnvPrefix = "PROMPTLAB"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Compare   CompareConfig   `mapstructure:"compare"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Usage     UsageConfig     `mapstructure:"usage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// LLMConfig selects the provider. Model empty means the provider default.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	GoogleAPIKey    string        `mapstructure:"google_api_key"`
}

// APIKey returns the key for the selected provider.
func (c LLMConfig) APIKey() string {
	switch strings.ToLower(c.Provider) {
	case "anthropic":
		return c.AnthropicAPIKey
	case "google":
		return c.GoogleAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

type CompareConfig struct {
	Parallel bool `mapstructure:"parallel"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type UsageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// RateLimitConfig bounds request rate per client IP. RPS zero disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.mode", "development")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("compare.parallel", false)
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("usage.enabled", false)
	v.SetDefault("usage.db_path", "promptlab.db")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "promptlab")

	v.SetDefault("ratelimit.rps", 0.0)
	v.SetDefault("ratelimit.burst", 5)
}

// BindSensitiveEnvVars binds provider credentials to their conventional,
// unprefixed environment variables.
func BindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("llm.openai_api_key", "OPENAI_API_KEY", EnvPrefix+"_LLM_OPENAI_API_KEY")
	_ = v.BindEnv("llm.anthropic_api_key", "ANTHROPIC_API_KEY", EnvPrefix+"_LLM_ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.google_api_key", "GOOGLE_API_KEY", EnvPrefix+"_LLM_GOOGLE_API_KEY")
}

// NewViper returns a Viper instance with defaults and environment binding.
// configFile, when non-empty, is read with its extension deciding the format.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindSensitiveEnvVars(v)
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", configFile)
		}
	}
	return v, nil
}

// Load reads configuration from configFile (optional) and the environment.
func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper decodes and validates configuration from v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values Viper cannot.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "anthropic", "google":
	default:
		return errors.WithHint(
			errors.Newf("config: llm.provider %q is not supported", c.LLM.Provider),
			"use one of openai, anthropic, google")
	}
	if c.LLM.Timeout < 0 {
		return errors.Newf("config: llm.timeout must not be negative, got %s", c.LLM.Timeout)
	}
	if c.RateLimit.RPS < 0 {
		return errors.Newf("config: ratelimit.rps must not be negative, got %g", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return errors.Newf("config: ratelimit.burst must be at least 1 when rate limiting is on")
	}
	if c.Usage.Enabled && c.Usage.DBPath == "" {
		return errors.New("config: usage.db_path is required when usage tracking is enabled")
	}
	return nil
}
