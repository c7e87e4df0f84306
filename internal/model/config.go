package model

import "time"

// Config is the full runtime configuration, loadable from
// ~/.claimflow/config.yaml, CLAIMFLOW_* environment variables, or flags.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// StoreConfig controls the claim session store.
type StoreConfig struct {
	// Dir is the root directory for per-claimant session records.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// MemoryTTL is how long a claim stays in the read-through memory layer.
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
}

// LLMConfig holds reasoning-service settings.
type LLMConfig struct {
	// Provider name: "openai" or "" (disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the provider
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each reasoning-service call
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// RequestsPerSecond rate-limits calls per model
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst for the rate limiter
	Burst int `yaml:"burst" mapstructure:"burst"`
}

// Concurrency controls event dispatch.
type ConcurrencyConfig struct {
	// EventWorkers is the number of concurrent inbound-event workers.
	// Events for the same claimant are still serialized by key.
	EventWorkers int `yaml:"event_workers" mapstructure:"event_workers"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir:       "sessions",
			MemoryTTL: 15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Timeout:           60 * time.Second,
			MaxTokens:         1000,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			EventWorkers: 4,
		},
	}
}
