package types

import "time"

// Defaults for GenerationConfig. Temperature matches the originating demo's
// sampling setup; the token ceiling bounds worst-case latency per stage.
const (
	DefaultModel           = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens       = 512
	DefaultMaxTokenCeiling = 1024
	DefaultTemperature     = 0.7
	DefaultTimeout         = 30 * time.Second
	DefaultMaxConcurrent   = 4
)

// GenerationConfig holds settings for the text generation adapter.
// All fields are optional; zero values take defaults via WithDefaults.
type GenerationConfig struct {
	// Model is the model identifier sent to the backend.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the backend API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens is the per-stage token budget.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxTokenCeiling caps MaxTokens regardless of flag or config input.
	MaxTokenCeiling int `json:"max_token_ceiling" yaml:"max_token_ceiling"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout bounds the wall-clock time of each generation call. On
	// expiry the adapter treats the call as a generation timeout and
	// applies its fallback policy.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Strict disables fallback templates: adapter failures propagate to
	// the caller instead. Used to exercise failure paths in tests.
	Strict bool `json:"strict" yaml:"strict"`

	// MaxConcurrent bounds in-flight generation calls across concurrent
	// pipeline invocations sharing one adapter.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// WithDefaults returns a copy with zero values replaced by defaults and
// MaxTokens clamped to the ceiling.
func (c GenerationConfig) WithDefaults() GenerationConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.MaxTokenCeiling <= 0 {
		c.MaxTokenCeiling = DefaultMaxTokenCeiling
	}
	if c.MaxTokens > c.MaxTokenCeiling {
		c.MaxTokens = c.MaxTokenCeiling
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	return c
}

// PipelineConfig groups all configuration for a pipeline run.
type PipelineConfig struct {
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}
