package model

import "time"

// Config is the full runtime configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the generation provider
type LLMConfig struct {
	Provider          string  `yaml:"provider"` // openai, anthropic, ollama
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"api_key,omitempty"`
	BaseURL           string  `yaml:"base_url,omitempty"`
	Timeout           int     `yaml:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// HTTPConfig configures remote document fetching
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	InsecureTLS       bool          `yaml:"insecure_tls"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty"`
	NoProxy           string        `yaml:"no_proxy,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // per-domain, 0 disables limiting
	Burst             int           `yaml:"burst"`
}

// CacheConfig configures completion caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers"` // goroutines per fragment batch
	BatchWorkers  int `yaml:"batch_workers"`  // documents processed in parallel
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         800,
			RequestsPerSecond: 2,
		},
		HTTP: HTTPConfig{
			Timeout:           60 * time.Second,
			UserAgent:         "Verbatim/0.1 (+https://github.com/ppiankov/verbatim)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.verbatim/cache at startup
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 8,
			BatchWorkers:  4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
