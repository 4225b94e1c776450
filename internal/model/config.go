package model

import "time"

// Config holds the complete application configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	HTTP     HTTPConfig     `yaml:"http"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
}

// LLMConfig configures the text-generation provider
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai", "anthropic", "ollama"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Timeout   int `yaml:"timeout"` // seconds, per request
	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerSecond throttles calls to the provider; bursts allowed up
	// to Burst.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// HTTPConfig configures outbound source fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// PipelineConfig holds stage-level knobs
type PipelineConfig struct {
	Level Level `yaml:"level"`

	// MaxAttempts bounds regeneration when a stage returns a malformed
	// artifact. Validation errors from the failed attempt are appended to
	// the next prompt.
	MaxAttempts int `yaml:"max_attempts"`

	// SectionWorkers caps concurrent research-compression calls
	SectionWorkers int `yaml:"section_workers"`

	MaxSourcesPerSection int `yaml:"max_sources_per_section"`
}

// CacheConfig configures the LLM response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	EpisodeTTL   time.Duration `yaml:"episode_ttl"` // Episodes live in memory only
	AllowOrigins []string      `yaml:"allow_origins"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "",
			Timeout:           60,
			MaxTokens:         4096,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Podcastify/0.1 (+https://github.com/podcastify/podcastify)",
			MaxBodyBytes: 2_000_000,
		},
		Pipeline: PipelineConfig{
			Level:                LevelAdaptive,
			MaxAttempts:          3,
			SectionWorkers:       4,
			MaxSourcesPerSection: 5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Defaults to ~/.podcastify/cache at runtime
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			EpisodeTTL:   2 * time.Hour,
			AllowOrigins: []string{"*"},
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
