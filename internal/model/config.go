package model

import (
	"runtime"
	"time"
)

// Config is the complete Geoscope configuration.
//
// Hierarchy (highest to lowest priority): CLI flags, GEOSCOPE_* env vars,
// ~/.geoscope/config.yaml, the defaults below.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Scoring     ScoringConfig     `yaml:"scoring" json:"scoring"`
	Locale      LocaleConfig      `yaml:"locale" json:"locale"`
	Patterns    []PatternCategory `yaml:"patterns" json:"patterns"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// HTTPConfig controls document fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" json:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
	RespectRobots bool         `yaml:"respect_robots" json:"respect_robots"`
	RatePerDomain float64      `yaml:"rate_per_domain" json:"rate_per_domain"` // requests per second
	RateBurst     int          `yaml:"rate_burst" json:"rate_burst"`
}

// CacheConfig controls the fetched-page cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// ScoringConfig holds engine-level scoring constants.
type ScoringConfig struct {
	// LambdaDecay is the λ of the positional decay weight exp(-position/λ).
	// Must be positive; the engine refuses to construct otherwise.
	LambdaDecay float64 `yaml:"lambda_decay" json:"lambda_decay"`

	// TopKeywords is the N of the top-N keyword density table.
	TopKeywords int `yaml:"top_keywords" json:"top_keywords"`
}

// LocaleConfig makes tokenization locale-explicit instead of hardcoded.
// Empty fields fall back to the Turkish defaults the tool shipped with.
type LocaleConfig struct {
	SentenceTerminators string   `yaml:"sentence_terminators,omitempty" json:"sentence_terminators,omitempty"`
	StopWords           []string `yaml:"stop_words,omitempty" json:"stop_words,omitempty"`
}

// PatternCategory is one named group of matching rules representing a
// rhetorical signal. Loaded once at engine construction, never mutated
// mid-analysis.
type PatternCategory struct {
	Name            string   `yaml:"name" json:"name"`
	Rules           []string `yaml:"rules" json:"rules"` // regular expressions, evaluated in order
	Weight          float64  `yaml:"weight,omitempty" json:"weight,omitempty"`
	CaseInsensitive bool     `yaml:"case_insensitive" json:"case_insensitive"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty" json:"provider,omitempty"` // "openai" or "" (disabled)
	Model     string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey    string `yaml:"-" json:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Geoscope/0.1 (+https://github.com/ppiankov/geoscope)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerDomain: 2,
			RateBurst:     5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.geoscope/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Scoring: ScoringConfig{
			LambdaDecay: 10,
			TopKeywords: 10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
