package types

import "time"

// HTTPConfig holds shared HTTP settings used by every outbound client.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "patent-gateway/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryConfig parameterizes the transient-network retry policy shared by
// all clients. Waits follow an exponential curve clamped to [MinWait, MaxWait].
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, initial call included.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// Multiplier scales the exponential backoff curve, in seconds.
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`

	// MinWait is the smallest backoff wait.
	MinWait time.Duration `json:"min_wait" yaml:"min_wait"`

	// MaxWait is the largest backoff wait.
	MaxWait time.Duration `json:"max_wait" yaml:"max_wait"`
}

// SessionConfig controls session caching for the Public Search client.
type SessionConfig struct {
	// ExpiryMinutes is the locally assumed session TTL. The server does not
	// report an expiry; a stale cache is tolerated via the 403 refresh path.
	ExpiryMinutes int `json:"expiry_minutes" yaml:"expiry_minutes"`

	// CachingEnabled reuses an unexpired session instead of creating a new
	// one per call.
	CachingEnabled bool `json:"caching_enabled" yaml:"caching_enabled"`
}

// TruncationConfig bounds the serialized size of tool responses.
type TruncationConfig struct {
	// Enabled turns response truncation on or off globally.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxResponseTokens is the response size ceiling in token-equivalents
	// (roughly serialized characters / 4).
	MaxResponseTokens int `json:"max_response_tokens" yaml:"max_response_tokens"`

	// MaxResults is the result-list cap applied when truncating.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PPubsConfig holds settings for the USPTO Public Search client.
type PPubsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Public Search portal root (default https://ppubs.uspto.gov).
	BaseURL string `json:"base_url" yaml:"base_url"`

	Retry   RetryConfig   `json:"retry" yaml:"retry"`
	Session SessionConfig `json:"session" yaml:"session"`

	// RateLimitRetryDelay is the fallback wait when a 429 response carries
	// no x-rate-limit-retry-after-seconds header.
	RateLimitRetryDelay time.Duration `json:"rate_limit_retry_delay" yaml:"rate_limit_retry_delay"`

	// PollInterval is the delay between print-job status polls.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// MaxPolls bounds the print-job status loop. The upstream job can in
	// principle never complete; exceeding the bound yields a PDF_TIMEOUT error.
	MaxPolls int `json:"max_polls" yaml:"max_polls"`
}

// ODPConfig holds settings for the key-authenticated api.uspto.gov clients
// (metadata, PTAB, office actions, litigation, enriched citations).
type ODPConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Open Data Portal root (default https://api.uspto.gov).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent as the X-API-KEY header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// PatentsViewConfig holds settings for the PatentsView entity-search client.
type PatentsViewConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the PatentsView API root (default https://search.patentsview.org).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent as the X-Api-Key header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RateLimit is the client-enforced request budget per minute (default 45).
	RateLimit int `json:"rate_limit" yaml:"rate_limit"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// AnalyticsConfig holds settings for the local patent analytics dataset.
type AnalyticsConfig struct {
	// DatabasePath is the SQLite file holding the publications dataset.
	DatabasePath string `json:"database_path" yaml:"database_path"`

	// MaxWorkers bounds concurrent queries; the driver is synchronous.
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`

	// QueryTimeout bounds a single analytics query.
	QueryTimeout time.Duration `json:"query_timeout" yaml:"query_timeout"`

	// MaxResults is the default row cap per query.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all gateway configuration.
type Config struct {
	PPubs       PPubsConfig       `json:"ppubs" yaml:"ppubs"`
	ODP         ODPConfig         `json:"odp" yaml:"odp"`
	PatentsView PatentsViewConfig `json:"patentsview" yaml:"patentsview"`
	Analytics   AnalyticsConfig   `json:"analytics" yaml:"analytics"`
	Truncation  TruncationConfig  `json:"truncation" yaml:"truncation"`
}
