// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles gateway configuration from, in increasing
// precedence: built-in defaults, an optional YAML config file, a .env file,
// environment variables, and a .secrets/ directory of key files.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Env keys read by the gateway. These are flat names rather than a nested
// prefix scheme so an existing deployment's variables keep working.
const (
	envPPubsBaseURL        = "PPUBS_BASE_URL"
	envAPIBaseURL          = "API_BASE_URL"
	envPatentsViewBaseURL  = "PATENTSVIEW_BASE_URL"
	envUSPTOAPIKey         = "USPTO_API_KEY"
	envPatentsViewAPIKey   = "PATENTSVIEW_API_KEY"
	envRequestTimeout      = "REQUEST_TIMEOUT"
	envMaxRetries          = "MAX_RETRIES"
	envRetryDelay          = "RETRY_DELAY"
	envRetryMinWait        = "RETRY_MIN_WAIT"
	envRetryMaxWait        = "RETRY_MAX_WAIT"
	envSessionExpiry       = "SESSION_EXPIRY_MINUTES"
	envEnableCaching       = "ENABLE_CACHING"
	envRateLimitRetryDelay = "RATE_LIMIT_RETRY_DELAY"
	envPDFPollInterval     = "PDF_POLL_INTERVAL"
	envPDFMaxPolls         = "PDF_MAX_POLLS"
	envMaxResponseTokens   = "MAX_RESPONSE_TOKENS"
	envTruncateResponses   = "TRUNCATE_LARGE_RESPONSES"
	envTruncateMaxResults  = "TRUNCATE_MAX_RESULTS"
	envPatentsViewRate     = "PATENTSVIEW_RATE_LIMIT"
	envAnalyticsDBPath     = "ANALYTICS_DB_PATH"
	envAnalyticsWorkers    = "ANALYTICS_MAX_WORKERS"
	envAnalyticsTimeout    = "ANALYTICS_QUERY_TIMEOUT"
	envAnalyticsMaxResults = "ANALYTICS_MAX_RESULTS"
	envUserAgent           = "USER_AGENT"
)

// UserAgent identifies the gateway to the upstream services.
const UserAgent = "patent-gateway/1.0"

// Load builds the full configuration. configFile may be empty; a missing
// .env file is not an error. secretsDir ("" to skip) overlays API keys from
// a directory of plain-text key files.
func Load(configFile, secretsDir string) (*types.Config, error) {
	// .env values become process env vars so viper's env binding sees them.
	// Existing env vars win over .env contents.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := fromViper(v)
	if secretsDir != "" {
		if err := overlaySecrets(cfg, secretsDir); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(envPPubsBaseURL, "https://ppubs.uspto.gov")
	v.SetDefault(envAPIBaseURL, "https://api.uspto.gov")
	v.SetDefault(envPatentsViewBaseURL, "https://search.patentsview.org")
	v.SetDefault(envRequestTimeout, "30s")
	v.SetDefault(envMaxRetries, 3)
	v.SetDefault(envRetryDelay, 1.0)
	v.SetDefault(envRetryMinWait, "2s")
	v.SetDefault(envRetryMaxWait, "10s")
	v.SetDefault(envSessionExpiry, 30)
	v.SetDefault(envEnableCaching, true)
	v.SetDefault(envRateLimitRetryDelay, "5s")
	v.SetDefault(envPDFPollInterval, "1s")
	v.SetDefault(envPDFMaxPolls, 120)
	v.SetDefault(envMaxResponseTokens, 20000)
	v.SetDefault(envTruncateResponses, true)
	v.SetDefault(envTruncateMaxResults, 20)
	v.SetDefault(envPatentsViewRate, 45)
	v.SetDefault(envAnalyticsDBPath, "analytics.db")
	v.SetDefault(envAnalyticsWorkers, 4)
	v.SetDefault(envAnalyticsTimeout, "30s")
	v.SetDefault(envAnalyticsMaxResults, 25)
	v.SetDefault(envUserAgent, UserAgent)
}

func fromViper(v *viper.Viper) *types.Config {
	http := types.HTTPConfig{
		Timeout:   v.GetDuration(envRequestTimeout),
		UserAgent: v.GetString(envUserAgent),
	}
	retry := types.RetryConfig{
		MaxAttempts: v.GetInt(envMaxRetries),
		Multiplier:  v.GetFloat64(envRetryDelay),
		MinWait:     v.GetDuration(envRetryMinWait),
		MaxWait:     v.GetDuration(envRetryMaxWait),
	}

	return &types.Config{
		PPubs: types.PPubsConfig{
			HTTPConfig: http,
			BaseURL:    v.GetString(envPPubsBaseURL),
			Retry:      retry,
			Session: types.SessionConfig{
				ExpiryMinutes:  v.GetInt(envSessionExpiry),
				CachingEnabled: v.GetBool(envEnableCaching),
			},
			RateLimitRetryDelay: v.GetDuration(envRateLimitRetryDelay),
			PollInterval:        v.GetDuration(envPDFPollInterval),
			MaxPolls:            v.GetInt(envPDFMaxPolls),
		},
		ODP: types.ODPConfig{
			HTTPConfig: http,
			BaseURL:    v.GetString(envAPIBaseURL),
			APIKey:     v.GetString(envUSPTOAPIKey),
			Retry:      retry,
		},
		PatentsView: types.PatentsViewConfig{
			HTTPConfig: http,
			BaseURL:    v.GetString(envPatentsViewBaseURL),
			APIKey:     v.GetString(envPatentsViewAPIKey),
			RateLimit:  v.GetInt(envPatentsViewRate),
			Retry:      retry,
		},
		Analytics: types.AnalyticsConfig{
			DatabasePath: v.GetString(envAnalyticsDBPath),
			MaxWorkers:   v.GetInt(envAnalyticsWorkers),
			QueryTimeout: v.GetDuration(envAnalyticsTimeout),
			MaxResults:   v.GetInt(envAnalyticsMaxResults),
		},
		Truncation: types.TruncationConfig{
			Enabled:           v.GetBool(envTruncateResponses),
			MaxResponseTokens: v.GetInt(envMaxResponseTokens),
			MaxResults:        v.GetInt(envTruncateMaxResults),
		},
	}
}
