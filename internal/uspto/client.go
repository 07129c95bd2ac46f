// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uspto holds the stateless clients for the key-authenticated USPTO
// APIs on api.uspto.gov: application metadata (Open Data Portal), PTAB trial
// proceedings, office-action text, patent litigation, and enriched citations.
// Every client is a thin parameter-to-request mapping over the shared
// executor; none holds session state.
package uspto

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pdiddy/patent-gateway/internal/httputil"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// core carries the pieces every api.uspto.gov client shares: base URL and
// the retrying executor with the API key installed.
type core struct {
	base string
	exec *httputil.Executor
}

func newCore(cfg types.ODPConfig, logger *slog.Logger) core {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.uspto.gov"
	}
	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}
	if cfg.APIKey != "" {
		headers["X-API-KEY"] = cfg.APIKey
	}
	return core{
		base: cfg.BaseURL,
		exec: &httputil.Executor{
			Client:  &http.Client{Timeout: cfg.Timeout},
			Headers: headers,
			Policy:  httputil.NewRetryPolicy(cfg.Retry),
			Logger:  logger,
		},
	}
}

func (c *core) get(ctx context.Context, path string, params map[string]any) (map[string]any, error) {
	u := c.base + path
	if qs := BuildQueryString(params); qs != "" {
		u += "?" + qs
	}
	return c.exec.Execute(ctx, http.MethodGet, u, nil, nil)
}

func (c *core) post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	return c.exec.Execute(ctx, http.MethodPost, c.base+path, nil, prune(body))
}

// Client is the Open Data Portal applications/datasets client.
type Client struct{ core }

// NewClient builds the ODP client from configuration.
func NewClient(cfg types.ODPConfig, logger *slog.Logger) *Client {
	return &Client{newCore(cfg, logger)}
}

// PTABClient queries Patent Trial and Appeal Board proceedings and decisions.
type PTABClient struct{ core }

func NewPTABClient(cfg types.ODPConfig, logger *slog.Logger) *PTABClient {
	return &PTABClient{newCore(cfg, logger)}
}

// OfficeActionClient queries office-action full text, citations, and
// rejections.
type OfficeActionClient struct{ core }

func NewOfficeActionClient(cfg types.ODPConfig, logger *slog.Logger) *OfficeActionClient {
	return &OfficeActionClient{newCore(cfg, logger)}
}

// LitigationClient queries patent litigation dockets.
type LitigationClient struct{ core }

func NewLitigationClient(cfg types.ODPConfig, logger *slog.Logger) *LitigationClient {
	return &LitigationClient{newCore(cfg, logger)}
}

// CitationClient queries the enriched cited-reference metadata set.
type CitationClient struct{ core }

func NewCitationClient(cfg types.ODPConfig, logger *slog.Logger) *CitationClient {
	return &CitationClient{newCore(cfg, logger)}
}
