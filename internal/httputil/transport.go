// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"log/slog"
	"net/http"
)

// LoggingTransport wraps a RoundTripper and logs one line per request
// (method and URL) and one per response (status). Operational only; nothing
// depends on these lines.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewLoggingTransport wraps base, defaulting to http.DefaultTransport and
// slog.Default when unset.
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{Base: base, Logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.Logger.Debug("request", "method", req.Method, "url", req.URL.String())

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "err", err)
		return nil, err
	}

	t.Logger.Debug("response", "status", resp.StatusCode, "url", req.URL.String())
	return resp, nil
}
