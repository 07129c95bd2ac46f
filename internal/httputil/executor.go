// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

// Executor issues one HTTP call with the retry policy applied and classifies
// the outcome. 2xx responses come back as parsed JSON, untouched; everything
// else becomes a typed *envelope.APIError for the caller to surface. The
// stateless API clients use it directly.
type Executor struct {
	Client  *http.Client
	Headers map[string]string
	Policy  RetryPolicy
	Logger  *slog.Logger
}

// Execute performs a GET or POST against url. headers are merged over the
// executor's defaults; a non-nil body is JSON-encoded. Any method other than
// GET or POST is rejected without a network call.
func (e *Executor) Execute(ctx context.Context, method, url string, headers map[string]string, body any) (map[string]any, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, envelope.New(fmt.Sprintf("Unsupported HTTP method: %s", method), 400)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, envelope.FromErr(err, "encoding request body")
		}
	}

	log := e.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("outbound request", "method", method, "url", url)

	resp, err := e.Policy.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		for k, v := range e.Headers {
			req.Header.Set(k, v)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return e.Client.Do(req)
	})
	if err != nil {
		return nil, envelope.FromErr(err, fmt.Sprintf("Request to %s failed", url))
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, envelope.FromErr(err, fmt.Sprintf("Reading response from %s", url))
	}

	log.Info("outbound response", "status", resp.StatusCode, "url", url)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, envelope.FromResponse(resp.StatusCode, text)
	}

	var parsed map[string]any
	if err := json.Unmarshal(text, &parsed); err != nil {
		return nil, envelope.FromErr(err, fmt.Sprintf("Parsing response from %s", url))
	}
	return parsed, nil
}
