// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ppubs implements the session-aware client for USPTO Public Search
// (ppubs.uspto.gov): full-text search, document retrieval, and the
// asynchronous print/poll/download workflow for patent PDFs.
//
// The portal requires a server-side session. The client establishes one
// lazily, caches it against a locally computed expiry, refreshes it when the
// portal rejects a request with 403, and honors 429 rate-limit backoff.
package ppubs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"sync"
	"time"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/httputil"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Document source tags used by the portal.
const (
	SourceGrantedPatents        = "USPAT"
	SourcePublishedApplications = "US-PGPUB"
	SourceOCR                   = "USOCR"
)

// AllSources is the default search scope: everything.
var AllSources = []string{SourcePublishedApplications, SourceGrantedPatents, SourceOCR}

// Sort orders accepted by the portal.
const (
	SortDateDesc = "date_publ desc"
	SortDateAsc  = "date_publ asc"
)

// retryAfterHeader carries the server-supplied backoff on 429 responses.
const retryAfterHeader = "x-rate-limit-retry-after-seconds"

// sleepFunc waits for d or until ctx is done. Tests substitute it to avoid
// real sleeps.
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// session is the authenticated interaction context issued by the portal.
// It is replaced wholesale on refresh, never mutated.
type session struct {
	caseID      int64
	accessToken string
	expiresAt   time.Time // zero when caching is disabled
	raw         map[string]any
}

// Client is the session-aware Public Search client. One instance owns one
// cookie-bearing HTTP client and at most one live session; session state is
// never shared across instances or persisted.
type Client struct {
	cfg    types.PPubsConfig
	hc     *http.Client
	policy httputil.RetryPolicy
	log    *slog.Logger

	mu   sync.Mutex
	sess *session
}

// New builds a Client from configuration.
func New(cfg types.PPubsConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://ppubs.uspto.gov"
	}
	if cfg.RateLimitRetryDelay <= 0 {
		cfg.RateLimitRetryDelay = 5 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 120
	}
	if cfg.Session.ExpiryMinutes <= 0 {
		cfg.Session.ExpiryMinutes = 30
	}

	jar, _ := cookiejar.New(nil)
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.Timeout,
			Jar:       jar,
			Transport: httputil.NewLoggingTransport(nil, logger),
		},
		policy: httputil.NewRetryPolicy(cfg.Retry),
		log:    logger,
	}
}

// baseHeaders returns the portal headers sent with every request.
func (c *Client) baseHeaders() map[string]string {
	return map[string]string{
		"X-Requested-With": "XMLHttpRequest",
		"User-Agent":       c.cfg.UserAgent,
		"Origin":           c.cfg.BaseURL,
		"Referer":          c.cfg.BaseURL + "/pubwebapp/",
		"Pragma":           "no-cache",
		"Cache-Control":    "no-cache",
	}
}

// currentSession returns the held session, which may be nil.
func (c *Client) currentSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// ensureSession returns a valid session, reusing an unexpired cached one
// without any network traffic, and establishing a new one otherwise.
func (c *Client) ensureSession(ctx context.Context) (*session, error) {
	c.mu.Lock()
	s := c.sess
	c.mu.Unlock()

	if s != nil {
		if !c.cfg.Session.CachingEnabled {
			return s, nil
		}
		if time.Now().Before(s.expiresAt) {
			c.log.Debug("using cached session", "case_id", s.caseID)
			return s, nil
		}
		c.log.Info("cached session expired locally", "case_id", s.caseID)
	}
	return c.establishSession(ctx)
}

// establishSession performs the full establishment round-trip: a landing-page
// GET to acquire cookies, then a session-creation POST. On success the new
// session replaces any previously held one.
func (c *Client) establishSession(ctx context.Context) (*session, error) {
	c.log.Info("establishing session with USPTO Public Search")

	// Fresh cookie state for the new session.
	jar, _ := cookiejar.New(nil)
	c.hc.Jar = jar

	landing, err := c.rawDo(ctx, http.MethodGet, c.cfg.BaseURL+"/pubwebapp/", nil, nil)
	if err != nil {
		return nil, envelope.FromErr(err, "Session establishment failed")
	}
	io.Copy(io.Discard, landing.Body)
	landing.Body.Close()

	body, err := json.Marshal(-1)
	if err != nil {
		return nil, envelope.FromErr(err, "Session establishment failed")
	}
	resp, err := c.rawDo(ctx, http.MethodPost, c.cfg.BaseURL+"/api/users/me/session", body, map[string]string{
		"X-Access-Token": "null",
		"Content-Type":   "application/json",
	})
	if err != nil {
		return nil, envelope.FromErr(err, "Session establishment failed")
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, envelope.FromErr(err, "Session establishment failed")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, envelope.New(
			fmt.Sprintf("Failed to establish session: %s", string(text)), resp.StatusCode)
	}

	var raw map[string]any
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, envelope.FromErr(err, "Parsing session response")
	}
	userCase, _ := raw["userCase"].(map[string]any)
	caseNum, ok := userCase["caseId"].(float64)
	if !ok {
		return nil, envelope.New("Session response missing userCase.caseId", 0)
	}

	s := &session{
		caseID:      int64(caseNum),
		accessToken: resp.Header.Get("X-Access-Token"),
		raw:         raw,
	}
	if c.cfg.Session.CachingEnabled {
		s.expiresAt = time.Now().Add(time.Duration(c.cfg.Session.ExpiryMinutes) * time.Minute)
	}

	c.mu.Lock()
	c.sess = s
	c.mu.Unlock()

	c.log.Info("session established", "case_id", s.caseID)
	return s, nil
}

// rawDo issues one request with the portal base headers and the retry policy
// applied, without any 403/429 handling. Used during session establishment.
func (c *Client) rawDo(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	return c.policy.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		for k, v := range c.baseHeaders() {
			req.Header.Set(k, v)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return c.hc.Do(req)
	})
}

// rawResult is a fully drained HTTP response.
type rawResult struct {
	status int
	header http.Header
	body   []byte
}

// request issues an authenticated call. On 403 the session is re-established
// once and the request replayed; on 429 the server-supplied backoff is waited
// out (+1 s) and the request replayed. Each recovery happens at most once per
// call, and both may compose in either order. Transient network failures are
// retried by the policy before any of this.
func (c *Client) request(ctx context.Context, method, url string, body any) (*rawResult, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, envelope.FromErr(err, "encoding request body")
		}
	}

	res, err := c.authedDo(ctx, method, url, payload)
	if err != nil {
		return nil, envelope.FromErr(err, fmt.Sprintf("Request to %s failed", url))
	}

	refreshed, waited := false, false
	for {
		switch {
		case res.status == http.StatusForbidden && !refreshed:
			refreshed = true
			c.log.Info("session rejected, refreshing", "url", url)
			if _, err := c.establishSession(ctx); err != nil {
				return nil, err
			}
		case res.status == http.StatusTooManyRequests && !waited:
			waited = true
			wait := c.retryAfter(res.header)
			c.log.Info("rate limited", "wait", wait, "url", url)
			if err := sleepFunc(ctx, wait); err != nil {
				return nil, envelope.FromErr(err, "Rate-limit wait interrupted")
			}
		default:
			return res, nil
		}

		res, err = c.authedDo(ctx, method, url, payload)
		if err != nil {
			return nil, envelope.FromErr(err, fmt.Sprintf("Request to %s failed", url))
		}
	}
}

// retryAfter reads the 429 backoff header, falling back to the configured
// default, and adds one second of slack.
func (c *Client) retryAfter(h http.Header) time.Duration {
	wait := c.cfg.RateLimitRetryDelay
	if v := h.Get(retryAfterHeader); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			wait = time.Duration(secs) * time.Second
		}
	}
	return wait + time.Second
}

// authedDo performs one policy-wrapped request carrying the session token,
// and drains the response.
func (c *Client) authedDo(ctx context.Context, method, url string, payload []byte) (*rawResult, error) {
	resp, err := c.policy.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		for k, v := range c.baseHeaders() {
			req.Header.Set(k, v)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if s := c.currentSession(); s != nil {
			req.Header.Set("X-Access-Token", s.accessToken)
		}
		return c.hc.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &rawResult{status: resp.StatusCode, header: resp.Header, body: text}, nil
}
