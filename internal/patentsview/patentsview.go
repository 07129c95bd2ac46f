// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patentsview implements the client for the PatentsView Search API
// (search.patentsview.org): disambiguated patents, assignees, inventors,
// attorneys, classifications, and full-text claim/description entities.
//
// The API enforces a 45-requests-per-minute quota per key. The client
// throttles pre-emptively with a token bucket at the configured rate and,
// should a 429 still get through, replays the request once after a pause.
package patentsview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/httputil"
	"github.com/pdiddy/patent-gateway/internal/validate"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// MaxPageSize is the largest page the API accepts.
const MaxPageSize = 1000

// rateLimitRetryWait is the pause before the single 429 replay. Package var
// so tests can shrink it.
var rateLimitRetryWait = 10 * time.Second

// Options are the request options forwarded as the API's "o" parameter.
type Options struct {
	Size             int
	After            string // pagination cursor from the previous page
	ExcludeWithdrawn bool
}

// Client is the PatentsView Search API client.
type Client struct {
	base    string
	exec    *httputil.Executor
	limiter *rate.Limiter
	log     *slog.Logger
}

// New builds a Client from configuration.
func New(cfg types.PatentsViewConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://search.patentsview.org"
	}
	perMinute := cfg.RateLimit
	if perMinute <= 0 {
		perMinute = 45
	}
	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}
	if cfg.APIKey != "" {
		headers["X-Api-Key"] = cfg.APIKey
	}
	return &Client{
		base: cfg.BaseURL,
		exec: &httputil.Executor{
			Client:  &http.Client{Timeout: cfg.Timeout},
			Headers: headers,
			Policy:  httputil.NewRetryPolicy(cfg.Retry),
			Logger:  logger,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		log:     logger,
	}
}

// query issues one entity query: POST {q, f, s, o} to the entity endpoint.
func (c *Client) query(ctx context.Context, entity string, q map[string]any, fields []string, sort []map[string]string, opts *Options) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, envelope.FromErr(err, "waiting for rate limiter")
	}

	body := map[string]any{"q": q}
	if len(fields) > 0 {
		body["f"] = fields
	}
	if len(sort) > 0 {
		body["s"] = sort
	}
	if opts != nil {
		o := map[string]any{}
		if opts.Size > 0 {
			size := opts.Size
			if size > MaxPageSize {
				size = MaxPageSize
			}
			o["size"] = size
		}
		if opts.After != "" {
			o["after"] = opts.After
		}
		if opts.ExcludeWithdrawn {
			o["exclude_withdrawn"] = true
		}
		if len(o) > 0 {
			body["o"] = o
		}
	}

	u := c.base + "/api/v1/" + entity + "/"
	result, err := c.exec.Execute(ctx, http.MethodPost, u, nil, body)
	if err == nil {
		return result, nil
	}

	// The pre-emptive throttle should prevent this, but other consumers of
	// the same key can exhaust the quota. One replay after a pause.
	var apiErr *envelope.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		c.log.Info("patentsview rate limited, replaying once", "entity", entity)
		select {
		case <-ctx.Done():
			return nil, envelope.FromErr(ctx.Err(), "waiting out rate limit")
		case <-time.After(rateLimitRetryWait):
		}
		return c.exec.Execute(ctx, http.MethodPost, u, nil, body)
	}
	return nil, err
}

// SearchPatents runs an arbitrary query object against the patent entity.
func (c *Client) SearchPatents(ctx context.Context, q map[string]any, fields []string, sort []map[string]string, opts Options) (map[string]any, error) {
	return c.query(ctx, "patent", q, fields, sort, &opts)
}

// GetPatent fetches one patent by its PatentsView id (the patent number).
func (c *Client) GetPatent(ctx context.Context, patentID string) (map[string]any, error) {
	num, err := validate.PatentNumber(patentID)
	if err != nil {
		return nil, err
	}
	return c.query(ctx, "patent", map[string]any{"patent_id": num}, nil, nil, nil)
}

// TextSearchMode selects how SearchByText matches the given words.
type TextSearchMode string

const (
	TextAny    TextSearchMode = "any"    // any of the words
	TextAll    TextSearchMode = "all"    // all of the words
	TextPhrase TextSearchMode = "phrase" // the exact phrase
)

// SearchByText searches patent titles and abstracts for the given text.
func (c *Client) SearchByText(ctx context.Context, text string, mode TextSearchMode, opts Options) (map[string]any, error) {
	if _, err := validate.Query(text); err != nil {
		return nil, err
	}
	var op string
	switch mode {
	case TextAll:
		op = "_text_all"
	case TextPhrase:
		op = "_text_phrase"
	default:
		op = "_text_any"
	}
	q := map[string]any{
		"_or": []any{
			map[string]any{op: map[string]any{"patent_title": text}},
			map[string]any{op: map[string]any{"patent_abstract": text}},
		},
	}
	return c.query(ctx, "patent", q, nil, nil, &opts)
}

// SearchAssignees searches disambiguated assignees by organization name.
func (c *Client) SearchAssignees(ctx context.Context, organization string, opts Options) (map[string]any, error) {
	if _, err := validate.Query(organization); err != nil {
		return nil, err
	}
	q := map[string]any{"_contains": map[string]any{"assignee_organization": organization}}
	return c.query(ctx, "assignee", q, nil, nil, &opts)
}

// GetAssignee fetches one assignee by its disambiguated id.
func (c *Client) GetAssignee(ctx context.Context, assigneeID string) (map[string]any, error) {
	if _, err := validate.Query(assigneeID); err != nil {
		return nil, err
	}
	return c.query(ctx, "assignee", map[string]any{"assignee_id": assigneeID}, nil, nil, nil)
}

// SearchInventors searches disambiguated inventors by name. Either part may
// be empty.
func (c *Client) SearchInventors(ctx context.Context, firstName, lastName string, opts Options) (map[string]any, error) {
	clauses := []any{}
	if firstName != "" {
		clauses = append(clauses, map[string]any{"_contains": map[string]any{"inventor_name_first": firstName}})
	}
	if lastName != "" {
		clauses = append(clauses, map[string]any{"_contains": map[string]any{"inventor_name_last": lastName}})
	}
	if len(clauses) == 0 {
		return nil, envelope.Validation("at least one of first_name or last_name is required", "last_name")
	}
	q := map[string]any{"_and": clauses}
	return c.query(ctx, "inventor", q, nil, nil, &opts)
}

// GetInventor fetches one inventor by its disambiguated id.
func (c *Client) GetInventor(ctx context.Context, inventorID string) (map[string]any, error) {
	if _, err := validate.Query(inventorID); err != nil {
		return nil, err
	}
	return c.query(ctx, "inventor", map[string]any{"inventor_id": inventorID}, nil, nil, nil)
}

// SearchAttorneys searches attorneys/agents of record by organization name.
func (c *Client) SearchAttorneys(ctx context.Context, organization string, opts Options) (map[string]any, error) {
	if _, err := validate.Query(organization); err != nil {
		return nil, err
	}
	q := map[string]any{"_contains": map[string]any{"attorney_organization": organization}}
	return c.query(ctx, "attorney", q, nil, nil, &opts)
}

// GetPatentClaims fetches the granted claims text for one patent.
func (c *Client) GetPatentClaims(ctx context.Context, patentID string, opts Options) (map[string]any, error) {
	num, err := validate.PatentNumber(patentID)
	if err != nil {
		return nil, err
	}
	sort := []map[string]string{{"claim_sequence": "asc"}}
	return c.query(ctx, "g_claim", map[string]any{"patent_id": num}, nil, sort, &opts)
}

// GetPatentSummary fetches the brief-summary text for one patent.
func (c *Client) GetPatentSummary(ctx context.Context, patentID string) (map[string]any, error) {
	num, err := validate.PatentNumber(patentID)
	if err != nil {
		return nil, err
	}
	return c.query(ctx, "g_brf_sum_text", map[string]any{"patent_id": num}, nil, nil, nil)
}

// GetPatentDescription fetches the detailed-description text for one patent.
func (c *Client) GetPatentDescription(ctx context.Context, patentID string, opts Options) (map[string]any, error) {
	num, err := validate.PatentNumber(patentID)
	if err != nil {
		return nil, err
	}
	return c.query(ctx, "g_detail_desc_text", map[string]any{"patent_id": num}, nil, nil, &opts)
}

// SearchByCPC finds patents classified under a CPC group (e.g. "G06N10/00").
func (c *Client) SearchByCPC(ctx context.Context, cpcGroup string, opts Options) (map[string]any, error) {
	if _, err := validate.Query(cpcGroup); err != nil {
		return nil, err
	}
	q := map[string]any{"cpc_current.cpc_group_id": cpcGroup}
	return c.query(ctx, "patent", q, nil, nil, &opts)
}

// LookupCPCClass fetches one CPC class record (e.g. "G06").
func (c *Client) LookupCPCClass(ctx context.Context, classID string) (map[string]any, error) {
	if _, err := validate.Query(classID); err != nil {
		return nil, err
	}
	return c.query(ctx, "cpc_class", map[string]any{"cpc_class_id": classID}, nil, nil, nil)
}

// LookupCPCGroup fetches one CPC group record.
func (c *Client) LookupCPCGroup(ctx context.Context, groupID string) (map[string]any, error) {
	if _, err := validate.Query(groupID); err != nil {
		return nil, err
	}
	return c.query(ctx, "cpc_group", map[string]any{"cpc_group_id": groupID}, nil, nil, nil)
}

// SearchPublications runs a query against pre-grant publications.
func (c *Client) SearchPublications(ctx context.Context, q map[string]any, fields []string, sort []map[string]string, opts Options) (map[string]any, error) {
	return c.query(ctx, "publication", q, fields, sort, &opts)
}

// GetForeignCitations fetches the foreign references cited by one patent.
func (c *Client) GetForeignCitations(ctx context.Context, patentID string, opts Options) (map[string]any, error) {
	num, err := validate.PatentNumber(patentID)
	if err != nil {
		return nil, err
	}
	return c.query(ctx, "patent/foreign_citation", map[string]any{"patent_id": num}, nil, nil, &opts)
}
