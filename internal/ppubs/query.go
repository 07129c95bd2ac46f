// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ppubs

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

// Search paging limits enforced by the portal.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

//go:embed search_query.json
var searchQueryTemplate []byte

// QueryOptions configures one full-text search.
type QueryOptions struct {
	Query              string
	Start              int
	Limit              int
	Sort               string
	Operator           string // default operator between terms: "OR" or "AND"
	Sources            []string
	ExpandPlurals      bool
	BritishEquivalents bool
}

// DefaultQueryOptions returns the portal defaults for a query string.
func DefaultQueryOptions(query string) QueryOptions {
	return QueryOptions{
		Query:              query,
		Limit:              DefaultLimit,
		Sort:               SortDateDesc,
		Operator:           "OR",
		Sources:            AllSources,
		ExpandPlurals:      true,
		BritishEquivalents: true,
	}
}

// buildPayload expands the embedded template into a concrete search request.
// The query string is planted in all three query fields the portal expects,
// and every selected source becomes a database filter.
func buildPayload(caseID int64, opts QueryOptions) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(searchQueryTemplate, &payload); err != nil {
		return nil, envelope.FromErr(err, "loading search template")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	sort := opts.Sort
	if sort == "" {
		sort = SortDateDesc
	}
	op := opts.Operator
	if op == "" {
		op = "OR"
	}
	sources := opts.Sources
	if len(sources) == 0 {
		sources = AllSources
	}

	payload["start"] = opts.Start
	payload["pageCount"] = limit
	payload["sort"] = sort

	query := payload["query"].(map[string]any)
	query["caseId"] = caseID
	query["op"] = op
	query["q"] = opts.Query
	query["queryName"] = opts.Query
	query["userEnteredQuery"] = opts.Query
	query["plurals"] = opts.ExpandPlurals
	query["britishEquivalents"] = opts.BritishEquivalents

	filters := make([]any, 0, len(sources))
	for _, src := range sources {
		filters = append(filters, map[string]any{
			"databaseName": src,
			"countryCodes": []any{},
		})
	}
	query["databaseFilters"] = filters
	return payload, nil
}

// RunQuery executes a full-text search. The portal requires the inner query
// object to be registered against the session via the counts endpoint before
// the family search itself runs.
func (c *Client) RunQuery(ctx context.Context, opts QueryOptions) (map[string]any, error) {
	sess, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := buildPayload(sess.caseID, opts)
	if err != nil {
		return nil, err
	}

	if _, err := c.request(ctx, http.MethodPost, c.cfg.BaseURL+"/api/searches/counts", payload["query"]); err != nil {
		return nil, err
	}

	res, err := c.request(ctx, http.MethodPost, c.cfg.BaseURL+"/api/searches/searchWithBeFamily", payload)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, envelope.New(
			fmt.Sprintf("Search failed: %s", string(res.body)), res.status)
	}

	var result map[string]any
	if err := json.Unmarshal(res.body, &result); err != nil {
		return nil, envelope.FromErr(err, "parsing search response")
	}
	// The portal reports some failures in a 200 body.
	if errObj, ok := result["error"].(map[string]any); ok && errObj != nil {
		msg, _ := errObj["errorMessage"].(string)
		if msg == "" {
			msg = "Search failed"
		}
		code, _ := errObj["errorCode"].(string)
		return nil, &envelope.APIError{Message: msg, Code: code}
	}
	return result, nil
}

// GetDocument fetches the highlighted full text of a single document by GUID
// from the given source collection.
func (c *Client) GetDocument(ctx context.Context, guid, source string) (map[string]any, error) {
	if _, err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("queryId", "1")
	q.Set("source", source)
	q.Set("includeSections", "true")
	u := fmt.Sprintf("%s/api/patents/highlight/%s?%s", c.cfg.BaseURL, url.PathEscape(guid), q.Encode())

	res, err := c.request(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, envelope.New(
			fmt.Sprintf("Failed to fetch document %s: %s", guid, string(res.body)), res.status)
	}

	var doc map[string]any
	if err := json.Unmarshal(res.body, &doc); err != nil {
		return nil, envelope.FromErr(err, "parsing document response")
	}
	return doc, nil
}

// FindPatentByNumber locates a granted patent by number, trying the field
// query first and the .pn. operator syntax as a fallback.
func (c *Client) FindPatentByNumber(ctx context.Context, patentNumber string) (map[string]any, error) {
	for _, q := range []string{
		fmt.Sprintf("patentNumber:%q", patentNumber),
		fmt.Sprintf("%q.pn.", patentNumber),
	} {
		opts := DefaultQueryOptions(q)
		opts.Limit = 1
		opts.Sources = []string{SourceGrantedPatents}
		result, err := c.RunQuery(ctx, opts)
		if err != nil {
			return nil, err
		}
		if doc := firstDoc(result); doc != nil {
			return doc, nil
		}
	}
	return nil, envelope.NotFound("Patent", patentNumber)
}

// firstDoc pulls the first hit out of a search result, or nil when empty.
func firstDoc(result map[string]any) map[string]any {
	for _, key := range []string{"patents", "docs"} {
		if list, ok := result[key].([]any); ok && len(list) > 0 {
			if doc, ok := list[0].(map[string]any); ok {
				return doc
			}
		}
	}
	return nil
}
