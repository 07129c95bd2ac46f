// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"
	"strings"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/validate"
)

// Pagination defaults for the Open Data Portal.
const (
	DefaultLimit        = 25
	DefaultDatasetLimit = 10
)

// SearchOptions are the GET-style search parameters. String fields hold the
// comma-separated forms the API accepts on the query string.
type SearchOptions struct {
	Q            string
	Sort         string
	Offset       int
	Limit        int
	Facets       string
	Fields       string
	Filters      string
	RangeFilters string
}

func (o SearchOptions) params() map[string]any {
	return map[string]any{
		"q":            strOrNil(o.Q),
		"sort":         strOrNil(o.Sort),
		"offset":       o.Offset,
		"limit":        limitOr(o.Limit, DefaultLimit),
		"facets":       strOrNil(o.Facets),
		"fields":       strOrNil(o.Fields),
		"filters":      strOrNil(o.Filters),
		"rangeFilters": strOrNil(o.RangeFilters),
	}
}

// SearchPayload is the POST-style search body: structured filters, sorts,
// and field lists instead of comma-joined strings.
type SearchPayload struct {
	Q            string
	Filters      []map[string]any // [{"name": field, "value": [...]}]
	RangeFilters []map[string]any // [{"field": f, "valueFrom": a, "valueTo": b}]
	Sort         []map[string]any // [{"field": f, "order": "asc"|"desc"}]
	Fields       []string
	Facets       []string
	Offset       int
	Limit        int
}

func (p SearchPayload) body() map[string]any {
	body := map[string]any{
		"q": strOrNil(p.Q),
		"pagination": map[string]any{
			"offset": p.Offset,
			"limit":  limitOr(p.Limit, DefaultLimit),
		},
	}
	if p.Filters != nil {
		body["filters"] = p.Filters
	}
	if p.RangeFilters != nil {
		body["rangeFilters"] = p.RangeFilters
	}
	if p.Sort != nil {
		body["sort"] = p.Sort
	}
	if p.Fields != nil {
		body["fields"] = p.Fields
	}
	if p.Facets != nil {
		body["facets"] = p.Facets
	}
	return body
}

// GetApplication returns the full file-wrapper record for an application.
// The number is normalized first: "14/412,875" and "14412875" are the same
// application.
func (c *Client) GetApplication(ctx context.Context, appNum string) (map[string]any, error) {
	num, err := validate.ApplicationNumber(appNum)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/applications/"+num, nil)
}

// SearchApplications searches applications with query-string parameters.
func (c *Client) SearchApplications(ctx context.Context, opts SearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/applications/search", opts.params())
}

// SearchApplicationsPost searches applications with a JSON payload,
// supporting structured filters and multi-field sorts.
func (c *Client) SearchApplicationsPost(ctx context.Context, payload SearchPayload) (map[string]any, error) {
	return c.post(ctx, "/api/v1/patent/applications/search", payload.body())
}

// DownloadApplications requests a bulk export of matching applications.
// Format is "json" or "csv".
func (c *Client) DownloadApplications(ctx context.Context, opts SearchOptions, format string) (map[string]any, error) {
	params := opts.params()
	if format == "" {
		format = "json"
	}
	params["format"] = format
	return c.get(ctx, "/api/v1/patent/applications/search/download", params)
}

// DownloadApplicationsPost is the JSON-payload variant of DownloadApplications.
func (c *Client) DownloadApplicationsPost(ctx context.Context, payload SearchPayload, format string) (map[string]any, error) {
	body := payload.body()
	if format == "" {
		format = "json"
	}
	body["format"] = format
	return c.post(ctx, "/api/v1/patent/applications/search/download", body)
}

// appResource fetches one sub-resource of an application record.
func (c *Client) appResource(ctx context.Context, appNum, suffix string) (map[string]any, error) {
	num, err := validate.ApplicationNumber(appNum)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/applications/"+num+"/"+suffix, nil)
}

// GetAppMetadata returns bibliographic metadata for an application.
func (c *Client) GetAppMetadata(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "meta-data")
}

// GetAppAdjustment returns patent-term adjustment data.
func (c *Client) GetAppAdjustment(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "adjustment")
}

// GetAppAssignment returns assignment (ownership) data.
func (c *Client) GetAppAssignment(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "assignment")
}

// GetAppAttorney returns attorney/agent-of-record data.
func (c *Client) GetAppAttorney(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "attorney")
}

// GetAppContinuity returns parent/child continuity data.
func (c *Client) GetAppContinuity(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "continuity")
}

// GetAppForeignPriority returns foreign priority claims.
func (c *Client) GetAppForeignPriority(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "foreign-priority")
}

// GetAppTransactions returns the prosecution transaction history.
func (c *Client) GetAppTransactions(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "transactions")
}

// GetAppDocuments returns file-wrapper document details.
func (c *Client) GetAppDocuments(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "documents")
}

// GetAppAssociatedDocuments returns associated-documents metadata.
func (c *Client) GetAppAssociatedDocuments(ctx context.Context, appNum string) (map[string]any, error) {
	return c.appResource(ctx, appNum, "associated-documents")
}

// GetStatusCodes searches application status codes.
func (c *Client) GetStatusCodes(ctx context.Context, q string, offset, limit int) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/status-codes", map[string]any{
		"q":      strOrNil(q),
		"offset": offset,
		"limit":  limitOr(limit, DefaultLimit),
	})
}

// GetStatusCodesPost is the JSON-payload variant of GetStatusCodes.
func (c *Client) GetStatusCodesPost(ctx context.Context, q string, offset, limit int) (map[string]any, error) {
	return c.post(ctx, "/api/v1/patent/status-codes", map[string]any{
		"q": strOrNil(q),
		"pagination": map[string]any{
			"offset": offset,
			"limit":  limitOr(limit, DefaultLimit),
		},
	})
}

// DatasetSearchOptions filter the bulk-dataset product catalog.
type DatasetSearchOptions struct {
	Q                  string
	ProductTitle       string
	ProductDescription string
	ProductShortName   string
	Offset             int
	Limit              int
	Facets             string
	IncludeFiles       bool
	Latest             bool
	Labels             string
	Categories         string
	Datasets           string
	FileTypes          string
}

// SearchDatasets searches bulk-dataset products.
func (c *Client) SearchDatasets(ctx context.Context, opts DatasetSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/datasets/products/search", map[string]any{
		"q":                  strOrNil(opts.Q),
		"productTitle":       strOrNil(opts.ProductTitle),
		"productDescription": strOrNil(opts.ProductDescription),
		"productShortName":   strOrNil(opts.ProductShortName),
		"offset":             opts.Offset,
		"limit":              limitOr(opts.Limit, DefaultDatasetLimit),
		"facets":             strOrNil(opts.Facets),
		"includeFiles":       opts.IncludeFiles,
		"latest":             opts.Latest,
		"labels":             strOrNil(opts.Labels),
		"categories":         strOrNil(opts.Categories),
		"datasets":           strOrNil(opts.Datasets),
		"fileTypes":          strOrNil(opts.FileTypes),
	})
}

// ProductFileOptions filter the files attached to one dataset product.
type ProductFileOptions struct {
	FileDataFromDate string // YYYY-MM-DD
	FileDataToDate   string // YYYY-MM-DD
	Offset           int
	Limit            int
	IncludeFiles     bool
	Latest           bool
}

// GetDatasetProduct fetches one bulk-dataset product by its short name.
func (c *Client) GetDatasetProduct(ctx context.Context, productID string, opts ProductFileOptions) (map[string]any, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, envelope.Validation("product_id must not be blank", "product_id")
	}
	params := map[string]any{
		"fileDataFromDate": strOrNil(opts.FileDataFromDate),
		"fileDataToDate":   strOrNil(opts.FileDataToDate),
		"includeFiles":     opts.IncludeFiles,
		"latest":           opts.Latest,
	}
	if opts.Offset > 0 {
		params["offset"] = opts.Offset
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}
	return c.get(ctx, "/api/v1/datasets/products/"+productID, params)
}
