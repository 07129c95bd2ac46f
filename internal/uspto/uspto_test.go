// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

func TestBuildQueryString(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   string
	}{
		{"empty", nil, ""},
		{"nil values skipped", map[string]any{"q": nil, "limit": 25}, "limit=25"},
		{"bool lowercased", map[string]any{"latest": true, "includeFiles": false}, "includeFiles=false&latest=true"},
		{"list comma joined", map[string]any{"fileTypes": []string{"json", "csv"}}, "fileTypes=json%2Ccsv"},
		{"sorted keys", map[string]any{"b": 2, "a": 1, "c": 3}, "a=1&b=2&c=3"},
		{"escaped value", map[string]any{"q": "applicationNumberText:14412875 AND x"}, "q=applicationNumberText%3A14412875+AND+x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQueryString(tt.params)
			if got != tt.want {
				t.Errorf("BuildQueryString() = %q, want %q", got, tt.want)
			}
		})
	}
}

// recordedRequest captures what the fake API saw.
type recordedRequest struct {
	method string
	path   string
	query  string
	apiKey string
	body   map[string]any
}

func newFakeAPI(t *testing.T, status int, response any) (*httptest.Server, *recordedRequest, *atomic.Int64) {
	t.Helper()
	var rec recordedRequest
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.apiKey = r.Header.Get("X-API-KEY")
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)
	return srv, &rec, &calls
}

func testConfig(baseURL string) types.ODPConfig {
	return types.ODPConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "patent-gateway-test"},
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Retry:      types.RetryConfig{MaxAttempts: 1, Multiplier: 0.001, MinWait: time.Millisecond, MaxWait: time.Millisecond},
	}
}

func TestGetApplicationNormalizesNumber(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{"count": 1})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.GetApplication(context.Background(), "14/412,875")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/applications/14412875", rec.path)
	assert.Equal(t, "test-key", rec.apiKey)
	assert.Equal(t, http.MethodGet, rec.method)
}

func TestGetApplicationRejectsMalformedNumberWithoutNetworkCall(t *testing.T) {
	srv, _, calls := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.GetApplication(context.Background(), "abc")
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, envelope.CodeValidation, apiErr.Code)
	assert.Equal(t, int64(0), calls.Load())
}

func TestSearchApplicationsDefaults(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{"count": 0})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.SearchApplications(context.Background(), SearchOptions{Q: "inventionTitle:drone"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/applications/search", rec.path)
	assert.Equal(t, "limit=25&offset=0&q=inventionTitle%3Adrone", rec.query)
}

func TestSearchApplicationsPostBody(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{"count": 0})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.SearchApplicationsPost(context.Background(), SearchPayload{
		Q:       "applicationNumberText:14412875",
		Filters: []map[string]any{{"name": "applicationStatusDescriptionText", "value": []string{"Patented Case"}}},
		Sort:    []map[string]any{{"field": "applicationMetaData.filingDate", "order": "desc"}},
		Offset:  10,
		Limit:   50,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "applicationNumberText:14412875", rec.body["q"])
	pagination := rec.body["pagination"].(map[string]any)
	assert.Equal(t, float64(10), pagination["offset"])
	assert.Equal(t, float64(50), pagination["limit"])
	require.Len(t, rec.body["filters"], 1)
}

func TestAppSubResourcePaths(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewClient(testConfig(srv.URL), nil)
	ctx := context.Background()

	tests := []struct {
		call func() (map[string]any, error)
		path string
	}{
		{func() (map[string]any, error) { return c.GetAppMetadata(ctx, "14412875") }, "/api/v1/patent/applications/14412875/meta-data"},
		{func() (map[string]any, error) { return c.GetAppAdjustment(ctx, "14412875") }, "/api/v1/patent/applications/14412875/adjustment"},
		{func() (map[string]any, error) { return c.GetAppAssignment(ctx, "14412875") }, "/api/v1/patent/applications/14412875/assignment"},
		{func() (map[string]any, error) { return c.GetAppAttorney(ctx, "14412875") }, "/api/v1/patent/applications/14412875/attorney"},
		{func() (map[string]any, error) { return c.GetAppContinuity(ctx, "14412875") }, "/api/v1/patent/applications/14412875/continuity"},
		{func() (map[string]any, error) { return c.GetAppForeignPriority(ctx, "14412875") }, "/api/v1/patent/applications/14412875/foreign-priority"},
		{func() (map[string]any, error) { return c.GetAppTransactions(ctx, "14412875") }, "/api/v1/patent/applications/14412875/transactions"},
		{func() (map[string]any, error) { return c.GetAppDocuments(ctx, "14412875") }, "/api/v1/patent/applications/14412875/documents"},
		{func() (map[string]any, error) { return c.GetAppAssociatedDocuments(ctx, "14412875") }, "/api/v1/patent/applications/14412875/associated-documents"},
	}
	for _, tt := range tests {
		_, err := tt.call()
		require.NoError(t, err)
		assert.Equal(t, tt.path, rec.path)
	}
}

func TestGetStatusCodesPostBody(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.GetStatusCodesPost(context.Background(), "allowed", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/status-codes", rec.path)
	assert.Equal(t, "allowed", rec.body["q"])
	pagination := rec.body["pagination"].(map[string]any)
	assert.Equal(t, float64(25), pagination["limit"]) // default fills in
}

func TestSearchDatasetsDefaults(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.SearchDatasets(context.Background(), DatasetSearchOptions{Q: "patent grant", IncludeFiles: true})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/datasets/products/search", rec.path)
	assert.Contains(t, rec.query, "limit=10")
	assert.Contains(t, rec.query, "includeFiles=true")
	assert.Contains(t, rec.query, "latest=false")
}

func TestGetDatasetProductBlankID(t *testing.T) {
	srv, _, calls := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.GetDatasetProduct(context.Background(), "  ", ProductFileOptions{})
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, envelope.CodeValidation, apiErr.Code)
	assert.Equal(t, int64(0), calls.Load())
}

func TestHTTPErrorBecomesAPIError(t *testing.T) {
	srv, _, _ := newFakeAPI(t, http.StatusNotFound, map[string]any{
		"error": "No application found for 99999999",
	})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.GetApplication(context.Background(), "99999999")
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No application found for 99999999", apiErr.Message)
}

func TestPTABPaths(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewPTABClient(testConfig(srv.URL), nil)
	ctx := context.Background()

	_, err := c.SearchProceedings(ctx, ProceedingSearchOptions{PatentNumber: "7654321", ProceedingType: "IPR"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/ptab/proceedings", rec.path)
	assert.Contains(t, rec.query, "patentNumber=7654321")
	assert.Contains(t, rec.query, "proceedingTypeCategory=IPR")

	_, err = c.GetProceeding(ctx, "IPR2023-00001")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/ptab/proceedings/IPR2023-00001", rec.path)

	_, err = c.GetProceedingDocuments(ctx, "IPR2023-00001", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/ptab/proceedings/IPR2023-00001/documents", rec.path)
	assert.Contains(t, rec.query, "limit=25")

	_, err = c.GetProceeding(ctx, "")
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, envelope.CodeValidation, apiErr.Code)
}

func TestOfficeActionPaths(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewOfficeActionClient(testConfig(srv.URL), nil)
	ctx := context.Background()

	_, err := c.GetOfficeActionText(ctx, "14/412,875")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/office-actions/applications/14412875", rec.path)

	_, err = c.GetOfficeActionRejections(ctx, "14412875")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/office-actions/applications/14412875/rejections", rec.path)

	_, err = c.SearchRejections(ctx, "103", OfficeActionSearchOptions{TechCenter: "2100"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/office-actions/rejections/search", rec.path)
	assert.Contains(t, rec.query, "rejectionStatute=103")
	assert.Contains(t, rec.query, "techCenter=2100")
}

func TestLitigationPaths(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewLitigationClient(testConfig(srv.URL), nil)
	ctx := context.Background()

	_, err := c.GetPatentLitigationHistory(ctx, "7,654,321")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/litigation/patents/7654321/cases", rec.path)

	_, err = c.GetPartyLitigationHistory(ctx, "Acme Corp", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/litigation/parties", rec.path)
	assert.Contains(t, rec.query, "partyName=Acme+Corp")
}

func TestCitationPaths(t *testing.T) {
	srv, rec, _ := newFakeAPI(t, http.StatusOK, map[string]any{})
	c := NewCitationClient(testConfig(srv.URL), nil)
	ctx := context.Background()

	_, err := c.GetPatentCitations(ctx, "7654321", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/citations/patents/7654321", rec.path)

	_, err = c.GetCitationMetrics(ctx, "7654321")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/citations/patents/7654321/metrics", rec.path)

	_, err = c.SearchCitations(ctx, CitationSearchOptions{CitedDocument: "US-5123456-A"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/patent/citations/search", rec.path)
	assert.Contains(t, rec.query, "citedDocumentIdentifier=US-5123456-A")
}
