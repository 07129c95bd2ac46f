// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ppubs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
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

// fakePortal mimics the Public Search backend: session creation, the
// counts/search pair, document highlight, and the print workflow.
type fakePortal struct {
	mux *http.ServeMux
	srv *httptest.Server

	sessionCalls atomic.Int64
	countsCalls  atomic.Int64
	searchCalls  atomic.Int64

	nextCaseID atomic.Int64

	// onSearch lets a test script the search endpoint per call.
	onSearch func(call int64, w http.ResponseWriter, r *http.Request)
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()
	p := &fakePortal{mux: http.NewServeMux()}
	p.nextCaseID.Store(100)

	p.mux.HandleFunc("/pubwebapp/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	})
	p.mux.HandleFunc("/api/users/me/session", func(w http.ResponseWriter, r *http.Request) {
		n := p.sessionCalls.Add(1)
		assert.Equal(t, "null", r.Header.Get("X-Access-Token"))
		var body any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(-1), body)

		id := p.nextCaseID.Add(1)
		w.Header().Set("X-Access-Token", fmt.Sprintf("token-%d", n))
		json.NewEncoder(w).Encode(map[string]any{
			"userCase": map[string]any{"caseId": id},
		})
	})
	p.mux.HandleFunc("/api/searches/counts", func(w http.ResponseWriter, r *http.Request) {
		p.countsCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"numFound": 1})
	})
	p.mux.HandleFunc("/api/searches/searchWithBeFamily", func(w http.ResponseWriter, r *http.Request) {
		n := p.searchCalls.Add(1)
		if p.onSearch != nil {
			p.onSearch(n, w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"numFound": 1,
			"patents":  []any{map[string]any{"guid": "US-9999999-B2"}},
		})
	})

	p.srv = httptest.NewServer(p.mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakePortal) client() *Client {
	return New(types.PPubsConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "patent-gateway-test"},
		BaseURL:      p.srv.URL,
		Retry:        types.RetryConfig{MaxAttempts: 2, Multiplier: 0.001, MinWait: time.Millisecond, MaxWait: 2 * time.Millisecond},
		Session:      types.SessionConfig{ExpiryMinutes: 30, CachingEnabled: true},
		PollInterval: time.Millisecond,
		MaxPolls:     5,
	}, nil)
}

// stubSleep replaces the package sleep with an instant recorder for the test.
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleepFunc
	sleepFunc = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	t.Cleanup(func() { sleepFunc = orig })
	return &waits
}

func TestEnsureSessionCachesWhileUnexpired(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client()
	ctx := context.Background()

	s1, err := c.ensureSession(ctx)
	require.NoError(t, err)
	s2, err := c.ensureSession(ctx)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, int64(1), portal.sessionCalls.Load())
	assert.Equal(t, int64(101), s1.caseID)
	assert.Equal(t, "token-1", s1.accessToken)
}

func TestEnsureSessionReestablishesAfterLocalExpiry(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client()
	ctx := context.Background()

	s1, err := c.ensureSession(ctx)
	require.NoError(t, err)

	c.mu.Lock()
	c.sess.expiresAt = time.Now().Add(-time.Minute)
	c.mu.Unlock()

	s2, err := c.ensureSession(ctx)
	require.NoError(t, err)

	assert.NotSame(t, s1, s2)
	assert.Equal(t, int64(2), portal.sessionCalls.Load())
}

func TestEstablishSessionFailureSurfacesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pubwebapp/", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/api/users/me/session", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session for you", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(types.PPubsConfig{
		HTTPConfig: types.HTTPConfig{Timeout: time.Second},
		BaseURL:    srv.URL,
		Retry:      types.RetryConfig{MaxAttempts: 1, Multiplier: 0.001, MinWait: time.Millisecond, MaxWait: time.Millisecond},
	}, nil)

	_, err := c.ensureSession(context.Background())
	require.Error(t, err)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Failed to establish session")
}

func TestRunQueryPayloadShape(t *testing.T) {
	portal := newFakePortal(t)
	var searchPayload map[string]any
	portal.onSearch = func(_ int64, w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&searchPayload))
		json.NewEncoder(w).Encode(map[string]any{"numFound": 0, "patents": []any{}})
	}
	c := portal.client()

	opts := DefaultQueryOptions(`"quantum computing".ab.`)
	opts.Start = 40
	opts.Limit = 1000 // above the portal cap
	opts.Operator = "AND"
	opts.Sources = []string{SourceGrantedPatents, SourcePublishedApplications}

	_, err := c.RunQuery(context.Background(), opts)
	require.NoError(t, err)

	// Counts registers the query before the search runs.
	assert.Equal(t, int64(1), portal.countsCalls.Load())
	assert.Equal(t, int64(1), portal.searchCalls.Load())

	assert.Equal(t, float64(40), searchPayload["start"])
	assert.Equal(t, float64(500), searchPayload["pageCount"])
	assert.Equal(t, SortDateDesc, searchPayload["sort"])

	query := searchPayload["query"].(map[string]any)
	assert.Equal(t, float64(101), query["caseId"])
	assert.Equal(t, "AND", query["op"])
	for _, field := range []string{"q", "queryName", "userEnteredQuery"} {
		assert.Equal(t, `"quantum computing".ab.`, query[field])
	}
	filters := query["databaseFilters"].([]any)
	require.Len(t, filters, 2)
	first := filters[0].(map[string]any)
	assert.Equal(t, SourceGrantedPatents, first["databaseName"])
	assert.Equal(t, []any{}, first["countryCodes"])
}

func TestRunQueryRefreshesSessionOn403(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(call int64, w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Access-Token") == "token-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"numFound": 1,
			"patents":  []any{map[string]any{"guid": "US-1-A1"}},
		})
	}
	c := portal.client()

	result, err := c.RunQuery(context.Background(), DefaultQueryOptions("test"))
	require.NoError(t, err)
	assert.Equal(t, float64(1), result["numFound"])

	// One establishment up front, one triggered by the 403.
	assert.Equal(t, int64(2), portal.sessionCalls.Load())
	assert.Equal(t, int64(2), portal.searchCalls.Load())
}

func TestRunQueryFailsWhen403Persists(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(_ int64, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}
	c := portal.client()

	_, err := c.RunQuery(context.Background(), DefaultQueryOptions("test"))
	require.Error(t, err)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	// The refresh happens exactly once; the replayed 403 is terminal.
	assert.Equal(t, int64(2), portal.sessionCalls.Load())
	assert.Equal(t, int64(2), portal.searchCalls.Load())
}

func TestRunQueryHonorsRateLimitBackoff(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(call int64, w http.ResponseWriter, r *http.Request) {
		if call == 1 {
			w.Header().Set(retryAfterHeader, "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"numFound": 0, "patents": []any{}})
	}
	c := portal.client()
	waits := stubSleep(t)

	_, err := c.RunQuery(context.Background(), DefaultQueryOptions("test"))
	require.NoError(t, err)

	assert.Equal(t, int64(2), portal.searchCalls.Load())
	require.Len(t, *waits, 1)
	assert.Equal(t, 3*time.Second, (*waits)[0]) // header value plus one second
}

func TestRunQueryRateLimitDefaultDelay(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(call int64, w http.ResponseWriter, r *http.Request) {
		if call == 1 {
			w.WriteHeader(http.StatusTooManyRequests) // no retry-after header
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"numFound": 0, "patents": []any{}})
	}
	c := portal.client()
	waits := stubSleep(t)

	_, err := c.RunQuery(context.Background(), DefaultQueryOptions("test"))
	require.NoError(t, err)
	require.Len(t, *waits, 1)
	assert.Equal(t, 6*time.Second, (*waits)[0]) // 5 s default plus one second
}

func TestRunQuerySurfacesEmbeddedError(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(_ int64, w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"errorMessage": "Search syntax error near .ab.",
				"errorCode":    "SYNTAX",
			},
		})
	}
	c := portal.client()

	_, err := c.RunQuery(context.Background(), DefaultQueryOptions("((broken"))
	require.Error(t, err)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Search syntax error near .ab.", apiErr.Message)
	assert.Equal(t, "SYNTAX", apiErr.Code)
}

func TestGetDocumentScenario(t *testing.T) {
	portal := newFakePortal(t)
	portal.mux.HandleFunc("/api/patents/highlight/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patents/highlight/US-20240123456-A1", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("queryId"))
		assert.Equal(t, SourcePublishedApplications, r.URL.Query().Get("source"))
		assert.Equal(t, "true", r.URL.Query().Get("includeSections"))
		assert.NotEmpty(t, r.Header.Get("X-Access-Token"))
		json.NewEncoder(w).Encode(map[string]any{
			"guid":           "US-20240123456-A1",
			"abstractHtml":   "<p>An apparatus.</p>",
			"claimsHtml":     "<p>1. An apparatus comprising...</p>",
			"inventionTitle": "Apparatus",
		})
	})
	c := portal.client()

	doc, err := c.GetDocument(context.Background(), "US-20240123456-A1", SourcePublishedApplications)
	require.NoError(t, err)
	assert.Equal(t, "US-20240123456-A1", doc["guid"])
	assert.Equal(t, "Apparatus", doc["inventionTitle"])
	assert.Equal(t, int64(1), portal.sessionCalls.Load())
}

func TestFindPatentByNumberFallsBackToPnSyntax(t *testing.T) {
	portal := newFakePortal(t)
	var queries []string
	portal.onSearch = func(call int64, w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		q := payload["query"].(map[string]any)["q"].(string)
		queries = append(queries, q)
		if call == 1 {
			json.NewEncoder(w).Encode(map[string]any{"numFound": 0, "patents": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"numFound": 1,
			"patents":  []any{map[string]any{"guid": "US-7654321-B2", "patentNumber": "7654321"}},
		})
	}
	c := portal.client()

	doc, err := c.FindPatentByNumber(context.Background(), "7654321")
	require.NoError(t, err)
	assert.Equal(t, "US-7654321-B2", doc["guid"])
	require.Len(t, queries, 2)
	assert.Equal(t, `patentNumber:"7654321"`, queries[0])
	assert.Equal(t, `"7654321".pn.`, queries[1])
}

func TestFindPatentByNumberNotFound(t *testing.T) {
	portal := newFakePortal(t)
	portal.onSearch = func(_ int64, w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"numFound": 0, "patents": []any{}})
	}
	c := portal.client()

	_, err := c.FindPatentByNumber(context.Background(), "0000000")
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, envelope.CodeNotFound, apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDownloadImageFullWorkflow(t *testing.T) {
	portal := newFakePortal(t)
	pdfBytes := []byte("%PDF-1.7 fake body")
	var pollCalls atomic.Int64
	var printPayload map[string]any

	portal.mux.HandleFunc("/api/print/imageviewer", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&printPayload))
		fmt.Fprint(w, "12345")
	})
	portal.mux.HandleFunc("/api/print/print-process", func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []string{"12345"}, ids)
		status := "STARTED"
		if pollCalls.Add(1) >= 3 {
			status = printStatusCompleted
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"printStatus": status, "pdfName": "job-12345.pdf"},
		})
	})
	portal.mux.HandleFunc("/api/internal/print/save/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/print/save/job-12345.pdf", r.URL.Path)
		w.Write(pdfBytes)
	})

	c := portal.client()
	stubSleep(t)

	result, err := c.DownloadImage(context.Background(), "US-7654321-B2", SourcePublishedApplications, "07654321/images", 3)
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, "US-7654321-B2.pdf", result["filename"])
	assert.Equal(t, "application/pdf", result["content_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(pdfBytes), result["content"])

	// Page keys are 1-based, zero-padded tif paths under the image location.
	keys := printPayload["pageKeys"].([]any)
	require.Len(t, keys, 3)
	assert.Equal(t, "07654321/images/00000001.tif", keys[0])
	assert.Equal(t, "07654321/images/00000003.tif", keys[2])
	assert.Equal(t, "save", printPayload["saveOrPrint"])
	assert.Equal(t, "US-7654321-B2", printPayload["patentGuid"])
	// The document's own type travels as the print job source.
	assert.Equal(t, SourcePublishedApplications, printPayload["source"])
}

func TestDownloadImagePollTimeout(t *testing.T) {
	portal := newFakePortal(t)
	portal.mux.HandleFunc("/api/print/imageviewer", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "777")
	})
	portal.mux.HandleFunc("/api/print/print-process", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"printStatus": "STARTED"}})
	})

	c := portal.client()
	stubSleep(t)

	_, err := c.DownloadImage(context.Background(), "US-1-B2", SourceGrantedPatents, "loc", 1)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, envelope.CodePDFTimeout, apiErr.Code)
}

func TestDownloadImagePrintJobFailure(t *testing.T) {
	portal := newFakePortal(t)
	portal.mux.HandleFunc("/api/print/imageviewer", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "888")
	})
	portal.mux.HandleFunc("/api/print/print-process", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"printStatus": printStatusFailed}})
	})

	c := portal.client()
	stubSleep(t)

	_, err := c.DownloadImage(context.Background(), "US-1-B2", SourceGrantedPatents, "loc", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestDownloadImageDefaultsSourceToGrantedPatents(t *testing.T) {
	portal := newFakePortal(t)
	var printPayload map[string]any
	portal.mux.HandleFunc("/api/print/imageviewer", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&printPayload))
		fmt.Fprint(w, "999")
	})
	portal.mux.HandleFunc("/api/print/print-process", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"printStatus": printStatusFailed}})
	})

	c := portal.client()
	stubSleep(t)

	_, err := c.DownloadImage(context.Background(), "US-1-B2", "", "loc", 1)
	require.Error(t, err)
	assert.Equal(t, SourceGrantedPatents, printPayload["source"])
}

func TestDownloadImageSubmitRejected(t *testing.T) {
	portal := newFakePortal(t)
	portal.mux.HandleFunc("/api/print/imageviewer", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render backend unavailable", http.StatusInternalServerError)
	})

	c := portal.client()

	_, err := c.DownloadImage(context.Background(), "US-1-B2", SourceGrantedPatents, "loc", 1)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
