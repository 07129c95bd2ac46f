// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package envelope

// Success builds the uniform success payload:
// {success: true, source, count, total, offset, limit, has_more, results, metadata?}.
// A negative count means "infer from results"; a negative total means
// "unknown, fall back to count".
func Success(results any, source string, count, total, offset, limit int, metadata map[string]any) map[string]any {
	if count < 0 {
		switch r := results.(type) {
		case []any:
			count = len(r)
		case []map[string]any:
			count = len(r)
		case nil:
			count = 0
		default:
			count = 1
		}
	}

	hasMore := false
	if total >= 0 {
		hasMore = offset+count < total
	} else {
		total = count
	}

	m := map[string]any{
		"success":  true,
		"source":   source,
		"count":    count,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
		"has_more": hasMore,
		"results":  results,
	}
	if len(metadata) > 0 {
		m["metadata"] = metadata
	}
	return m
}

// FromPpubs normalizes a Public Search response: {numFound, perPage, page,
// patents|docs: [...]}.
func FromPpubs(raw map[string]any, offset, limit int) map[string]any {
	results := resultList(raw, "patents", "docs")
	total := intField(raw, "numFound", len(results))

	return Success(results, "ppubs", len(results), total, offset, limit, map[string]any{
		"per_page":    raw["perPage"],
		"page":        raw["page"],
		"total_pages": raw["totalPages"],
	})
}

// FromODP normalizes an Open Data Portal response. The shape varies:
// {count, patentFileWrapperDataBag: [...]}, {count, results: [...]}, or a
// single direct object.
func FromODP(raw map[string]any, offset, limit int) map[string]any {
	if _, ok := raw["patentFileWrapperDataBag"]; ok {
		results := resultList(raw, "patentFileWrapperDataBag")
		total := intField(raw, "count", len(results))
		return Success(results, "odp", len(results), total, offset, limit, nil)
	}
	if _, ok := raw["results"]; ok {
		results := resultList(raw, "results")
		total := intField(raw, "count", len(results))
		return Success(results, "odp", len(results), total, offset, limit, nil)
	}
	return Success(raw, "odp", 1, 1, offset, limit, nil)
}

// patentsViewKeys lists the collection keys PatentsView uses, one per entity
// endpoint, probed in priority order.
var patentsViewKeys = []string{
	"patents", "publications", "assignees", "inventors", "attorneys",
	"claims", "g_claim", "g_brf_sum_text", "g_detail_desc_text",
	"cpc_classes", "cpc_groups", "ipcs", "foreign_citations",
}

// FromPatentsView normalizes a PatentsView response: {<entity>: [...],
// count, total_hits}.
func FromPatentsView(raw map[string]any, offset, limit int) map[string]any {
	results := resultList(raw, patentsViewKeys...)
	total := intField(raw, "total_hits", intField(raw, "count", len(results)))

	return Success(results, "patentsview", len(results), total, offset, limit, nil)
}

// FromPTAB normalizes a PTAB trial-proceeding response: {results|data: [...],
// total|count}.
func FromPTAB(raw map[string]any, offset, limit int) map[string]any {
	results := resultList(raw, "results", "data")
	total := intField(raw, "total", intField(raw, "count", len(results)))

	return Success(results, "ptab", len(results), total, offset, limit, nil)
}

// FromAnalytics wraps rows from the local analytics dataset.
func FromAnalytics(rows []map[string]any, offset, limit int) map[string]any {
	results := make([]any, len(rows))
	for i, r := range rows {
		results[i] = r
	}
	return Success(results, "analytics", len(results), -1, offset, limit, nil)
}

// resultList returns the first present list-valued key.
func resultList(raw map[string]any, keys ...string) []any {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if list, ok := v.([]any); ok {
				return list
			}
		}
	}
	return []any{}
}

// intField reads a numeric field that may arrive as float64 (decoded JSON)
// or int.
func intField(raw map[string]any, key string, fallback int) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}
