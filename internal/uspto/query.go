// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// BuildQueryString renders params as a URL query string. Nil values are
// skipped, booleans are lowercased, and slices are comma-joined. Keys are
// emitted in sorted order so the output is deterministic.
func BuildQueryString(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+url.QueryEscape(paramValue(params[k])))
	}
	return strings.Join(parts, "&")
}

func paramValue(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	case []any:
		elems := make([]string, 0, len(t))
		for _, e := range t {
			elems = append(elems, fmt.Sprint(e))
		}
		return strings.Join(elems, ",")
	default:
		return fmt.Sprint(v)
	}
}

// prune drops nil values from a request body so optional parameters are
// omitted rather than sent as JSON null.
func prune(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// strOrNil turns an empty string into nil so it is skipped by the builders.
func strOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// limitOr returns limit, or def when limit is unset.
func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
