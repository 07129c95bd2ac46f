// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/patent-gateway/pkg/types"
)

// EstimateTokens approximates the token cost of a payload as serialized
// characters divided by four.
func EstimateTokens(v any) int {
	if v == nil {
		return 0
	}
	b, err := json.Marshal(v)
	if err != nil {
		return len(fmt.Sprint(v)) / 4
	}
	return len(b) / 4
}

// Truncate slices an oversized envelope's results list down to maxResults and
// annotates the envelope. Envelopes at or under the token ceiling, and
// envelopes whose results are not a list longer than the cap, pass through
// untouched.
func Truncate(response map[string]any, maxTokens, maxResults int) map[string]any {
	if EstimateTokens(response) <= maxTokens {
		return response
	}

	results, ok := response["results"].([]any)
	if !ok || len(results) <= maxResults {
		return response
	}

	truncated := make(map[string]any, len(response)+4)
	for k, v := range response {
		truncated[k] = v
	}
	original := len(results)
	truncated["results"] = results[:maxResults]
	truncated["count"] = maxResults
	truncated["_truncated"] = true
	truncated["_original_count"] = original
	truncated["_truncated_to"] = maxResults
	truncated["_truncation_message"] = fmt.Sprintf(
		"Response truncated from %d to %d results to fit within token budget. "+
			"Use 'offset' parameter to paginate through remaining results.",
		original, maxResults)

	return truncated
}

// CheckAndTruncate applies Truncate according to the truncation config. This
// is the call sites' entry point: error envelopes and small payloads come
// back unchanged.
func CheckAndTruncate(response map[string]any, cfg types.TruncationConfig) map[string]any {
	if !cfg.Enabled {
		return response
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	return Truncate(response, cfg.MaxResponseTokens, maxResults)
}
