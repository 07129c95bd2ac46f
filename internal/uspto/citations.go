// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"

	"github.com/pdiddy/patent-gateway/internal/validate"
)

// GetPatentCitations returns the enriched cited-reference records for one
// patent: references cited by the examiner and the applicant, with
// relevance annotations.
func (c *CitationClient) GetPatentCitations(ctx context.Context, patentNumber string, offset, limit int) (map[string]any, error) {
	num, err := validate.PatentNumber(patentNumber)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/citations/patents/"+num, map[string]any{
		"offset": offset,
		"limit":  limitOr(limit, DefaultLimit),
	})
}

// CitationSearchOptions filter enriched citation records.
type CitationSearchOptions struct {
	Q              string
	CitedDocument  string
	CitingDocument string
	CitationSource string // examiner, applicant, third-party
	TechCenter     string
	MailedFromDate string
	MailedToDate   string
	Offset         int
	Limit          int
}

// SearchCitations searches enriched citation records.
func (c *CitationClient) SearchCitations(ctx context.Context, opts CitationSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/citations/search", map[string]any{
		"q":                        strOrNil(opts.Q),
		"citedDocumentIdentifier":  strOrNil(opts.CitedDocument),
		"citingDocumentIdentifier": strOrNil(opts.CitingDocument),
		"citationCategory":         strOrNil(opts.CitationSource),
		"techCenter":               strOrNil(opts.TechCenter),
		"mailedFromDate":           strOrNil(opts.MailedFromDate),
		"mailedToDate":             strOrNil(opts.MailedToDate),
		"offset":                   opts.Offset,
		"limit":                    limitOr(opts.Limit, DefaultLimit),
	})
}

// GetCitationMetrics returns forward/backward citation counts and percentile
// metrics for one patent.
func (c *CitationClient) GetCitationMetrics(ctx context.Context, patentNumber string) (map[string]any, error) {
	num, err := validate.PatentNumber(patentNumber)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/citations/patents/"+num+"/metrics", nil)
}

// GetPatentFamilyCitations returns citations aggregated across a patent's
// simple family.
func (c *CitationClient) GetPatentFamilyCitations(ctx context.Context, patentNumber string, offset, limit int) (map[string]any, error) {
	num, err := validate.PatentNumber(patentNumber)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/citations/patents/"+num+"/family", map[string]any{
		"offset": offset,
		"limit":  limitOr(limit, DefaultLimit),
	})
}
