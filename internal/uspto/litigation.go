// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"
	"strings"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/validate"
)

// CaseSearchOptions filter district-court patent litigation dockets.
type CaseSearchOptions struct {
	Q             string
	PartyName     string
	CourtName     string
	CaseType      string
	FiledFromDate string
	FiledToDate   string
	Offset        int
	Limit         int
}

// SearchCases searches litigation dockets.
func (c *LitigationClient) SearchCases(ctx context.Context, opts CaseSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/litigation/cases", map[string]any{
		"q":             strOrNil(opts.Q),
		"partyName":     strOrNil(opts.PartyName),
		"courtName":     strOrNil(opts.CourtName),
		"caseType":      strOrNil(opts.CaseType),
		"filedFromDate": strOrNil(opts.FiledFromDate),
		"filedToDate":   strOrNil(opts.FiledToDate),
		"offset":        opts.Offset,
		"limit":         limitOr(opts.Limit, DefaultLimit),
	})
}

// GetCase fetches one docket by case number.
func (c *LitigationClient) GetCase(ctx context.Context, caseNumber string) (map[string]any, error) {
	if strings.TrimSpace(caseNumber) == "" {
		return nil, envelope.Validation("case_number must not be blank", "case_number")
	}
	return c.get(ctx, "/api/v1/patent/litigation/cases/"+caseNumber, nil)
}

// GetPatentLitigationHistory lists every case asserting a given patent.
func (c *LitigationClient) GetPatentLitigationHistory(ctx context.Context, patentNumber string) (map[string]any, error) {
	num, err := validate.PatentNumber(patentNumber)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/litigation/patents/"+num+"/cases", nil)
}

// GetPartyLitigationHistory lists every case involving a named party.
func (c *LitigationClient) GetPartyLitigationHistory(ctx context.Context, partyName string, offset, limit int) (map[string]any, error) {
	if strings.TrimSpace(partyName) == "" {
		return nil, envelope.Validation("party_name must not be blank", "party_name")
	}
	return c.get(ctx, "/api/v1/patent/litigation/parties", map[string]any{
		"partyName": partyName,
		"offset":    offset,
		"limit":     limitOr(limit, DefaultLimit),
	})
}

// GetCourtStatistics returns per-court filing counts for a date window.
func (c *LitigationClient) GetCourtStatistics(ctx context.Context, fromDate, toDate string) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/litigation/statistics/courts", map[string]any{
		"fromDate": strOrNil(fromDate),
		"toDate":   strOrNil(toDate),
	})
}
