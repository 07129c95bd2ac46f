// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"
	"strings"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

// ProceedingSearchOptions filter PTAB trial proceedings (IPR, PGR, CBM) and
// the legacy appeal/interference dockets.
type ProceedingSearchOptions struct {
	Q                 string
	PartyName         string
	PatentNumber      string
	ApplicationNumber string
	ProceedingType    string // IPR, PGR, CBM
	Status            string
	FiledFromDate     string // YYYY-MM-DD
	FiledToDate       string // YYYY-MM-DD
	Offset            int
	Limit             int
}

func (o ProceedingSearchOptions) params() map[string]any {
	return map[string]any{
		"q":                        strOrNil(o.Q),
		"partyName":                strOrNil(o.PartyName),
		"patentNumber":             strOrNil(o.PatentNumber),
		"applicationNumberText":    strOrNil(o.ApplicationNumber),
		"proceedingTypeCategory":   strOrNil(o.ProceedingType),
		"proceedingStatusCategory": strOrNil(o.Status),
		"filedFromDate":            strOrNil(o.FiledFromDate),
		"filedToDate":              strOrNil(o.FiledToDate),
		"offset":                   o.Offset,
		"limit":                    limitOr(o.Limit, DefaultLimit),
	}
}

// SearchProceedings searches PTAB trial proceedings.
func (c *PTABClient) SearchProceedings(ctx context.Context, opts ProceedingSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/ptab/proceedings", opts.params())
}

// GetProceeding fetches one proceeding by its number (e.g. IPR2023-00001).
func (c *PTABClient) GetProceeding(ctx context.Context, proceedingNumber string) (map[string]any, error) {
	if strings.TrimSpace(proceedingNumber) == "" {
		return nil, envelope.Validation("proceeding_number must not be blank", "proceeding_number")
	}
	return c.get(ctx, "/api/v1/ptab/proceedings/"+proceedingNumber, nil)
}

// GetProceedingDocuments lists the documents filed in one proceeding.
func (c *PTABClient) GetProceedingDocuments(ctx context.Context, proceedingNumber string, offset, limit int) (map[string]any, error) {
	if strings.TrimSpace(proceedingNumber) == "" {
		return nil, envelope.Validation("proceeding_number must not be blank", "proceeding_number")
	}
	return c.get(ctx, "/api/v1/ptab/proceedings/"+proceedingNumber+"/documents", map[string]any{
		"offset": offset,
		"limit":  limitOr(limit, DefaultLimit),
	})
}

// DecisionSearchOptions filter PTAB decisions.
type DecisionSearchOptions struct {
	Q            string
	DecisionType string // institution, final-written, rehearing
	PatentNumber string
	FromDate     string
	ToDate       string
	Offset       int
	Limit        int
}

// SearchDecisions searches PTAB decisions.
func (c *PTABClient) SearchDecisions(ctx context.Context, opts DecisionSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/ptab/decisions", map[string]any{
		"q":                    strOrNil(opts.Q),
		"decisionTypeCategory": strOrNil(opts.DecisionType),
		"patentNumber":         strOrNil(opts.PatentNumber),
		"decisionFromDate":     strOrNil(opts.FromDate),
		"decisionToDate":       strOrNil(opts.ToDate),
		"offset":               opts.Offset,
		"limit":                limitOr(opts.Limit, DefaultLimit),
	})
}

// GetDecision fetches one decision by identifier.
func (c *PTABClient) GetDecision(ctx context.Context, decisionID string) (map[string]any, error) {
	if strings.TrimSpace(decisionID) == "" {
		return nil, envelope.Validation("decision_id must not be blank", "decision_id")
	}
	return c.get(ctx, "/api/v1/ptab/decisions/"+decisionID, nil)
}

// SearchAppeals searches ex parte appeal dockets.
func (c *PTABClient) SearchAppeals(ctx context.Context, opts ProceedingSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/ptab/appeals", opts.params())
}

// GetAppealDecision fetches one ex parte appeal decision.
func (c *PTABClient) GetAppealDecision(ctx context.Context, appealNumber string) (map[string]any, error) {
	if strings.TrimSpace(appealNumber) == "" {
		return nil, envelope.Validation("appeal_number must not be blank", "appeal_number")
	}
	return c.get(ctx, "/api/v1/ptab/appeals/"+appealNumber+"/decision", nil)
}

// SearchInterferences searches interference proceedings.
func (c *PTABClient) SearchInterferences(ctx context.Context, opts ProceedingSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/ptab/interferences", opts.params())
}

// GetInterference fetches one interference proceeding.
func (c *PTABClient) GetInterference(ctx context.Context, interferenceNumber string) (map[string]any, error) {
	if strings.TrimSpace(interferenceNumber) == "" {
		return nil, envelope.Validation("interference_number must not be blank", "interference_number")
	}
	return c.get(ctx, "/api/v1/ptab/interferences/"+interferenceNumber, nil)
}
