// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

import (
	"context"

	"github.com/pdiddy/patent-gateway/internal/validate"
)

// OfficeActionSearchOptions filter office-action records.
type OfficeActionSearchOptions struct {
	Q              string
	ExaminerName   string
	GroupArtUnit   string
	TechCenter     string
	MailedFromDate string
	MailedToDate   string
	Offset         int
	Limit          int
}

func (o OfficeActionSearchOptions) params() map[string]any {
	return map[string]any{
		"q":              strOrNil(o.Q),
		"examinerName":   strOrNil(o.ExaminerName),
		"groupArtUnit":   strOrNil(o.GroupArtUnit),
		"techCenter":     strOrNil(o.TechCenter),
		"mailedFromDate": strOrNil(o.MailedFromDate),
		"mailedToDate":   strOrNil(o.MailedToDate),
		"offset":         o.Offset,
		"limit":          limitOr(o.Limit, DefaultLimit),
	}
}

// GetOfficeActionText returns the full text of the office actions mailed for
// an application.
func (c *OfficeActionClient) GetOfficeActionText(ctx context.Context, appNum string) (map[string]any, error) {
	num, err := validate.ApplicationNumber(appNum)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/office-actions/applications/"+num, nil)
}

// SearchOfficeActions searches office-action records across applications.
func (c *OfficeActionClient) SearchOfficeActions(ctx context.Context, opts OfficeActionSearchOptions) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/office-actions/search", opts.params())
}

// GetOfficeActionCitations returns the prior-art citations made in an
// application's office actions.
func (c *OfficeActionClient) GetOfficeActionCitations(ctx context.Context, appNum string) (map[string]any, error) {
	num, err := validate.ApplicationNumber(appNum)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/office-actions/applications/"+num+"/citations", nil)
}

// SearchCitations searches office-action citations by cited document.
func (c *OfficeActionClient) SearchCitations(ctx context.Context, citedDocument string, offset, limit int) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/office-actions/citations/search", map[string]any{
		"citedDocumentIdentifier": strOrNil(citedDocument),
		"offset":                  offset,
		"limit":                   limitOr(limit, DefaultLimit),
	})
}

// GetOfficeActionRejections returns the rejections raised in an
// application's office actions, tagged by statute (102, 103, 101, 112).
func (c *OfficeActionClient) GetOfficeActionRejections(ctx context.Context, appNum string) (map[string]any, error) {
	num, err := validate.ApplicationNumber(appNum)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/api/v1/patent/office-actions/applications/"+num+"/rejections", nil)
}

// SearchRejections searches rejection records by statute and date window.
func (c *OfficeActionClient) SearchRejections(ctx context.Context, statute string, opts OfficeActionSearchOptions) (map[string]any, error) {
	params := opts.params()
	params["rejectionStatute"] = strOrNil(statute)
	return c.get(ctx, "/api/v1/patent/office-actions/rejections/search", params)
}

// GetWeeklyZipURL returns the download descriptor for a weekly office-action
// bulk archive.
func (c *OfficeActionClient) GetWeeklyZipURL(ctx context.Context, weekDate string) (map[string]any, error) {
	return c.get(ctx, "/api/v1/patent/office-actions/bulk/weekly", map[string]any{
		"weekDate": strOrNil(weekDate),
	})
}
