// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ppubs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

// print job states reported by the portal.
const (
	printStatusCompleted = "COMPLETED"
	printStatusFailed    = "FAILED"
)

// requestSave submits a save-to-PDF print job for every page of a document
// and returns the job id from the response body.
func (c *Client) requestSave(ctx context.Context, guid, sourceType, imageLocation string, pageCount int) (string, error) {
	pageKeys := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		pageKeys = append(pageKeys, fmt.Sprintf("%s/%08d.tif", imageLocation, i))
	}

	sess := c.currentSession()
	body := map[string]any{
		"caseId":      sess.caseID,
		"pageKeys":    pageKeys,
		"patentGuid":  guid,
		"saveOrPrint": "save",
		"source":      sourceType,
	}
	res, err := c.request(ctx, http.MethodPost, c.cfg.BaseURL+"/api/print/imageviewer", body)
	if err != nil {
		return "", err
	}
	if res.status == http.StatusInternalServerError {
		return "", envelope.New(
			fmt.Sprintf("Print job submission failed: %s", string(res.body)), res.status)
	}
	jobID := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(res.body)), `"`))
	if jobID == "" {
		return "", envelope.New("Print job submission returned no job id", res.status)
	}
	return jobID, nil
}

// pollPrintJob waits for the job to complete, checking at the configured
// interval up to the configured number of polls. The produced PDF name is
// returned on completion.
func (c *Client) pollPrintJob(ctx context.Context, jobID string) (string, error) {
	for i := 0; i < c.cfg.MaxPolls; i++ {
		res, err := c.request(ctx, http.MethodPost, c.cfg.BaseURL+"/api/print/print-process", []string{jobID})
		if err != nil {
			return "", err
		}
		if res.status != http.StatusOK {
			return "", envelope.New(
				fmt.Sprintf("Print status check failed: %s", string(res.body)), res.status)
		}

		var jobs []map[string]any
		if err := json.Unmarshal(res.body, &jobs); err != nil {
			return "", envelope.FromErr(err, "parsing print status response")
		}
		if len(jobs) > 0 {
			status, _ := jobs[0]["printStatus"].(string)
			switch status {
			case printStatusCompleted:
				pdfName, _ := jobs[0]["pdfName"].(string)
				if pdfName == "" {
					return "", envelope.New("Print job completed without a PDF name", 0)
				}
				return pdfName, nil
			case printStatusFailed:
				return "", envelope.New(fmt.Sprintf("Print job %s failed", jobID), 0)
			}
			c.log.Debug("print job pending", "job_id", jobID, "status", status)
		}

		if err := sleepFunc(ctx, c.cfg.PollInterval); err != nil {
			return "", envelope.FromErr(err, "waiting for print job")
		}
	}
	return "", envelope.PollTimeout(
		fmt.Sprintf("Timed out waiting for PDF generation of job %s", jobID))
}

// DownloadImage runs the full print workflow for a document: submit a save
// job covering all pages, poll until the portal has rendered the PDF, fetch
// the bytes, and return them base64-encoded with download metadata. The
// document's own type is transmitted as the print job's source collection.
func (c *Client) DownloadImage(ctx context.Context, guid, sourceType, imageLocation string, pageCount int) (map[string]any, error) {
	if _, err := c.ensureSession(ctx); err != nil {
		return nil, err
	}
	if sourceType == "" {
		sourceType = SourceGrantedPatents
	}

	jobID, err := c.requestSave(ctx, guid, sourceType, imageLocation, pageCount)
	if err != nil {
		return nil, err
	}
	c.log.Info("print job submitted", "guid", guid, "job_id", jobID)

	pdfName, err := c.pollPrintJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	u := c.cfg.BaseURL + "/api/internal/print/save/" + url.PathEscape(pdfName)
	res, err := c.request(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, envelope.New(
			fmt.Sprintf("Failed to download PDF %s: %s", pdfName, string(res.body)), res.status)
	}

	return map[string]any{
		"success":      true,
		"filename":     guid + ".pdf",
		"content_type": "application/pdf",
		"content":      base64.StdEncoding.EncodeToString(res.body),
	}, nil
}
