// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks caller-supplied patent identifiers before any
// network call is made.
package validate

import (
	"strings"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

// ValidSourceTypes lists the Public Search document sources.
var ValidSourceTypes = []string{"USPAT", "US-PGPUB", "USOCR"}

// digits strips everything but 0-9 from s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PatentNumber cleans a patent number, keeping only digits. An input with no
// digits is a validation error.
func PatentNumber(raw string) (string, error) {
	cleaned := digits(raw)
	if cleaned == "" {
		return "", envelope.Validation("Patent number must contain at least one digit", "patent_number")
	}
	return cleaned, nil
}

// ApplicationNumber cleans an application number: slashes, commas, spaces and
// any other non-digit characters are removed ("14/412,875" becomes
// "14412875"). Fewer than six digits is a validation error.
func ApplicationNumber(raw string) (string, error) {
	cleaned := digits(raw)
	if cleaned == "" {
		return "", envelope.Validation("Application number must contain at least one digit", "app_num")
	}
	if len(cleaned) < 6 {
		return "", envelope.Validation("Application number must be at least 6 digits", "app_num")
	}
	return cleaned, nil
}

// SourceType checks a Public Search source tag against the known set.
func SourceType(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	for _, s := range ValidSourceTypes {
		if v == s {
			return v, nil
		}
	}
	return "", envelope.Validation(
		"Source type must be one of: "+strings.Join(ValidSourceTypes, ", "), "source_type")
}

// Query rejects empty or whitespace-only search queries.
func Query(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", envelope.Validation("Query cannot be empty or whitespace only", "query")
	}
	return v, nil
}

// GUID rejects empty document identifiers.
func GUID(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", envelope.Validation("GUID cannot be empty", "guid")
	}
	return v, nil
}
