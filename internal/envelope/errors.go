// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envelope builds the uniform success and error payload shapes that
// every tool operation returns, and normalizes the raw response shapes of the
// upstream patent APIs into them. Nothing here performs I/O.
package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Error codes attached to generated error envelopes.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodePDFTimeout    = "PDF_TIMEOUT"
	CodeNetworkError  = "NetworkError"
	CodeTimeoutError  = "TimeoutError"
	CodeCanceledError = "CanceledError"
)

// APIError is the typed form of the error envelope. Clients return it as an
// ordinary Go error; the gateway converts it to the wire shape with Envelope.
type APIError struct {
	Message    string
	StatusCode int
	Code       string
	Details    any
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Envelope returns the uniform error payload:
// {error: true, message, status_code?, error_code?, details?}.
func (e *APIError) Envelope() map[string]any {
	m := map[string]any{
		"error":   true,
		"message": e.Message,
	}
	if e.StatusCode != 0 {
		m["status_code"] = e.StatusCode
	}
	if e.Code != "" {
		m["error_code"] = e.Code
	}
	if e.Details != nil {
		m["details"] = e.Details
	}
	return m
}

// New creates an APIError with a message and optional HTTP status.
func New(message string, statusCode int) *APIError {
	return &APIError{Message: message, StatusCode: statusCode}
}

// NotFound reports that a valid lookup matched no resource.
func NotFound(resourceType, identifier string) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("%s %s not found", resourceType, identifier),
		StatusCode: 404,
		Code:       CodeNotFound,
	}
}

// Validation reports a caller-supplied value that failed format rules.
// No network call has been made when this is returned.
func Validation(message, field string) *APIError {
	e := &APIError{
		Message:    message,
		StatusCode: 400,
		Code:       CodeValidation,
	}
	if field != "" {
		e.Details = map[string]any{"field": field}
	}
	return e
}

// PollTimeout reports that an asynchronous job never reached a terminal
// state within the configured polling bound.
func PollTimeout(message string) *APIError {
	return &APIError{Message: message, Code: CodePDFTimeout}
}

// FromResponse builds an APIError from a non-2xx HTTP response. When the body
// parses as JSON with an error or message field, that field becomes the
// message and errorCode/errorDetails are carried along; otherwise the raw
// body text is used.
func FromResponse(statusCode int, body []byte) *APIError {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil && parsed != nil {
		msg := ""
		if s, ok := parsed["error"].(string); ok {
			msg = s
		} else if s, ok := parsed["message"].(string); ok {
			msg = s
		}
		if msg != "" {
			e := &APIError{Message: msg, StatusCode: statusCode}
			if code, ok := parsed["errorCode"].(string); ok {
				e.Code = code
			}
			if details, ok := parsed["errorDetails"]; ok {
				e.Details = details
			}
			return e
		}
	}
	return &APIError{Message: string(body), StatusCode: statusCode}
}

// FromErr wraps an arbitrary Go error, recording an error-kind code so the
// caller can distinguish timeouts from connection failures.
func FromErr(err error, context string) *APIError {
	msg := err.Error()
	if context != "" {
		msg = context + ": " + msg
	}
	return &APIError{Message: msg, Code: errKind(err)}
}

// errKind classifies an error into a stable code name.
func errKind(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return CodeCanceledError
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeoutError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeoutError
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return CodeNetworkError
	}
	return fmt.Sprintf("%T", err)
}

// AsEnvelope converts any error to the uniform error payload. The message is
// never empty: unexpected errors fall back to their Error() text.
func AsEnvelope(err error) map[string]any {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			apiErr.Message = "unknown error"
		}
		return apiErr.Envelope()
	}
	return FromErr(err, "").Envelope()
}

// IsError reports whether a payload carries the error marker. Anything
// without error: true is a success payload.
func IsError(m map[string]any) bool {
	v, ok := m["error"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
