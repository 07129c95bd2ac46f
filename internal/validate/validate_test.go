// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"errors"
	"testing"

	"github.com/pdiddy/patent-gateway/internal/envelope"
)

func TestPatentNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"7123456", "7123456", false},
		{"US7,123,456", "7123456", false},
		{" 7123456 B2", "71234562", false},
		{"abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := PatentNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PatentNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PatentNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplicationNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"14/412,875", "14412875", false},
		{"14412875", "14412875", false},
		{"14 412 875", "14412875", false},
		{"abc", "", true},
		{"12345", "", true}, // too few digits
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ApplicationNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplicationNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ApplicationNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplicationNumber_ErrorCarriesField(t *testing.T) {
	_, err := ApplicationNumber("abc")
	var apiErr *envelope.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *envelope.APIError, got %T", err)
	}
	if apiErr.Code != envelope.CodeValidation {
		t.Errorf("error_code = %q, want %q", apiErr.Code, envelope.CodeValidation)
	}
	details, ok := apiErr.Details.(map[string]any)
	if !ok || details["field"] != "app_num" {
		t.Errorf("details = %v, want field app_num", apiErr.Details)
	}
}

func TestSourceType(t *testing.T) {
	for _, valid := range []string{"USPAT", "US-PGPUB", "USOCR"} {
		if _, err := SourceType(valid); err != nil {
			t.Errorf("SourceType(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := SourceType("EPO"); err == nil {
		t.Error("SourceType(EPO) expected error")
	}
}

func TestQuery(t *testing.T) {
	if _, err := Query("   "); err == nil {
		t.Error("whitespace-only query expected error")
	}
	got, err := Query("  noise cancellation  ")
	if err != nil || got != "noise cancellation" {
		t.Errorf("Query trim: got %q, err %v", got, err)
	}
}

func TestGUID(t *testing.T) {
	if _, err := GUID(""); err == nil {
		t.Error("empty GUID expected error")
	}
	if got, _ := GUID(" US-9876543-B2 "); got != "US-9876543-B2" {
		t.Errorf("GUID trim: got %q", got)
	}
}
