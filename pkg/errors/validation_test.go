package errors

import (
	"strings"
	"testing"
)

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "data.json", false},
		{"relative path", "testdata/sample.xml", false},
		{"absolute path", "/tmp/doc.json", false},
		{"empty", "", true},
		{"control character", "doc\x01.json", true},
		{"null byte", "doc\x00.json", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDocumentSize(t *testing.T) {
	if err := ValidateDocumentSize(1024); err != nil {
		t.Errorf("ValidateDocumentSize(1024) = %v, want nil", err)
	}
	if err := ValidateDocumentSize(0); err == nil {
		t.Error("ValidateDocumentSize(0) should fail")
	}
	if err := ValidateDocumentSize(MaxDocumentBytes + 1); err == nil {
		t.Error("oversized document should fail")
	}
	if err := ValidateDocumentSize(MaxDocumentBytes); err != nil {
		t.Errorf("document at the limit should pass, got %v", err)
	}
}
