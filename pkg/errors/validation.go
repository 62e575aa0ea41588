package errors

import (
	"strings"
	"unicode"
)

// MaxDocumentBytes is the largest input document accepted from untrusted
// callers (the HTTP API). The CLI reads local files and is not limited.
const MaxDocumentBytes = 16 << 20 // 16 MiB

// ValidateInputPath validates a user-supplied file path for safety.
// It rejects paths that could be used for traversal or injection attacks
// when the path is echoed into shell completion or server logs.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "input path too long (max 4096 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "input path contains null byte")
	}

	return nil
}

// ValidateDocumentSize checks an untrusted document against
// MaxDocumentBytes. Oversized documents are rejected before parsing so
// a single request cannot exhaust server memory.
func ValidateDocumentSize(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidInput, "document is empty")
	}
	if n > MaxDocumentBytes {
		return New(ErrCodeInvalidInput, "document too large: %d bytes (max %d)", n, MaxDocumentBytes)
	}
	return nil
}
