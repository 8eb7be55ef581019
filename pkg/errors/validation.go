package errors

import (
	"strings"
	"unicode"
)

// ValidateProfileName validates a stored-profile name for safety and
// correctness. Names appear in URLs and store keys, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProfileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidProfile, "profile name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProfile, "profile name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidProfile, "profile name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidProfile, "profile name cannot contain traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidProfile, "profile name cannot start with a dot")
	}

	return nil
}
