package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// bodyIDRegex matches body identifiers. Ids double as directory names, CSS
// class names and image file names, so they stay within [a-z0-9_-].
var bodyIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateBodyID validates a body identifier.
//
// The rules are conservative because the id ends up in file paths and markup:
//   - No empty ids
//   - Maximum length of 64 characters
//   - No control characters or path separators
//   - Lowercase letters, digits, dash and underscore only
func ValidateBodyID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "body id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidID, "body id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "body id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, `/\.`) {
		return New(ErrCodeInvalidID, "body id cannot contain path characters: %q", id)
	}

	if !bodyIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid body id: %q", id)
	}

	return nil
}

// ValidateRadius checks that a radius is a finite, strictly positive number.
// The scale axis is logarithmic, so zero and negative values cannot be mapped.
func ValidateRadius(id string, radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return New(ErrCodeInvalidBody, "%s: radius is not a finite number", id)
	}
	if radius <= 0 {
		return New(ErrCodeInvalidBody, "%s: radius must be positive, got %g", id, radius)
	}
	return nil
}

// ValidateBasePath validates the public base path the site is served under.
//
// Validation rules:
//   - Must start and end with a slash ("/" or "/voyager/")
//   - No path traversal sequences (..)
//   - No backslashes or control characters
func ValidateBasePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "base path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") || !strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "base path must start and end with /: %q", path)
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "base path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "base path cannot contain backslashes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "base path contains invalid characters")
		}
	}
	return nil
}
