package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateCoordinate checks that lat/lng are finite decimal degrees within
// the usual bounds. The distance function itself never validates, so every
// outer surface calls this before handing coordinates to the engine.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return New(ErrCodeInvalidInput, "coordinate must be finite (got %v, %v)", lat, lng)
	}
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidInput, "latitude %v out of bounds [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return New(ErrCodeInvalidInput, "longitude %v out of bounds [-180, 180]", lng)
	}
	return nil
}

// colorRegex matches a bare color tag: a CSS-ish name or a #rgb/#rrggbb value.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z][a-zA-Z0-9_-]*)$`)

// ValidateColor validates a presentation color tag.
// The CSV layout has no quoting, so commas and line breaks are rejected.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if len(color) > 32 {
		return New(ErrCodeInvalidInput, "color too long (max 32 characters)")
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color: %q", color)
	}
	return nil
}

// ValidatePath validates an output or input file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
