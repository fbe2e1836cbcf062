package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimensions validates the size of a map region.
// Both dimensions must be finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(height) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "dimensions must be finite numbers")
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive (got %gx%g)", width, height)
	}
	return nil
}

// ValidateDepth validates a tree depth bound against an upper limit.
// A depth of 0 is valid and produces a single-leaf tree.
func ValidateDepth(depth, limit int) error {
	if depth < 0 {
		return New(ErrCodeInvalidInput, "depth cannot be negative (got %d)", depth)
	}
	if depth > limit {
		return New(ErrCodeInvalidInput, "depth too large (max %d, got %d)", limit, depth)
	}
	return nil
}

// ValidateRatio validates a split ratio range.
//
// Validation rules:
//   - Both bounds lie strictly between 0 and 1
//   - min ≤ max
func ValidateRatio(min, max float64) error {
	if !(min > 0 && min < 1) || !(max > 0 && max < 1) {
		return New(ErrCodeInvalidInput, "split ratios must be in (0, 1) (got %g..%g)", min, max)
	}
	if min > max {
		return New(ErrCodeInvalidInput, "min ratio %g exceeds max ratio %g", min, max)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output path.
// An empty path means stdout and is accepted.
//
// Validation rules:
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormats checks that every requested format is in the allowed set.
func ValidateFormats(formats []string, allowed ...string) error {
	for _, f := range formats {
		ok := false
		for _, a := range allowed {
			if f == a {
				ok = true
				break
			}
		}
		if !ok {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}
