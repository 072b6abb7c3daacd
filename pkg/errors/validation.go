package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateOccupationKey validates an occupation key read from an input table.
//
// Keys must be non-empty after trimming, contain no control characters and
// stay under 256 characters. Keys are later used to build output file names,
// so path separators are rejected as well.
func ValidateOccupationKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidInput, "occupation key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "occupation key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "occupation key %q contains control characters", key)
		}
	}

	if strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "occupation key %q contains path characters", key)
	}

	return nil
}

// ValidateSourceName validates a source (model) name from configuration.
func ValidateSourceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "source name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "source name %q contains control characters", name)
		}
	}
	return nil
}

// ValidatePercent checks that v is a finite percentage in [0, 100].
func ValidatePercent(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "percentage must be finite")
	}
	if v < 0 || v > 100 {
		return New(ErrCodeInvalidInput, "percentage %.2f out of range [0, 100]", v)
	}
	return nil
}
