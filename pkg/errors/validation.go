package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds node identifiers; profiler frames rarely exceed it.
const maxIDLength = 1024

// ValidateNodeID checks that a node identifier is usable as a map key and
// as a click payload.
//
// The rules are:
//   - No empty ids
//   - No control characters (ids travel through terminal events)
//   - Maximum length of 1024 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return Structural("node id cannot be empty")
	}
	if len(id) > maxIDLength {
		return Structural("node id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return Structural("node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateWeight checks that an exclusive weight is a finite,
// non-negative number.
func ValidateWeight(id string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return Structural("node %q has non-finite weight", id)
	}
	if w < 0 {
		return Structural("node %q has negative weight %g", id, w)
	}
	return nil
}

// ValidatePath validates a local input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace")
	}

	return nil
}
