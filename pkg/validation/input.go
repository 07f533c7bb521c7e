// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for untrusted data.
//
// This package contains the pure helpers shared by the integrity layer:
// string sanitization for user-provided text and deterministic hashing of
// raw inputs for idempotence and audit correlation. Everything here is
// side-effect free; logging belongs to callers.
package validation

import (
	"math"
	"strings"
)

// MaxInputLength caps user-provided input text. Anything longer is rejected
// rather than truncated.
const MaxInputLength = 1_000_000

// SanitizeInput strips ASCII control characters from user-provided text,
// keeping newlines and tabs.
//
// Sanitization happens before length/emptiness checks so that an input
// consisting only of control characters is rejected as empty.
//
// Example:
//
//	clean := validation.SanitizeInput("hello\x00world\n")
//	// clean == "hello world" minus the NUL: "helloworld\n"
func SanitizeInput(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
}

// IsValidInputText reports whether a string is acceptable as request input:
// non-empty and within MaxInputLength.
func IsValidInputText(value string) bool {
	return len(value) > 0 && len(value) <= MaxInputLength
}

// IsFinite reports whether a float is neither infinite nor NaN.
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// IsValidProbability reports whether a value is a finite probability in [0, 1].
func IsValidProbability(value float64) bool {
	return IsFinite(value) && value >= 0 && value <= 1
}
