// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// =============================================================================
// ValidationResult
// =============================================================================

// ValidationResult is the outcome of one construction attempt.
//
// # Description
//
// Produced by the integrity layer on both the success and failure paths and
// embedded in every OutputSchema. The invariants are structural:
//
//   - Status is StatusOK iff IsValid is true iff Errors is empty
//   - InputHash is the SHA-256 hex digest of the canonical raw input,
//     computed identically whether construction succeeded or failed, so
//     retries and audit trails correlate on it
//   - Errors preserves discovery order: field-stage violations first (in
//     field order), then cross-field violations
//
// Use NewValidationSuccess / NewValidationFailure; hand-built results can
// break the consistency invariants.
type ValidationResult struct {
	Status    ValidationStatus  `json:"status"`
	IsValid   bool              `json:"is_valid"`
	InputHash string            `json:"input_hash"`
	Errors    []ViolationRecord `json:"errors"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// NewValidationSuccess builds the result for a clean construction.
func NewValidationSuccess(inputHash string, warnings ...string) ValidationResult {
	return ValidationResult{
		Status:    StatusOK,
		IsValid:   true,
		InputHash: inputHash,
		Errors:    []ViolationRecord{},
		Warnings:  warnings,
	}
}

// NewValidationFailure builds the result for a rejected construction.
// The records slice must be non-empty; an empty failure is a defect.
func NewValidationFailure(inputHash string, records []ViolationRecord) ValidationResult {
	out := make([]ViolationRecord, len(records))
	copy(out, records)
	return ValidationResult{
		Status:    StatusError,
		IsValid:   false,
		InputHash: inputHash,
		Errors:    out,
	}
}

// Consistent reports whether the result's status, validity flag, and error
// list agree. A well-constructed result is always consistent; this exists
// for defect detection at trust boundaries.
func (r ValidationResult) Consistent() bool {
	switch r.Status {
	case StatusOK:
		return r.IsValid && len(r.Errors) == 0
	case StatusError:
		return !r.IsValid && len(r.Errors) > 0
	default:
		return false
	}
}

// =============================================================================
// OutputSchema
// =============================================================================

// OutputSchema is the single type that crosses the system boundary outward.
//
// # Description
//
// Wraps a computation result with the ValidationResult that authorized it
// plus processor and timing metadata. ProcessorUsed is always resolved
// (cloud or local), never hybrid. On the rejection path Result is nil and
// Validation carries the aggregated violations.
//
// Assembled only by the assembly package; treated as immutable by callers.
type OutputSchema struct {
	Result           any              `json:"result"`
	Validation       ValidationResult `json:"validation"`
	ProcessorUsed    ProcessorType    `json:"processor_used"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
	RetriesAttempted int              `json:"retries_attempted"`
}
