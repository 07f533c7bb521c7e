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

import (
	"fmt"
	"strings"
)

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode labels an error for API responses and log correlation.
type ErrorCode string

const (
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeProcessingError ErrorCode = "PROCESSING_ERROR"
	CodeDomainError     ErrorCode = "DOMAIN_ERROR"
	CodeAssemblyError   ErrorCode = "ASSEMBLY_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// =============================================================================
// Constraint Violations
// =============================================================================

// ConstraintViolation reports a single field failing its physical constraint
// during the type or field stage of model construction.
//
// # Fields
//
//   - FieldPath: Dotted path of the offending field (e.g. "amplitude")
//   - RawValue: The raw value as received, before any conversion
//   - Rule: Human-readable statement of the violated constraint
//
// A ConstraintViolation is data, not control flow: construction collects
// every violation across independent field paths before reporting, so
// callers see the full failure set in one pass.
type ConstraintViolation struct {
	FieldPath string `json:"field"`
	RawValue  any    `json:"value"`
	Rule      string `json:"rule"`
}

func (v *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", v.FieldPath, v.Rule, v.RawValue)
}

// ModelConstraintViolation reports a cross-field invariant failure, such as
// the Nyquist criterion. It names every implicated field so callers can
// highlight all of them, not just one.
type ModelConstraintViolation struct {
	Fields []string `json:"fields"`
	Rule   string   `json:"rule"`
}

func (v *ModelConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(v.Fields, ","), v.Rule)
}

// =============================================================================
// Violation Records
// =============================================================================

// ViolationRecord is the wire form of a single validation failure inside a
// ValidationResult. Exactly one of the two violation kinds populates it.
type ViolationRecord struct {
	// Fields lists the implicated field paths. A field-stage violation has
	// exactly one entry; a cross-field violation may have several.
	Fields []string `json:"fields"`

	// Rule states the violated constraint.
	Rule string `json:"rule"`

	// Value carries the offending raw value for single-field violations.
	// Nil for cross-field violations, where no single value is at fault.
	Value any `json:"value,omitempty"`

	// Code classifies the violation for API clients.
	Code ErrorCode `json:"code"`
}

// RecordFrom converts a ConstraintViolation into its wire form.
func RecordFrom(v *ConstraintViolation) ViolationRecord {
	return ViolationRecord{
		Fields: []string{v.FieldPath},
		Rule:   v.Rule,
		Value:  v.RawValue,
		Code:   CodeValidationError,
	}
}

// RecordFromModel converts a ModelConstraintViolation into its wire form.
func RecordFromModel(v *ModelConstraintViolation) ViolationRecord {
	fields := make([]string, len(v.Fields))
	copy(fields, v.Fields)
	return ViolationRecord{
		Fields: fields,
		Rule:   v.Rule,
		Code:   CodeValidationError,
	}
}

// =============================================================================
// Defect-Class Errors
// =============================================================================

// DomainError reports a mathematically undefined input reaching the math
// engine (e.g. an empty component list for an availability calculation).
//
// Validated models cannot produce one: the only way to trigger a DomainError
// is to call the engine directly with inputs that bypassed construction.
// It is therefore a programming defect, never a user-facing validation
// failure, and must not be retried.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Op, e.Reason)
}

// AssemblyError reports a serialization failure while packaging an
// OutputSchema. Surfaced as an internal error, never as a validation failure.
type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("output assembly failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("output assembly failed: %s", e.Reason)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
