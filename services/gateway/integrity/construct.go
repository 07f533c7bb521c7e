// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package integrity builds immutable validated models from raw untyped input.
//
// This is the gate of the Diamond Gate pipeline. Construction runs three
// stages in strict order over a raw record (a JSON-decoded map of field name
// to raw value):
//
//  1. Type stage: every field must already be the exact expected JSON
//     representation. There is no coercion; a numeral encoded as a string
//     is rejected, never parsed.
//  2. Field stage: per-field physical constraints via the datatypes scalar
//     constructors.
//  3. Model stage: cross-field invariants (Nyquist, processor capacity),
//     run only for invariants whose own fields passed the earlier stages.
//
// Within one field path the stages short-circuit (a type failure suppresses
// the field check for that path), but independent field paths are always all
// evaluated, so the caller sees every violation in a single pass. If any
// stage produced violations, no model is returned and the pipeline must not
// proceed to the math engine.
//
// The input hash is computed over the canonical JSON form of the raw record
// identically on both the success and failure paths.
package integrity

import (
	"fmt"
	"math"

	"github.com/AleutianAI/diamondgate/pkg/validation"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// Type-stage rule templates. Formatted with the field path.
const (
	ruleRequired     = "%s is required"
	ruleNumberType   = "%s must be a JSON number; string and boolean values are not coerced"
	ruleIntegerType  = "%s must be an integer; fractional, string, and boolean values are not coerced"
	ruleStringType   = "%s must be a JSON string"
	ruleInputEmpty   = "input_data must be non-empty after sanitization"
	ruleInputTooLong = "input_data must not exceed 1000000 characters"
	ruleEnumSignal   = "signal_type must be one of: analog, digital, hybrid"
	ruleEnumProc     = "processor_type must be one of: cloud, local, hybrid"
)

// DefaultChannels is applied when a signal record omits the channel count.
const DefaultChannels = 1

// =============================================================================
// Raw Field Extraction (Type Stage)
// =============================================================================

// requireNumber extracts a float64 field. JSON numbers decode to float64;
// anything else, including numeric strings, is a type-stage violation.
func requireNumber(raw map[string]any, field string) (float64, *datatypes.ConstraintViolation) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  nil,
			Rule:      fmt.Sprintf(ruleRequired, field),
		}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  v,
			Rule:      fmt.Sprintf(ruleNumberType, field),
		}
	}
	return f, nil
}

// requireInteger extracts an integer field. Accepts a JSON number only when
// its value is integral; 3.5 is as much a type error as "3".
func requireInteger(raw map[string]any, field string) (int, *datatypes.ConstraintViolation) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  nil,
			Rule:      fmt.Sprintf(ruleRequired, field),
		}
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  v,
			Rule:      fmt.Sprintf(ruleIntegerType, field),
		}
	}
	return int(f), nil
}

// requireString extracts a string field.
func requireString(raw map[string]any, field string) (string, *datatypes.ConstraintViolation) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  nil,
			Rule:      fmt.Sprintf(ruleRequired, field),
		}
	}
	s, ok := v.(string)
	if !ok {
		return "", &datatypes.ConstraintViolation{
			FieldPath: field,
			RawValue:  v,
			Rule:      fmt.Sprintf(ruleStringType, field),
		}
	}
	return s, nil
}

// present reports whether an optional field carries a value.
func present(raw map[string]any, field string) bool {
	v, ok := raw[field]
	return ok && v != nil
}

// =============================================================================
// Violation Aggregation
// =============================================================================

// collector aggregates violations across independent field paths while
// tracking which paths are still clean, so the model stage can decide which
// cross-field invariants are runnable.
type collector struct {
	records []datatypes.ViolationRecord
	failed  map[string]bool
}

func newCollector() *collector {
	return &collector{failed: map[string]bool{}}
}

func (c *collector) add(v *datatypes.ConstraintViolation) {
	c.records = append(c.records, datatypes.RecordFrom(v))
	c.failed[v.FieldPath] = true
}

func (c *collector) addModel(v *datatypes.ModelConstraintViolation) {
	c.records = append(c.records, datatypes.RecordFromModel(v))
}

// clean reports whether every named field path passed the type and field
// stages. Cross-field invariants run only over clean fields: a failed
// unrelated field never suppresses them, and a failed implicated field
// always does.
func (c *collector) clean(fields ...string) bool {
	for _, f := range fields {
		if c.failed[f] {
			return false
		}
	}
	return true
}

func (c *collector) empty() bool {
	return len(c.records) == 0
}

// =============================================================================
// SignalConfig Construction
// =============================================================================

// ConstructSignalConfig runs the full three-stage construction of a
// SignalConfig from a raw record.
//
// # Inputs
//
//   - raw: JSON-decoded record. Unknown fields are ignored. Expected fields:
//     signal_type (string), sampling_rate (number), frequency (number),
//     amplitude (number), duration (number), channels (integer, optional,
//     default 1).
//
// # Outputs
//
//   - *datatypes.SignalConfig: Finalized immutable model, nil on any violation
//   - datatypes.ValidationResult: Success or the aggregated failure set.
//     The input hash is present either way.
//
// Construction is deterministic: identical records yield identical results,
// including violation order (field order, then cross-field).
func ConstructSignalConfig(raw map[string]any) (*datatypes.SignalConfig, datatypes.ValidationResult) {
	hash := recordHash(raw)
	c := newCollector()

	var signalType datatypes.SignalType
	if s, v := requireString(raw, "signal_type"); v != nil {
		c.add(v)
	} else if st := datatypes.SignalType(s); !st.IsValid() {
		c.add(&datatypes.ConstraintViolation{FieldPath: "signal_type", RawValue: s, Rule: ruleEnumSignal})
	} else {
		signalType = st
	}

	var samplingRate datatypes.SamplingRate
	if f, v := requireNumber(raw, "sampling_rate"); v != nil {
		c.add(v)
	} else if sr, fv := datatypes.NewSamplingRate(f); fv != nil {
		c.add(fv)
	} else {
		samplingRate = sr
	}

	var frequency datatypes.Frequency
	if f, v := requireNumber(raw, "frequency"); v != nil {
		c.add(v)
	} else if fr, fv := datatypes.NewFrequency(f); fv != nil {
		c.add(fv)
	} else {
		frequency = fr
	}

	var amplitude datatypes.Amplitude
	if f, v := requireNumber(raw, "amplitude"); v != nil {
		c.add(v)
	} else if am, fv := datatypes.NewAmplitude(f); fv != nil {
		c.add(fv)
	} else {
		amplitude = am
	}

	var duration datatypes.Duration
	if f, v := requireNumber(raw, "duration"); v != nil {
		c.add(v)
	} else if du, fv := datatypes.NewDuration(f); fv != nil {
		c.add(fv)
	} else {
		duration = du
	}

	channels, _ := datatypes.NewChannelCount(DefaultChannels)
	if present(raw, "channels") {
		if n, v := requireInteger(raw, "channels"); v != nil {
			c.add(v)
		} else if ch, fv := datatypes.NewChannelCount(n); fv != nil {
			c.add(fv)
		} else {
			channels = ch
		}
	}

	// Model stage. The Nyquist invariant runs whenever its own fields are
	// clean, even if an unrelated field (say, amplitude) failed, so one bad
	// field never masks a cross-field violation elsewhere in the record.
	if c.clean("sampling_rate", "frequency") {
		if mv := datatypes.CheckNyquistInvariant(samplingRate, frequency); mv != nil {
			c.addModel(mv)
		}
	}

	if !c.empty() {
		return nil, datatypes.NewValidationFailure(hash, c.records)
	}

	model, mv := datatypes.NewSignalConfig(signalType, samplingRate, frequency, amplitude, duration, channels)
	if mv != nil {
		// Unreachable: the model stage above already ran the same check.
		return nil, datatypes.NewValidationFailure(hash, []datatypes.ViolationRecord{datatypes.RecordFromModel(mv)})
	}
	return model, datatypes.NewValidationSuccess(hash)
}

// =============================================================================
// ProcessingRequest Construction
// =============================================================================

// ConstructProcessingRequest runs the full three-stage construction of a
// ProcessingRequest from a raw record.
//
// # Inputs
//
//   - raw: JSON-decoded record. Expected fields: input_data (string),
//     input_tokens (integer), processor_type (string, optional, default
//     hybrid), timeout_seconds (number, optional).
//   - defaultTimeoutSeconds: Applied when timeout_seconds is absent. Comes
//     from the caller's configuration; this package never reads config
//     sources itself. Must be positive; a non-positive default is the
//     caller's configuration bug and is reported against timeout_seconds.
//
// # Outputs
//
//   - *datatypes.ProcessingRequest: Finalized immutable model, nil on violation
//   - datatypes.ValidationResult: Success or the aggregated failure set
//
// input_data is sanitized (ASCII control characters stripped, keeping
// newline and tab) before the emptiness check, so input that is nothing but
// control characters is rejected as empty.
func ConstructProcessingRequest(raw map[string]any, defaultTimeoutSeconds float64) (*datatypes.ProcessingRequest, datatypes.ValidationResult) {
	hash := recordHash(raw)
	c := newCollector()

	var inputData string
	if s, v := requireString(raw, "input_data"); v != nil {
		c.add(v)
	} else {
		sanitized := validation.SanitizeInput(s)
		switch {
		case len(sanitized) == 0:
			c.add(&datatypes.ConstraintViolation{FieldPath: "input_data", RawValue: s, Rule: ruleInputEmpty})
		case len(sanitized) > validation.MaxInputLength:
			c.add(&datatypes.ConstraintViolation{FieldPath: "input_data", RawValue: fmt.Sprintf("<%d chars>", len(sanitized)), Rule: ruleInputTooLong})
		default:
			inputData = sanitized
		}
	}

	var inputTokens datatypes.TokenCount
	if n, v := requireInteger(raw, "input_tokens"); v != nil {
		c.add(v)
	} else if tc, fv := datatypes.NewTokenCount(n); fv != nil {
		c.add(fv)
	} else {
		inputTokens = tc
	}

	processorType := datatypes.ProcessorHybrid
	if present(raw, "processor_type") {
		if s, v := requireString(raw, "processor_type"); v != nil {
			c.add(v)
		} else if pt := datatypes.ProcessorType(s); !pt.IsValid() {
			c.add(&datatypes.ConstraintViolation{FieldPath: "processor_type", RawValue: s, Rule: ruleEnumProc})
		} else {
			processorType = pt
		}
	}

	var timeout datatypes.Timeout
	timeoutRaw := defaultTimeoutSeconds
	timeoutTyped := true
	if present(raw, "timeout_seconds") {
		if f, v := requireNumber(raw, "timeout_seconds"); v != nil {
			c.add(v)
			timeoutTyped = false
		} else {
			timeoutRaw = f
		}
	}
	if timeoutTyped {
		if to, fv := datatypes.NewTimeout(timeoutRaw); fv != nil {
			c.add(fv)
		} else {
			timeout = to
		}
	}

	if c.clean("processor_type", "input_tokens") {
		if mv := datatypes.CheckProcessorCapacity(processorType, inputTokens); mv != nil {
			c.addModel(mv)
		}
	}

	if !c.empty() {
		return nil, datatypes.NewValidationFailure(hash, c.records)
	}

	model, mv := datatypes.NewProcessingRequest(inputData, inputTokens, processorType, timeout)
	if mv != nil {
		// Unreachable: capacity was checked in the model stage above.
		return nil, datatypes.NewValidationFailure(hash, []datatypes.ViolationRecord{datatypes.RecordFromModel(mv)})
	}
	return model, datatypes.NewValidationSuccess(hash)
}

// recordHash computes the canonical hash of a raw record. JSON-decoded
// records always marshal; a failure means the caller handed us values that
// never came from JSON, and the hash degrades to the empty string rather
// than masking the construction verdict.
func recordHash(raw map[string]any) string {
	h, err := validation.ComputeRecordHash(raw)
	if err != nil {
		return ""
	}
	return h
}
