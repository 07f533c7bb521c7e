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

import "fmt"

// localMaxTokens is the largest input a local processor can handle.
const localMaxTokens = 4096

// RuleLocalTokenCapacity is the cross-field rule for processor_type vs.
// input_tokens.
const RuleLocalTokenCapacity = "local processor cannot handle more than 4096 tokens; use cloud or hybrid"

// ProcessingRequest is a validated request for processing.
//
// # Description
//
// Immutable composite model built only by NewProcessingRequest. The input
// text is non-empty and sanitized, the token count is within range, and the
// processor selection is compatible with the token count (a local processor
// is never asked to handle more than it can hold).
//
// A request is created per inbound call, consumed once by routing and
// processing, and never persisted.
//
// # Thread Safety
//
// Immutable after construction; safe to share across goroutines.
type ProcessingRequest struct {
	inputData      string
	inputTokens    TokenCount
	processorType  ProcessorType
	timeoutSeconds Timeout
}

// NewProcessingRequest assembles a ProcessingRequest from field-validated
// parts, running the processor/token compatibility check across them.
//
// # Inputs
//
//   - inputData: Non-empty, sanitized input text (the integrity package
//     enforces both before calling)
//   - inputTokens: Field-validated token count
//   - processorType: Valid ProcessorType; ProcessorHybrid means "route for me"
//   - timeout: Field-validated per-request timeout
//
// # Outputs
//
//   - *ProcessingRequest: The finalized model, or nil on violation
//   - *ModelConstraintViolation: The compatibility violation, or nil
func NewProcessingRequest(
	inputData string,
	inputTokens TokenCount,
	processorType ProcessorType,
	timeout Timeout,
) (*ProcessingRequest, *ModelConstraintViolation) {
	if v := CheckProcessorCapacity(processorType, inputTokens); v != nil {
		return nil, v
	}
	return &ProcessingRequest{
		inputData:      inputData,
		inputTokens:    inputTokens,
		processorType:  processorType,
		timeoutSeconds: timeout,
	}, nil
}

// CheckProcessorCapacity is the cross-field validator for processor_type vs.
// input_tokens. Pure.
func CheckProcessorCapacity(processorType ProcessorType, tokens TokenCount) *ModelConstraintViolation {
	if processorType == ProcessorLocal && tokens.Count() > localMaxTokens {
		return &ModelConstraintViolation{
			Fields: []string{"processor_type", "input_tokens"},
			Rule:   fmt.Sprintf("%s (got %d tokens)", RuleLocalTokenCapacity, tokens.Count()),
		}
	}
	return nil
}

// InputData returns the sanitized input text.
func (r *ProcessingRequest) InputData() string { return r.inputData }

// InputTokens returns the validated token count.
func (r *ProcessingRequest) InputTokens() TokenCount { return r.inputTokens }

// ProcessorType returns the requested processor selection strategy.
func (r *ProcessingRequest) ProcessorType() ProcessorType { return r.processorType }

// TimeoutSeconds returns the validated per-request timeout.
func (r *ProcessingRequest) TimeoutSeconds() Timeout { return r.timeoutSeconds }

// RawForm returns the request as the raw record shape accepted by the
// integrity layer. Re-constructing from RawForm yields an identical model.
func (r *ProcessingRequest) RawForm() map[string]any {
	return map[string]any{
		"input_data":      r.inputData,
		"input_tokens":    float64(r.inputTokens.Count()),
		"processor_type":  string(r.processorType),
		"timeout_seconds": r.timeoutSeconds.Seconds(),
	}
}
