// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides the validated domain models for the Diamond Gate
// pipeline: constrained scalar types, the composite SignalConfig and
// ProcessingRequest models, and the ValidationResult/OutputSchema wire types.
//
// Every model in this package is immutable once constructed. Composite models
// expose unexported fields behind getters and can only be built through their
// fallible constructors, so a value of one of these types is proof that every
// field-level and cross-field constraint holds. Downstream layers (the math
// engine, output assembly) rely on that proof and never re-check their inputs.
package datatypes

// =============================================================================
// ENUMS
// =============================================================================

// SignalType classifies the signal described by a SignalConfig.
//
// Valid Values:
//   - "analog": Continuous-time signal sampled at a fixed rate
//   - "digital": Already-discretized signal
//   - "hybrid": Mixed analog/digital chain
type SignalType string

const (
	SignalAnalog  SignalType = "analog"
	SignalDigital SignalType = "digital"
	SignalHybrid  SignalType = "hybrid"
)

// validSignalTypes contains all valid SignalType values for validation.
var validSignalTypes = map[SignalType]bool{
	SignalAnalog:  true,
	SignalDigital: true,
	SignalHybrid:  true,
}

// IsValid reports whether the SignalType is one of the defined constants.
func (s SignalType) IsValid() bool {
	return validSignalTypes[s]
}

// ProcessorType selects which backend handles a ProcessingRequest.
//
// Valid Values:
//   - "cloud": Hosted frontier model (OpenAI-compatible API)
//   - "local": On-box model (Ollama)
//   - "hybrid": No explicit preference; the router decides by token count
//
// ProcessorHybrid is a request-side strategy only. It never appears in an
// OutputSchema: routing always resolves it to cloud or local before any
// processing happens.
type ProcessorType string

const (
	ProcessorCloud  ProcessorType = "cloud"
	ProcessorLocal  ProcessorType = "local"
	ProcessorHybrid ProcessorType = "hybrid"
)

// validProcessorTypes contains all valid ProcessorType values for validation.
var validProcessorTypes = map[ProcessorType]bool{
	ProcessorCloud:  true,
	ProcessorLocal:  true,
	ProcessorHybrid: true,
}

// IsValid reports whether the ProcessorType is one of the defined constants.
func (p ProcessorType) IsValid() bool {
	return validProcessorTypes[p]
}

// IsResolved reports whether the ProcessorType names a concrete backend.
// Hybrid is a routing strategy, not a backend, so it is not resolved.
func (p ProcessorType) IsResolved() bool {
	return p == ProcessorCloud || p == ProcessorLocal
}

// ValidationStatus is the terminal status of a construction attempt.
type ValidationStatus string

const (
	StatusOK    ValidationStatus = "ok"
	StatusError ValidationStatus = "error"
)

// IsValid reports whether the ValidationStatus is one of the defined constants.
func (v ValidationStatus) IsValid() bool {
	return v == StatusOK || v == StatusError
}
