// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package assembly packages math-engine results into the terminal
// OutputSchema.
//
// Assembly is a structural combinator: it performs no validation of its own
// and trusts the upstream layers completely. The integrity layer guarantees
// a consistent ValidationResult, the engine guarantees a well-formed result
// for validated input, and routing guarantees a resolved processor. A
// malformed combination reaching this package is a defect upstream and is
// reported as an AssemblyError, never as a validation failure.
package assembly

import (
	"encoding/json"
	"time"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// Success wraps a computed result with the ValidationResult that authorized
// it, the resolved processor, elapsed processing time, and the number of
// retries spent getting the result.
//
// The result must be JSON-serializable and the processor must be resolved
// (cloud or local); either failing is a defect upstream, surfaced as an
// AssemblyError.
func Success(
	result any,
	validation datatypes.ValidationResult,
	processor datatypes.ProcessorType,
	elapsed time.Duration,
	retries int,
) (datatypes.OutputSchema, error) {
	if !processor.IsResolved() {
		return datatypes.OutputSchema{}, &datatypes.AssemblyError{
			Reason: "processor must be resolved to cloud or local before assembly",
		}
	}
	if retries < 0 {
		return datatypes.OutputSchema{}, &datatypes.AssemblyError{
			Reason: "negative retry count",
		}
	}
	if _, err := json.Marshal(result); err != nil {
		return datatypes.OutputSchema{}, &datatypes.AssemblyError{
			Reason: "result is not serializable",
			Err:    err,
		}
	}
	return datatypes.OutputSchema{
		Result:           result,
		Validation:       validation,
		ProcessorUsed:    processor,
		ProcessingTimeMs: elapsedMs(elapsed),
		RetriesAttempted: retries,
	}, nil
}

// Rejected wraps an aggregated validation failure. No computation happened,
// so the result is nil, no retries were spent, and the processor slot is
// filled with local: nothing ran, but the schema never carries an unset
// processor.
func Rejected(validation datatypes.ValidationResult, elapsed time.Duration) datatypes.OutputSchema {
	return datatypes.OutputSchema{
		Result:           nil,
		Validation:       validation,
		ProcessorUsed:    datatypes.ProcessorLocal,
		ProcessingTimeMs: elapsedMs(elapsed),
		RetriesAttempted: 0,
	}
}

// elapsedMs converts a measured duration to non-negative milliseconds.
// Clock adjustments can yield a negative measurement; clamp rather than
// emit an impossible value.
func elapsedMs(elapsed time.Duration) float64 {
	ms := float64(elapsed.Microseconds()) / 1000.0
	if ms < 0 {
		return 0
	}
	return ms
}
