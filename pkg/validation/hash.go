// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ComputeInputHash returns the SHA-256 hex digest of raw input bytes.
//
// The hash identifies a raw input across retries and audit records: the
// integrity layer computes it identically on both the success and failure
// paths, so a caller retrying the same payload can correlate results.
func ComputeInputHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ComputeRecordHash returns the SHA-256 hex digest of a raw record's
// canonical JSON form.
//
// encoding/json marshals map keys in sorted order, so two records with the
// same fields and values hash identically regardless of insertion order.
// Marshaling a map of JSON-decoded values cannot fail; an error here means
// the record held a non-JSON value and is reported as such.
func ComputeRecordHash(record map[string]any) (string, error) {
	canonical, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return ComputeInputHash(canonical), nil
}
