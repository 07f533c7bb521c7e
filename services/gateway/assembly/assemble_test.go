// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package assembly

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

func TestSuccess(t *testing.T) {
	vr := datatypes.NewValidationSuccess("abc123")

	out, err := Success("the answer", vr, datatypes.ProcessorCloud, 150*time.Millisecond, 1)
	require.NoError(t, err)

	assert.Equal(t, "the answer", out.Result)
	assert.Equal(t, vr, out.Validation)
	assert.Equal(t, datatypes.ProcessorCloud, out.ProcessorUsed)
	assert.InDelta(t, 150.0, out.ProcessingTimeMs, 0.001)
	assert.Equal(t, 1, out.RetriesAttempted)
}

func TestSuccessStructuredResult(t *testing.T) {
	vr := datatypes.NewValidationSuccess("abc123")
	result := map[string]any{"nyquist_ok": true, "sample_count": 88200}

	out, err := Success(result, vr, datatypes.ProcessorLocal, time.Millisecond, 0)
	require.NoError(t, err)
	assert.Equal(t, result, out.Result)
}

func TestSuccessRejectsUnresolvedProcessor(t *testing.T) {
	vr := datatypes.NewValidationSuccess("abc123")

	for _, p := range []datatypes.ProcessorType{datatypes.ProcessorHybrid, ""} {
		_, err := Success("result", vr, p, time.Millisecond, 0)
		var ae *datatypes.AssemblyError
		require.True(t, errors.As(err, &ae), "processor %q", p)
		assert.Contains(t, ae.Reason, "resolved")
	}
}

func TestSuccessRejectsNegativeRetries(t *testing.T) {
	vr := datatypes.NewValidationSuccess("abc123")

	_, err := Success("result", vr, datatypes.ProcessorCloud, time.Millisecond, -1)
	var ae *datatypes.AssemblyError
	require.True(t, errors.As(err, &ae))
}

func TestSuccessRejectsUnserializableResult(t *testing.T) {
	vr := datatypes.NewValidationSuccess("abc123")

	_, err := Success(make(chan int), vr, datatypes.ProcessorCloud, time.Millisecond, 0)
	var ae *datatypes.AssemblyError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Reason, "serializable")
	assert.Error(t, errors.Unwrap(err))
}

func TestRejected(t *testing.T) {
	vr := datatypes.NewValidationFailure("abc123", []datatypes.ViolationRecord{
		{Fields: []string{"amplitude"}, Rule: datatypes.RuleAmplitudeRange, Code: datatypes.CodeValidationError},
	})

	out := Rejected(vr, 2*time.Millisecond)

	assert.Nil(t, out.Result, "no computation happened")
	assert.Equal(t, vr, out.Validation)
	assert.Equal(t, datatypes.ProcessorLocal, out.ProcessorUsed, "rejection never carries an unset processor")
	assert.Equal(t, 0, out.RetriesAttempted)
	assert.InDelta(t, 2.0, out.ProcessingTimeMs, 0.001)
}

func TestElapsedClampsNegative(t *testing.T) {
	out := Rejected(datatypes.NewValidationSuccess("x"), -5*time.Millisecond)
	assert.Equal(t, 0.0, out.ProcessingTimeMs)
}
