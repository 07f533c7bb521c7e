// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package integrity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// validSignalRecord returns a record that passes every stage. Tests mutate a
// copy to introduce specific defects.
func validSignalRecord() map[string]any {
	return map[string]any{
		"signal_type":   "analog",
		"sampling_rate": 44100.0,
		"frequency":     440.0,
		"amplitude":     0.5,
		"duration":      1.0,
		"channels":      2.0,
	}
}

func validRequestRecord() map[string]any {
	return map[string]any{
		"input_data":      "summarize the attached report",
		"input_tokens":    750.0,
		"processor_type":  "hybrid",
		"timeout_seconds": 30.0,
	}
}

// =============================================================================
// SignalConfig Construction
// =============================================================================

func TestConstructSignalConfigValid(t *testing.T) {
	model, vr := ConstructSignalConfig(validSignalRecord())

	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
	assert.Equal(t, datatypes.StatusOK, vr.Status)
	assert.Empty(t, vr.Errors)
	assert.Len(t, vr.InputHash, 64, "input hash is a full SHA-256 hex digest")

	assert.Equal(t, datatypes.SignalAnalog, model.SignalType())
	assert.Equal(t, 44100.0, model.SamplingRate().Hertz())
	assert.Equal(t, 2, model.Channels().Count())
}

func TestConstructSignalConfigDefaultsChannels(t *testing.T) {
	raw := validSignalRecord()
	delete(raw, "channels")

	model, vr := ConstructSignalConfig(raw)
	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
	assert.Equal(t, DefaultChannels, model.Channels().Count())
}

func TestConstructSignalConfigNoCoercion(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"numeric string for sampling_rate", "sampling_rate", "44100"},
		{"numeric string with decimal", "frequency", "440.0"},
		{"boolean for amplitude", "amplitude", true},
		{"fractional channels", "channels", 2.5},
		{"string channels", "channels", "2"},
		{"number for signal_type", "signal_type", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validSignalRecord()
			raw[tt.field] = tt.value

			model, vr := ConstructSignalConfig(raw)
			assert.Nil(t, model)
			require.False(t, vr.IsValid)
			require.Len(t, vr.Errors, 1)
			assert.Equal(t, []string{tt.field}, vr.Errors[0].Fields)
			assert.Equal(t, tt.value, vr.Errors[0].Value, "violation carries the raw value untouched")
		})
	}
}

func TestConstructSignalConfigMissingFields(t *testing.T) {
	raw := map[string]any{}

	model, vr := ConstructSignalConfig(raw)
	assert.Nil(t, model)
	require.False(t, vr.IsValid)
	// channels is optional; the other five are required.
	require.Len(t, vr.Errors, 5)

	var fields []string
	for _, rec := range vr.Errors {
		fields = append(fields, rec.Fields...)
		assert.Contains(t, rec.Rule, "required")
	}
	assert.Equal(t, []string{"signal_type", "sampling_rate", "frequency", "amplitude", "duration"}, fields)
}

func TestConstructSignalConfigNullIsMissing(t *testing.T) {
	raw := validSignalRecord()
	raw["frequency"] = nil

	model, vr := ConstructSignalConfig(raw)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Contains(t, vr.Errors[0].Rule, "required")
}

func TestConstructSignalConfigNyquistViolation(t *testing.T) {
	raw := validSignalRecord()
	raw["sampling_rate"] = 1000.0
	raw["frequency"] = 500.0

	model, vr := ConstructSignalConfig(raw)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Equal(t, []string{"sampling_rate", "frequency"}, vr.Errors[0].Fields)
	assert.Contains(t, vr.Errors[0].Rule, "Nyquist")
}

func TestConstructSignalConfigAggregatesAcrossPaths(t *testing.T) {
	// Bad amplitude does not suppress the Nyquist check on clean fields:
	// the caller sees both violations in one pass, field-stage first.
	raw := validSignalRecord()
	raw["amplitude"] = 1.5
	raw["sampling_rate"] = 1000.0
	raw["frequency"] = 500.0

	model, vr := ConstructSignalConfig(raw)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 2)
	assert.Equal(t, []string{"amplitude"}, vr.Errors[0].Fields)
	assert.Equal(t, []string{"sampling_rate", "frequency"}, vr.Errors[1].Fields)
}

func TestConstructSignalConfigBadRateSuppressesNyquist(t *testing.T) {
	// When an implicated field failed its own stage, the cross-field check
	// cannot run; it must not report a second violation over garbage.
	raw := validSignalRecord()
	raw["sampling_rate"] = -1.0
	raw["frequency"] = 500.0

	model, vr := ConstructSignalConfig(raw)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Equal(t, []string{"sampling_rate"}, vr.Errors[0].Fields)
}

func TestConstructSignalConfigDeterministic(t *testing.T) {
	raw := validSignalRecord()
	raw["amplitude"] = -0.5
	raw["duration"] = 0.0

	first := func() datatypes.ValidationResult {
		_, vr := ConstructSignalConfig(raw)
		return vr
	}()
	for i := 0; i < 3; i++ {
		_, vr := ConstructSignalConfig(raw)
		assert.Equal(t, first, vr, "identical input must yield identical output, violation order included")
	}
}

func TestConstructSignalConfigIdempotent(t *testing.T) {
	model, vr := ConstructSignalConfig(validSignalRecord())
	require.NotNil(t, model)

	again, vr2 := ConstructSignalConfig(model.RawForm())
	require.NotNil(t, again)
	assert.True(t, vr2.IsValid)
	assert.Equal(t, model.SamplingRate().Hertz(), again.SamplingRate().Hertz())
	assert.Equal(t, model.Channels().Count(), again.Channels().Count())
	assert.Equal(t, vr.InputHash, vr2.InputHash, "RawForm round-trips to the same canonical record")
}

func TestConstructSignalConfigHashStableAcrossVerdicts(t *testing.T) {
	raw := validSignalRecord()
	_, ok := ConstructSignalConfig(raw)

	raw2 := validSignalRecord()
	raw2["amplitude"] = 1.5
	_, bad := ConstructSignalConfig(raw2)

	assert.NotEmpty(t, ok.InputHash)
	assert.NotEmpty(t, bad.InputHash)
	assert.NotEqual(t, ok.InputHash, bad.InputHash, "different records hash differently")

	// Same record, failing: hash identical to the successful computation of
	// the same bytes.
	_, bad2 := ConstructSignalConfig(raw2)
	assert.Equal(t, bad.InputHash, bad2.InputHash)
}

func TestConstructSignalConfigIgnoresUnknownFields(t *testing.T) {
	raw := validSignalRecord()
	raw["comment"] = "operator note"

	model, vr := ConstructSignalConfig(raw)
	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
}

// =============================================================================
// ProcessingRequest Construction
// =============================================================================

func TestConstructProcessingRequestValid(t *testing.T) {
	model, vr := ConstructProcessingRequest(validRequestRecord(), 30.0)

	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
	assert.Equal(t, "summarize the attached report", model.InputData())
	assert.Equal(t, 750, model.InputTokens().Count())
	assert.Equal(t, datatypes.ProcessorHybrid, model.ProcessorType())
	assert.Equal(t, 30.0, model.TimeoutSeconds().Seconds())
}

func TestConstructProcessingRequestDefaults(t *testing.T) {
	raw := map[string]any{
		"input_data":   "short task",
		"input_tokens": 10.0,
	}

	model, vr := ConstructProcessingRequest(raw, 45.0)
	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
	assert.Equal(t, datatypes.ProcessorHybrid, model.ProcessorType(), "processor defaults to hybrid")
	assert.Equal(t, 45.0, model.TimeoutSeconds().Seconds(), "timeout defaults from configuration")
}

func TestConstructProcessingRequestSanitizesInput(t *testing.T) {
	raw := validRequestRecord()
	raw["input_data"] = "line one\x00\x01\nline two\tend\x7f"

	model, vr := ConstructProcessingRequest(raw, 30.0)
	require.NotNil(t, model)
	assert.True(t, vr.IsValid)
	assert.Equal(t, "line one\nline two\tend", model.InputData())
}

func TestConstructProcessingRequestRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"control characters only", "\x00\x01\x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRequestRecord()
			raw["input_data"] = tt.input

			model, vr := ConstructProcessingRequest(raw, 30.0)
			assert.Nil(t, model)
			require.Len(t, vr.Errors, 1)
			assert.Equal(t, []string{"input_data"}, vr.Errors[0].Fields)
			assert.Contains(t, vr.Errors[0].Rule, "non-empty")
		})
	}
}

func TestConstructProcessingRequestRejectsOversizedInput(t *testing.T) {
	raw := validRequestRecord()
	raw["input_data"] = strings.Repeat("a", 1_000_001)

	model, vr := ConstructProcessingRequest(raw, 30.0)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Contains(t, vr.Errors[0].Rule, "1000000")
}

func TestConstructProcessingRequestNoCoercion(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"string token count", "input_tokens", "750"},
		{"fractional token count", "input_tokens", 750.5},
		{"numeric processor type", "processor_type", 1.0},
		{"string timeout", "timeout_seconds", "30"},
		{"boolean input data", "input_data", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRequestRecord()
			raw[tt.field] = tt.value

			model, vr := ConstructProcessingRequest(raw, 30.0)
			assert.Nil(t, model)
			require.Len(t, vr.Errors, 1)
			assert.Equal(t, []string{tt.field}, vr.Errors[0].Fields)
		})
	}
}

func TestConstructProcessingRequestInvalidEnum(t *testing.T) {
	raw := validRequestRecord()
	raw["processor_type"] = "mainframe"

	model, vr := ConstructProcessingRequest(raw, 30.0)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Contains(t, vr.Errors[0].Rule, "cloud, local, hybrid")
}

func TestConstructProcessingRequestLocalCapacity(t *testing.T) {
	t.Run("local at capacity passes", func(t *testing.T) {
		raw := validRequestRecord()
		raw["processor_type"] = "local"
		raw["input_tokens"] = 4096.0

		model, vr := ConstructProcessingRequest(raw, 30.0)
		require.NotNil(t, model)
		assert.True(t, vr.IsValid)
	})

	t.Run("local over capacity fails the model stage", func(t *testing.T) {
		raw := validRequestRecord()
		raw["processor_type"] = "local"
		raw["input_tokens"] = 4097.0

		model, vr := ConstructProcessingRequest(raw, 30.0)
		assert.Nil(t, model)
		require.Len(t, vr.Errors, 1)
		assert.Equal(t, []string{"processor_type", "input_tokens"}, vr.Errors[0].Fields)
	})

	t.Run("bad token count suppresses the capacity check", func(t *testing.T) {
		raw := validRequestRecord()
		raw["processor_type"] = "local"
		raw["input_tokens"] = -1.0

		model, vr := ConstructProcessingRequest(raw, 30.0)
		assert.Nil(t, model)
		require.Len(t, vr.Errors, 1)
		assert.Equal(t, []string{"input_tokens"}, vr.Errors[0].Fields)
	})
}

func TestConstructProcessingRequestBadExplicitTimeout(t *testing.T) {
	raw := validRequestRecord()
	raw["timeout_seconds"] = 0.0

	model, vr := ConstructProcessingRequest(raw, 30.0)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Equal(t, []string{"timeout_seconds"}, vr.Errors[0].Fields)
}

func TestConstructProcessingRequestBadDefaultTimeout(t *testing.T) {
	raw := map[string]any{
		"input_data":   "hello",
		"input_tokens": 1.0,
	}

	model, vr := ConstructProcessingRequest(raw, 0.0)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 1)
	assert.Equal(t, []string{"timeout_seconds"}, vr.Errors[0].Fields)
}

func TestConstructProcessingRequestIdempotent(t *testing.T) {
	model, vr := ConstructProcessingRequest(validRequestRecord(), 30.0)
	require.NotNil(t, model)

	again, vr2 := ConstructProcessingRequest(model.RawForm(), 30.0)
	require.NotNil(t, again)
	assert.True(t, vr2.IsValid)
	assert.Equal(t, model.InputData(), again.InputData())
	assert.Equal(t, vr.InputHash, vr2.InputHash)
}

func TestConstructProcessingRequestAggregatesAllViolations(t *testing.T) {
	raw := map[string]any{
		"input_data":      "",
		"input_tokens":    -5.0,
		"processor_type":  "mainframe",
		"timeout_seconds": -1.0,
	}

	model, vr := ConstructProcessingRequest(raw, 30.0)
	assert.Nil(t, model)
	require.Len(t, vr.Errors, 4, "every independent field path reports its violation")
	assert.Equal(t, []string{"input_data"}, vr.Errors[0].Fields)
	assert.Equal(t, []string{"input_tokens"}, vr.Errors[1].Fields)
	assert.Equal(t, []string{"processor_type"}, vr.Errors[2].Fields)
	assert.Equal(t, []string{"timeout_seconds"}, vr.Errors[3].Fields)
}
