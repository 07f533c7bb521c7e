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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckProcessorCapacity(t *testing.T) {
	tests := []struct {
		name      string
		processor ProcessorType
		tokens    int
		violates  bool
	}{
		{"local under capacity", ProcessorLocal, 4095, false},
		{"local exactly at capacity", ProcessorLocal, 4096, false},
		{"local one over capacity", ProcessorLocal, 4097, true},
		{"cloud has no cap", ProcessorCloud, 100_000, false},
		{"hybrid has no cap", ProcessorHybrid, 100_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, cv := NewTokenCount(tt.tokens)
			require.Nil(t, cv)

			v := CheckProcessorCapacity(tt.processor, tokens)
			if tt.violates {
				require.NotNil(t, v)
				assert.Equal(t, []string{"processor_type", "input_tokens"}, v.Fields)
				assert.Contains(t, v.Rule, "4096")
			} else {
				assert.Nil(t, v)
			}
		})
	}
}

func TestNewProcessingRequest(t *testing.T) {
	t.Run("valid parts yield an immutable model", func(t *testing.T) {
		tokens, cv := NewTokenCount(750)
		require.Nil(t, cv)
		timeout, cv := NewTimeout(30.0)
		require.Nil(t, cv)

		req, v := NewProcessingRequest("summarize this document", tokens, ProcessorHybrid, timeout)
		require.Nil(t, v)
		require.NotNil(t, req)

		assert.Equal(t, "summarize this document", req.InputData())
		assert.Equal(t, 750, req.InputTokens().Count())
		assert.Equal(t, ProcessorHybrid, req.ProcessorType())
		assert.Equal(t, 30.0, req.TimeoutSeconds().Seconds())
	})

	t.Run("local over capacity yields no model", func(t *testing.T) {
		tokens, cv := NewTokenCount(5000)
		require.Nil(t, cv)
		timeout, cv := NewTimeout(30.0)
		require.Nil(t, cv)

		req, v := NewProcessingRequest("too big for local", tokens, ProcessorLocal, timeout)
		assert.Nil(t, req)
		require.NotNil(t, v)
		assert.Equal(t, []string{"processor_type", "input_tokens"}, v.Fields)
	})
}

func TestProcessingRequestRawForm(t *testing.T) {
	tokens, cv := NewTokenCount(100)
	require.Nil(t, cv)
	timeout, cv := NewTimeout(15.5)
	require.Nil(t, cv)

	req, v := NewProcessingRequest("hello", tokens, ProcessorCloud, timeout)
	require.Nil(t, v)

	raw := req.RawForm()
	assert.Equal(t, "hello", raw["input_data"])
	assert.Equal(t, 100.0, raw["input_tokens"])
	assert.Equal(t, "cloud", raw["processor_type"])
	assert.Equal(t, 15.5, raw["timeout_seconds"])
}
