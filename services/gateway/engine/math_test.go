// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

func TestSystemSuccessProbability(t *testing.T) {
	tests := []struct {
		name     string
		cloud    float64
		local    float64
		failover bool
		want     float64
	}{
		{"reference figures with failover", 0.01, 0.05, true, 0.9995},
		{"failover disabled ignores local", 0.01, 0.05, false, 0.99},
		{"perfect cloud", 0.0, 0.5, true, 1.0},
		{"both certain to fail", 1.0, 1.0, true, 0.0},
		{"certain cloud failure with reliable local", 1.0, 0.05, true, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SystemSuccessProbability(tt.cloud, tt.local, tt.failover)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSystemSuccessProbabilityDomainErrors(t *testing.T) {
	tests := []struct {
		name  string
		cloud float64
		local float64
	}{
		{"negative cloud probability", -0.1, 0.05},
		{"cloud probability above one", 1.1, 0.05},
		{"negative local probability", 0.01, -0.5},
		{"local probability above one", 0.01, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SystemSuccessProbability(tt.cloud, tt.local, true)
			var de *datatypes.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "SystemSuccessProbability", de.Op)
		})
	}
}

func TestParallelAvailability(t *testing.T) {
	tests := []struct {
		name       string
		components []float64
		want       float64
	}{
		{"two nines components", []float64{0.9, 0.9}, 0.99},
		{"single component", []float64{0.95}, 0.95},
		{"three components", []float64{0.9, 0.9, 0.9}, 0.999},
		{"one perfect component", []float64{1.0, 0.5}, 1.0},
		{"all dead", []float64{0.0, 0.0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParallelAvailability(tt.components)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSeriesAvailability(t *testing.T) {
	tests := []struct {
		name       string
		components []float64
		want       float64
	}{
		{"two nines components", []float64{0.9, 0.9}, 0.81},
		{"single component", []float64{0.95}, 0.95},
		{"perfect chain", []float64{1.0, 1.0, 1.0}, 1.0},
		{"one dead component kills the chain", []float64{0.99, 0.0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeriesAvailability(tt.components)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAvailabilityDomainErrors(t *testing.T) {
	t.Run("empty list is undefined, not zero", func(t *testing.T) {
		_, err := ParallelAvailability(nil)
		var de *datatypes.DomainError
		require.True(t, errors.As(err, &de))

		_, err = SeriesAvailability([]float64{})
		require.True(t, errors.As(err, &de))
	})

	t.Run("out of range component", func(t *testing.T) {
		_, err := ParallelAvailability([]float64{0.9, 1.5})
		var de *datatypes.DomainError
		require.True(t, errors.As(err, &de))

		_, err = SeriesAvailability([]float64{-0.1})
		require.True(t, errors.As(err, &de))
	})
}

func TestAvailabilityFromMTBF(t *testing.T) {
	t.Run("typical figures", func(t *testing.T) {
		// 990 hours between failures, 10 hours to repair: three nines.
		got, err := AvailabilityFromMTBF(990.0, 10.0)
		require.NoError(t, err)
		assert.InDelta(t, 0.99, got, 1e-9)
	})

	t.Run("non-positive inputs are domain errors", func(t *testing.T) {
		var de *datatypes.DomainError
		_, err := AvailabilityFromMTBF(0.0, 10.0)
		require.True(t, errors.As(err, &de))
		_, err = AvailabilityFromMTBF(990.0, -1.0)
		require.True(t, errors.As(err, &de))
	})
}
