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

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	_, err = Mean(nil)
	var de *datatypes.DomainError
	require.True(t, errors.As(err, &de), "mean of nothing is undefined, not zero")
}

func TestMedian(t *testing.T) {
	t.Run("odd length", func(t *testing.T) {
		got, err := Median([]float64{3, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)
	})

	t.Run("even length averages the middle pair", func(t *testing.T) {
		got, err := Median([]float64{4, 1, 3, 2})
		require.NoError(t, err)
		assert.Equal(t, 2.5, got)
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		samples := []float64{3, 1, 2}
		_, err := Median(samples)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, samples)
	})

	t.Run("empty is a domain error", func(t *testing.T) {
		_, err := Median(nil)
		var de *datatypes.DomainError
		require.True(t, errors.As(err, &de))
	})
}

func TestVarianceAndStdDev(t *testing.T) {
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	v, err := Variance(samples)
	require.NoError(t, err)
	assert.InDelta(t, 32.0/7.0, v, 1e-9, "Bessel-corrected variance")

	sd, err := StdDev(samples)
	require.NoError(t, err)
	assert.InDelta(t, 2.138089935, sd, 1e-6)

	var de *datatypes.DomainError
	_, err = Variance([]float64{1.0})
	require.True(t, errors.As(err, &de), "a single sample has no sample variance")
	_, err = StdDev(nil)
	require.True(t, errors.As(err, &de))
}

func TestMinMaxSumProduct(t *testing.T) {
	samples := []float64{3.0, -1.0, 4.0, 1.5}

	mn, err := Min(samples)
	require.NoError(t, err)
	assert.Equal(t, -1.0, mn)

	mx, err := Max(samples)
	require.NoError(t, err)
	assert.Equal(t, 4.0, mx)

	sum, err := Sum(samples)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, sum, 1e-9)

	prod, err := Product(samples)
	require.NoError(t, err)
	assert.InDelta(t, -18.0, prod, 1e-9)

	var de *datatypes.DomainError
	for _, f := range []func([]float64) (float64, error){Min, Max, Sum, Product} {
		_, err := f(nil)
		require.True(t, errors.As(err, &de))
	}
}

func TestDivide(t *testing.T) {
	got, err := Divide(10.0, 4.0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	_, err = Divide(1.0, 0.0)
	var de *datatypes.DomainError
	require.True(t, errors.As(err, &de), "division by zero is an error, not an infinity")
}
