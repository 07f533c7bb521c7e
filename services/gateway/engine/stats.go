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
	"math"
	"sort"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// Descriptive statistics over sample slices. Empty input is a DomainError
// everywhere: the mean of nothing is not zero, it is undefined.

// Mean returns the arithmetic mean of the samples.
func Mean(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Mean")
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples)), nil
}

// Median returns the middle sample, or the mean of the two middle samples
// for even-length input. The input slice is not modified.
func Median(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Median")
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0, nil
}

// Variance returns the sample variance (Bessel-corrected, n-1 denominator).
// Requires at least two samples.
func Variance(samples []float64) (float64, error) {
	if len(samples) < 2 {
		return 0, &datatypes.DomainError{Op: "Variance", Reason: "sample variance requires at least two samples"}
	}
	mean, _ := Mean(samples)
	sumSq := 0.0
	for _, s := range samples {
		d := s - mean
		sumSq += d * d
	}
	return sumSq / float64(len(samples)-1), nil
}

// StdDev returns the sample standard deviation. Requires at least two
// samples.
func StdDev(samples []float64) (float64, error) {
	v, err := Variance(samples)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Min returns the smallest sample.
func Min(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Min")
	}
	m := samples[0]
	for _, s := range samples[1:] {
		if s < m {
			m = s
		}
	}
	return m, nil
}

// Max returns the largest sample.
func Max(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Max")
	}
	m := samples[0]
	for _, s := range samples[1:] {
		if s > m {
			m = s
		}
	}
	return m, nil
}

// Sum returns the total of the samples.
func Sum(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Sum")
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum, nil
}

// Product returns the product of the samples.
func Product(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, emptySamples("Product")
	}
	p := 1.0
	for _, s := range samples {
		p *= s
	}
	return p, nil
}

// Divide returns a/b, with division by zero reported as a DomainError
// rather than an IEEE infinity.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &datatypes.DomainError{Op: "Divide", Reason: "division by zero"}
	}
	return a / b, nil
}

func emptySamples(op string) error {
	return &datatypes.DomainError{Op: op, Reason: "sample list is empty"}
}
