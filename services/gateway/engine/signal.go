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

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// DefaultSamplingMargin is the safety margin applied above the bare Nyquist
// rate when sizing a sampling rate for a known maximum frequency.
const DefaultSamplingMargin = 1.1

// CheckNyquist reports whether a sampling rate can represent a signal of
// the given frequency without aliasing. Strict inequality: a rate of
// exactly twice the frequency fails.
//
// The invariant is already enforced on every SignalConfig; this is exposed
// for analysis and introspection over arbitrary validated scalars.
func CheckNyquist(samplingRate datatypes.SamplingRate, frequency datatypes.Frequency) bool {
	return samplingRate.Hertz() > 2*frequency.Hertz()
}

// NyquistFrequency returns the highest frequency a sampling rate can
// faithfully represent: half the rate.
func NyquistFrequency(samplingRate datatypes.SamplingRate) float64 {
	return samplingRate.Hertz() / 2.0
}

// RequiredSamplingRate returns the minimum sampling rate for a signal with
// the given maximum frequency, scaled by a safety margin above the bare
// Nyquist rate. A margin below 1 would prescribe an aliasing rate and is a
// DomainError.
func RequiredSamplingRate(maxFrequency datatypes.Frequency, margin float64) (float64, error) {
	if math.IsNaN(margin) || math.IsInf(margin, 0) || margin < 1 {
		return 0, &datatypes.DomainError{Op: "RequiredSamplingRate", Reason: "margin must be a finite value >= 1"}
	}
	return 2.0 * maxFrequency.Hertz() * margin, nil
}

// SampleCount returns the number of samples captured over a signal's
// duration at its sampling rate, rounded to the nearest integer.
func SampleCount(duration datatypes.Duration, samplingRate datatypes.SamplingRate) int {
	return int(math.Round(duration.Seconds() * samplingRate.Hertz()))
}

// SignalAnalysis is the derived view of a validated SignalConfig computed
// by AnalyzeSignal.
type SignalAnalysis struct {
	NyquistOK            bool    `json:"nyquist_ok"`
	NyquistFrequencyHz   float64 `json:"nyquist_frequency_hz"`
	RequiredSamplingRate float64 `json:"required_sampling_rate_hz"`
	SampleCount          int     `json:"sample_count"`
	TotalSamples         int     `json:"total_samples"`
}

// AnalyzeSignal derives the standard analysis figures from a validated
// SignalConfig. NyquistOK is always true for a finalized config; it is
// reported anyway for introspection symmetry with CheckNyquist.
func AnalyzeSignal(cfg *datatypes.SignalConfig) SignalAnalysis {
	required, _ := RequiredSamplingRate(cfg.Frequency(), DefaultSamplingMargin)
	perChannel := SampleCount(cfg.Duration(), cfg.SamplingRate())
	return SignalAnalysis{
		NyquistOK:            CheckNyquist(cfg.SamplingRate(), cfg.Frequency()),
		NyquistFrequencyHz:   NyquistFrequency(cfg.SamplingRate()),
		RequiredSamplingRate: required,
		SampleCount:          perChannel,
		TotalSamples:         perChannel * cfg.Channels().Count(),
	}
}
