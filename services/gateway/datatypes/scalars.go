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

import "math"

// =============================================================================
// Constrained Scalar Types
// =============================================================================
//
// Each scalar wraps a raw value behind an unexported field and a single
// fallible constructor. The constructor is pure and total: every raw input
// maps deterministically to either a wrapped value or a ConstraintViolation
// naming the field, the raw value, and the violated rule. There is no other
// way to obtain a non-zero value of these types, so holding one is proof the
// invariant holds.
//
// No coercion is performed anywhere in this file. A textual numeral is a
// type-stage problem and never reaches these constructors; see the
// integrity package.

// Rule strings attached to ConstraintViolations. These are part of the API
// surface: clients match on them and tests assert them.
const (
	RuleFrequencyPositiveFinite = "frequency must be a positive, finite number of hertz"
	RuleSamplingRatePositive    = "sampling_rate must be a positive, finite number of hertz"
	RuleAmplitudeRange          = "amplitude must be in (0, 1]"
	RuleDurationPositive        = "duration must be a positive, finite number of seconds"
	RuleChannelsPositive        = "channels must be a positive integer"
	RuleTokenCountRange         = "input_tokens must be a non-negative integer no greater than 1000000"
	RuleTimeoutPositive         = "timeout_seconds must be a positive, finite number of seconds"
)

// maxTokenCount caps input_tokens; anything above it is a malformed request,
// not a real document.
const maxTokenCount = 1_000_000

// Frequency is a signal frequency in hertz. Positive and finite.
type Frequency struct {
	hz float64
}

// NewFrequency wraps a raw frequency value, rejecting zero, negatives,
// infinities, and NaN.
func NewFrequency(raw float64) (Frequency, *ConstraintViolation) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return Frequency{}, &ConstraintViolation{
			FieldPath: "frequency",
			RawValue:  raw,
			Rule:      RuleFrequencyPositiveFinite,
		}
	}
	return Frequency{hz: raw}, nil
}

// Hertz returns the wrapped frequency value.
func (f Frequency) Hertz() float64 { return f.hz }

// SamplingRate is a sampling rate in hertz. Positive and finite.
type SamplingRate struct {
	hz float64
}

// NewSamplingRate wraps a raw sampling rate, rejecting zero, negatives,
// infinities, and NaN.
func NewSamplingRate(raw float64) (SamplingRate, *ConstraintViolation) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return SamplingRate{}, &ConstraintViolation{
			FieldPath: "sampling_rate",
			RawValue:  raw,
			Rule:      RuleSamplingRatePositive,
		}
	}
	return SamplingRate{hz: raw}, nil
}

// Hertz returns the wrapped sampling rate value.
func (s SamplingRate) Hertz() float64 { return s.hz }

// Amplitude is a normalized signal amplitude in (0, 1].
type Amplitude struct {
	value float64
}

// NewAmplitude wraps a raw amplitude, rejecting zero, negatives, values
// above 1, infinities, and NaN.
func NewAmplitude(raw float64) (Amplitude, *ConstraintViolation) {
	if !(raw > 0 && raw <= 1) {
		return Amplitude{}, &ConstraintViolation{
			FieldPath: "amplitude",
			RawValue:  raw,
			Rule:      RuleAmplitudeRange,
		}
	}
	return Amplitude{value: raw}, nil
}

// Value returns the wrapped amplitude.
func (a Amplitude) Value() float64 { return a.value }

// Duration is a signal duration in seconds. Positive and finite.
type Duration struct {
	seconds float64
}

// NewDuration wraps a raw duration, rejecting zero, negatives, infinities,
// and NaN.
func NewDuration(raw float64) (Duration, *ConstraintViolation) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return Duration{}, &ConstraintViolation{
			FieldPath: "duration",
			RawValue:  raw,
			Rule:      RuleDurationPositive,
		}
	}
	return Duration{seconds: raw}, nil
}

// Seconds returns the wrapped duration value.
func (d Duration) Seconds() float64 { return d.seconds }

// ChannelCount is the number of channels in a signal. Positive.
type ChannelCount struct {
	n int
}

// NewChannelCount wraps a raw channel count, rejecting zero and negatives.
func NewChannelCount(raw int) (ChannelCount, *ConstraintViolation) {
	if raw <= 0 {
		return ChannelCount{}, &ConstraintViolation{
			FieldPath: "channels",
			RawValue:  raw,
			Rule:      RuleChannelsPositive,
		}
	}
	return ChannelCount{n: raw}, nil
}

// Count returns the wrapped channel count.
func (c ChannelCount) Count() int { return c.n }

// TokenCount is the number of tokens in a request input. Non-negative,
// capped at one million.
type TokenCount struct {
	n int
}

// NewTokenCount wraps a raw token count, rejecting negatives and counts
// above the cap.
func NewTokenCount(raw int) (TokenCount, *ConstraintViolation) {
	if raw < 0 || raw > maxTokenCount {
		return TokenCount{}, &ConstraintViolation{
			FieldPath: "input_tokens",
			RawValue:  raw,
			Rule:      RuleTokenCountRange,
		}
	}
	return TokenCount{n: raw}, nil
}

// Count returns the wrapped token count.
func (t TokenCount) Count() int { return t.n }

// Timeout is a per-request timeout in seconds. Positive and finite.
type Timeout struct {
	seconds float64
}

// NewTimeout wraps a raw timeout, rejecting zero, negatives, infinities,
// and NaN.
func NewTimeout(raw float64) (Timeout, *ConstraintViolation) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return Timeout{}, &ConstraintViolation{
			FieldPath: "timeout_seconds",
			RawValue:  raw,
			Rule:      RuleTimeoutPositive,
		}
	}
	return Timeout{seconds: raw}, nil
}

// Seconds returns the wrapped timeout value.
func (t Timeout) Seconds() float64 { return t.seconds }
