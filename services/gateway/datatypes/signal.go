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

import "fmt"

// RuleNyquist is the cross-field rule for sampling rate vs. frequency.
// Strict inequality: a rate of exactly twice the frequency still aliases.
const RuleNyquist = "sampling_rate must be greater than 2 * frequency (Nyquist criterion)"

// SignalConfig describes a signal to validate or process.
//
// # Description
//
// SignalConfig is an immutable composite model. All fields are unexported;
// the only way to obtain one is NewSignalConfig, which enforces the Nyquist
// criterion across the already-validated scalar fields. A SignalConfig in
// hand therefore satisfies every field-level constraint (positive finite
// rates, amplitude in (0,1], positive duration and channels) and the
// cross-field invariant sampling_rate > 2 * frequency.
//
// # Thread Safety
//
// Immutable after construction; safe to share across goroutines.
type SignalConfig struct {
	signalType   SignalType
	samplingRate SamplingRate
	frequency    Frequency
	amplitude    Amplitude
	duration     Duration
	channels     ChannelCount
}

// NewSignalConfig assembles a SignalConfig from field-validated scalars.
//
// # Description
//
// Runs the cross-field Nyquist check over the given scalars. On success the
// returned model is finalized and immutable. On failure no model is returned
// and the violation names both implicated fields.
//
// # Inputs
//
//   - signalType: Must be a valid SignalType (caller's responsibility; the
//     integrity package guarantees it)
//   - samplingRate, frequency, amplitude, duration, channels: Field-validated
//     scalars from this package's constructors
//
// # Outputs
//
//   - *SignalConfig: The finalized model, or nil on violation
//   - *ModelConstraintViolation: The Nyquist violation, or nil on success
func NewSignalConfig(
	signalType SignalType,
	samplingRate SamplingRate,
	frequency Frequency,
	amplitude Amplitude,
	duration Duration,
	channels ChannelCount,
) (*SignalConfig, *ModelConstraintViolation) {
	if v := CheckNyquistInvariant(samplingRate, frequency); v != nil {
		return nil, v
	}
	return &SignalConfig{
		signalType:   signalType,
		samplingRate: samplingRate,
		frequency:    frequency,
		amplitude:    amplitude,
		duration:     duration,
		channels:     channels,
	}, nil
}

// CheckNyquistInvariant is the cross-field validator for sampling rate vs.
// frequency. Pure: identical inputs always yield the identical verdict.
func CheckNyquistInvariant(samplingRate SamplingRate, frequency Frequency) *ModelConstraintViolation {
	nyquistRate := 2 * frequency.Hertz()
	if samplingRate.Hertz() <= nyquistRate {
		return &ModelConstraintViolation{
			Fields: []string{"sampling_rate", "frequency"},
			Rule: fmt.Sprintf("%s: sampling_rate (%v) must be > %v",
				RuleNyquist, samplingRate.Hertz(), nyquistRate),
		}
	}
	return nil
}

// SignalType returns the signal classification.
func (s *SignalConfig) SignalType() SignalType { return s.signalType }

// SamplingRate returns the validated sampling rate.
func (s *SignalConfig) SamplingRate() SamplingRate { return s.samplingRate }

// Frequency returns the validated signal frequency.
func (s *SignalConfig) Frequency() Frequency { return s.frequency }

// Amplitude returns the validated normalized amplitude.
func (s *SignalConfig) Amplitude() Amplitude { return s.amplitude }

// Duration returns the validated signal duration.
func (s *SignalConfig) Duration() Duration { return s.duration }

// Channels returns the validated channel count.
func (s *SignalConfig) Channels() ChannelCount { return s.channels }

// RawForm returns the model as the raw record shape accepted by the
// integrity layer. Re-constructing from RawForm yields an identical model;
// validation is idempotent.
func (s *SignalConfig) RawForm() map[string]any {
	return map[string]any{
		"signal_type":   string(s.signalType),
		"sampling_rate": s.samplingRate.Hertz(),
		"frequency":     s.frequency.Hertz(),
		"amplitude":     s.amplitude.Value(),
		"duration":      s.duration.Seconds(),
		"channels":      float64(s.channels.Count()),
	}
}
