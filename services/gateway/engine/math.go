// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine implements the pure math core of the Diamond Gate pipeline.
//
// Every function here is stateless and side-effect free: no I/O, no logging,
// no shared mutable state. Functions consume only validated models and
// in-range scalars; malformed user input cannot reach this package because
// the integrity layer rejects it first. The only failure mode is a
// DomainError on a mathematically undefined input (an empty component list,
// an out-of-range probability), which can happen solely through direct API
// misuse that bypassed construction. A DomainError is a programming defect
// to investigate, not a condition to retry or surface as validation.
package engine

import (
	"github.com/AleutianAI/diamondgate/pkg/validation"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// =============================================================================
// Reliability
// =============================================================================

// SystemSuccessProbability computes the probability that a request succeeds
// given independent cloud and local failure probabilities.
//
// With failover enabled the system fails only when both processors fail:
//
//	P(success) = 1 - P(cloud fail) * P(local fail)
//
// Without failover the local processor never gets a chance, so:
//
//	P(success) = 1 - P(cloud fail)
//
// Both probabilities must be in [0, 1]; anything else is a DomainError.
func SystemSuccessProbability(cloudFailureProb, localFailureProb float64, failoverEnabled bool) (float64, error) {
	if !validation.IsValidProbability(cloudFailureProb) {
		return 0, &datatypes.DomainError{Op: "SystemSuccessProbability", Reason: "cloud failure probability must be in [0, 1]"}
	}
	if !validation.IsValidProbability(localFailureProb) {
		return 0, &datatypes.DomainError{Op: "SystemSuccessProbability", Reason: "local failure probability must be in [0, 1]"}
	}
	if !failoverEnabled {
		return 1.0 - cloudFailureProb, nil
	}
	return 1.0 - cloudFailureProb*localFailureProb, nil
}

// ParallelAvailability computes the combined availability of redundant
// components: the system is up unless every component is down.
//
//	A = 1 - prod(1 - A_i)
//
// An empty component list describes no system at all and is a DomainError.
func ParallelAvailability(componentAvailabilities []float64) (float64, error) {
	if err := checkAvailabilities("ParallelAvailability", componentAvailabilities); err != nil {
		return 0, err
	}
	failure := 1.0
	for _, a := range componentAvailabilities {
		failure *= 1.0 - a
	}
	return 1.0 - failure, nil
}

// SeriesAvailability computes the combined availability of sequential
// components: the system is down if any component is down.
//
//	A = prod(A_i)
//
// An empty component list is a DomainError.
func SeriesAvailability(componentAvailabilities []float64) (float64, error) {
	if err := checkAvailabilities("SeriesAvailability", componentAvailabilities); err != nil {
		return 0, err
	}
	combined := 1.0
	for _, a := range componentAvailabilities {
		combined *= a
	}
	return combined, nil
}

// AvailabilityFromMTBF computes steady-state availability from mean time
// between failures and mean time to repair, in any shared time unit.
//
//	A = MTBF / (MTBF + MTTR)
//
// Both inputs must be positive.
func AvailabilityFromMTBF(mtbf, mttr float64) (float64, error) {
	if !validation.IsFinite(mtbf) || mtbf <= 0 {
		return 0, &datatypes.DomainError{Op: "AvailabilityFromMTBF", Reason: "mtbf must be positive and finite"}
	}
	if !validation.IsFinite(mttr) || mttr <= 0 {
		return 0, &datatypes.DomainError{Op: "AvailabilityFromMTBF", Reason: "mttr must be positive and finite"}
	}
	return mtbf / (mtbf + mttr), nil
}

func checkAvailabilities(op string, availabilities []float64) error {
	if len(availabilities) == 0 {
		return &datatypes.DomainError{Op: op, Reason: "component list is empty; availability of no system is undefined"}
	}
	for _, a := range availabilities {
		if !validation.IsValidProbability(a) {
			return &datatypes.DomainError{Op: op, Reason: "component availabilities must be in [0, 1]"}
		}
	}
	return nil
}
