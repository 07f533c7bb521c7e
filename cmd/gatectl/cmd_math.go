// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/diamondgate/services/gateway/engine"
)

var (
	mathParallel string
	mathSeries   string
	mathCloud    float64
	mathLocal    float64
	mathFailover bool
)

var mathCmd = &cobra.Command{
	Use:   "math",
	Short: "Reliability calculations over component availabilities",
}

// availabilityCmd computes combined availability for components given as a
// comma-separated list.
//
// # Examples
//
//	gatectl math availability --parallel 0.9,0.9   # 0.99
//	gatectl math availability --series 0.9,0.9     # 0.81
var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Combined availability of parallel or series components",
	RunE:  runAvailabilityCommand,
}

// successCmd computes the failover success probability.
//
// # Examples
//
//	gatectl math success --cloud 0.01 --local 0.05   # 0.9995
var successCmd = &cobra.Command{
	Use:   "success",
	Short: "System success probability under cloud/local failover",
	RunE:  runSuccessCommand,
}

func init() {
	availabilityCmd.Flags().StringVar(&mathParallel, "parallel", "", "comma-separated availabilities of redundant components")
	availabilityCmd.Flags().StringVar(&mathSeries, "series", "", "comma-separated availabilities of sequential components")
	successCmd.Flags().Float64Var(&mathCloud, "cloud", 0.01, "cloud failure probability")
	successCmd.Flags().Float64Var(&mathLocal, "local", 0.05, "local failure probability")
	successCmd.Flags().BoolVar(&mathFailover, "failover", true, "whether failover is enabled")

	mathCmd.AddCommand(availabilityCmd)
	mathCmd.AddCommand(successCmd)
}

func runAvailabilityCommand(cmd *cobra.Command, args []string) error {
	if (mathParallel == "") == (mathSeries == "") {
		return fmt.Errorf("exactly one of --parallel or --series is required")
	}

	spec, mode := mathParallel, "parallel"
	calc := engine.ParallelAvailability
	if mathSeries != "" {
		spec, mode, calc = mathSeries, "series", engine.SeriesAvailability
	}

	avails, err := parseFloats(spec)
	if err != nil {
		return err
	}
	combined, err := calc(avails)
	if err != nil {
		return err
	}
	printField("mode", "%s", mode)
	printOK("%g", combined)
	return nil
}

func runSuccessCommand(cmd *cobra.Command, args []string) error {
	p, err := engine.SystemSuccessProbability(mathCloud, mathLocal, mathFailover)
	if err != nil {
		return err
	}
	printField("failover", "%t", mathFailover)
	printOK("%g", p)
	return nil
}

func parseFloats(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid availability %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}
