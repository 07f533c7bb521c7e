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
	"log"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/diamondgate/services/gateway/config"
)

// gateConfig holds the loaded gateway configuration for all subcommands.
var gateConfig = config.Default()

// configPath is settable via the global --config flag.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "gatectl",
	Short: "Validate and route signal configurations and processing requests",
	Long: `gatectl exercises the Diamond Gate pipeline from the command line.

It validates raw JSON records against the gateway's strict models, shows
routing decisions, and computes the reliability figures the gateway serves,
all without a running server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a gateway config.yaml (defaults apply when omitted)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			return
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config %s: %v", configPath, err)
		}
		gateConfig = cfg
	}

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(mathCmd)
}
