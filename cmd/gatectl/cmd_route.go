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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/engine"
)

var (
	routeTokens    int
	routeThreshold int
)

// routeCmd shows the routing decision for a token count.
//
// # Examples
//
//	gatectl route --tokens 750              # cloud (above default 500)
//	gatectl route --tokens 500              # local (not strictly above)
//	gatectl route --tokens 750 --threshold 1000
var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Show which processor would handle an input of the given size",
	RunE:  runRouteCommand,
}

func init() {
	routeCmd.Flags().IntVar(&routeTokens, "tokens", 0, "input token count")
	routeCmd.Flags().IntVar(&routeThreshold, "threshold", 0,
		"token threshold (defaults to the configured value)")
	_ = routeCmd.MarkFlagRequired("tokens")
}

func runRouteCommand(cmd *cobra.Command, args []string) error {
	tokens, cv := datatypes.NewTokenCount(routeTokens)
	if cv != nil {
		return fmt.Errorf("%s", cv.Rule)
	}

	threshold := routeThreshold
	if threshold == 0 {
		threshold = gateConfig.TokenThreshold
	}

	routed, err := engine.RouteByTokenThreshold(tokens, threshold)
	if err != nil {
		return err
	}
	printField("tokens", "%d", tokens.Count())
	printField("threshold", "%d", threshold)
	printOK("%s", routed)
	return nil
}
