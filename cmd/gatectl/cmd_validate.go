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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/integrity"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// validateCmd validates a raw JSON record file against a strict model.
//
// # Examples
//
//	gatectl validate signal config.json    # Validate a signal configuration
//	gatectl validate request request.json  # Validate a processing request
//
// Exit status is 0 when the record validates, 1 when it is rejected, so the
// command composes into shell pipelines.
var validateCmd = &cobra.Command{
	Use:   "validate <signal|request> <file.json>",
	Short: "Validate a raw JSON record against the gateway's strict models",
	Args:  cobra.ExactArgs(2),
	RunE:  runValidateCommand,
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s is not a JSON object: %w", path, err)
	}

	var vr datatypes.ValidationResult
	switch kind {
	case "signal":
		_, vr = integrity.ConstructSignalConfig(raw)
	case "request":
		_, vr = integrity.ConstructProcessingRequest(raw, gateConfig.TimeoutSeconds)
	default:
		return fmt.Errorf("unknown model kind %q (want signal or request)", kind)
	}

	printField("input_hash", "%s", vr.InputHash)
	if vr.IsValid {
		printOK("valid")
		return nil
	}

	printError("rejected with %d violation(s)", len(vr.Errors))
	for _, rec := range vr.Errors {
		printField(strings.Join(rec.Fields, ","), "%s", rec.Rule)
	}
	// Rejection is the command's answer, not a usage error.
	cmd.SilenceErrors = true
	return fmt.Errorf("validation failed")
}
