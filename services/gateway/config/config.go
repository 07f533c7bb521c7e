// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config defines the gateway's explicit configuration.
//
// There is no process-wide configuration singleton and no environment
// reading inside the pipeline: the server shell (cmd/gateway) or test
// harness builds a GatewayConfig once and passes it down to construction,
// routing, and the processor manager at call time.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// GatewayConfig carries every tunable the pipeline consumes.
//
// Fields are validated as a whole by Validate; a config that fails
// validation must not be handed to the pipeline.
type GatewayConfig struct {
	// TokenThreshold routes hybrid requests to cloud when input_tokens
	// strictly exceeds it.
	TokenThreshold int `yaml:"token_threshold" validate:"gt=0,lte=100000"`

	// MaxRetries bounds processing attempts after the first.
	MaxRetries int `yaml:"max_retries" validate:"gte=0,lte=10"`

	// TimeoutSeconds is the default per-request timeout applied when a
	// request omits timeout_seconds.
	TimeoutSeconds float64 `yaml:"timeout_seconds" validate:"gt=0,lte=300"`

	// CloudFailureProbability and LocalFailureProbability feed the
	// reliability calculations.
	CloudFailureProbability float64 `yaml:"cloud_failure_probability" validate:"gte=0,lte=1"`
	LocalFailureProbability float64 `yaml:"local_failure_probability" validate:"gte=0,lte=1"`

	// EnableFailover lets the processor manager fall back to the other
	// backend when the routed one fails.
	EnableFailover bool `yaml:"enable_failover"`

	// FailoverTimeoutMs bounds how long a failed attempt may hang before
	// the manager gives up and fails over.
	FailoverTimeoutMs int `yaml:"failover_timeout_ms" validate:"gt=0"`

	// AuthToken, when non-empty, is required as a bearer token on every
	// API request. Empty disables authentication (local development).
	AuthToken string `yaml:"auth_token"`
}

// Default returns the stock configuration.
func Default() GatewayConfig {
	return GatewayConfig{
		TokenThreshold:          500,
		MaxRetries:              3,
		TimeoutSeconds:          30.0,
		CloudFailureProbability: 0.01,
		LocalFailureProbability: 0.05,
		EnableFailover:          true,
		FailoverTimeoutMs:       5000,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config's field constraints.
func (c GatewayConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}
	return nil
}

// Load reads a YAML config file over the defaults. Omitted keys keep their
// default values; the merged result is validated before being returned.
func Load(path string) (GatewayConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return GatewayConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GatewayConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GatewayConfig{}, err
	}
	return cfg, nil
}
