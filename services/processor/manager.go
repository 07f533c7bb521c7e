// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/diamondgate/services/gateway/config"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/engine"
)

var tracer = otel.Tracer("diamondgate.processor")

// Outcome is what one managed processing run produced, ready for output
// assembly.
type Outcome struct {
	Result           string
	ProcessorUsed    datatypes.ProcessorType
	RetriesAttempted int
	Elapsed          time.Duration
}

// Manager routes validated requests and executes them with retry and
// failover.
//
// Routing is delegated to the pure engine; the manager owns only the messy
// parts: per-attempt deadlines, the retry budget, and the cloud/local
// failover alternation.
type Manager struct {
	cloud Processor
	local Processor
	cfg   config.GatewayConfig
}

// NewManager wires a manager over the two backends. Both must be non-nil;
// the manager has no notion of a missing backend.
func NewManager(cloud, local Processor, cfg config.GatewayConfig) (*Manager, error) {
	if cloud == nil || local == nil {
		return nil, fmt.Errorf("manager requires both cloud and local processors")
	}
	return &Manager{cloud: cloud, local: local, cfg: cfg}, nil
}

// Process routes and executes a validated request.
//
// The first attempt goes to the routed backend with the request's timeout.
// On failure, if failover is enabled, subsequent attempts alternate to the
// other backend under the failover timeout, spending the MaxRetries budget.
// RetriesAttempted counts attempts after the first, whether or not the run
// ultimately succeeded.
func (m *Manager) Process(ctx context.Context, req *datatypes.ProcessingRequest) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Manager.Process")
	defer span.End()

	routed, err := engine.RouteRequest(req, m.cfg.TokenThreshold)
	if err != nil {
		// Only reachable with a broken config; a validated request cannot
		// produce a routing domain error.
		return Outcome{}, err
	}
	span.SetAttributes(attribute.String("processor.routed", string(routed)))

	start := time.Now()
	current := m.backend(routed)
	retries := 0
	var lastErr error

	for attempt := 0; attempt <= m.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			retries++
			if m.cfg.EnableFailover {
				current = m.other(current)
			}
		}

		result, attemptErr := m.attempt(ctx, current, req, attempt)
		if attemptErr == nil {
			return Outcome{
				Result:           result,
				ProcessorUsed:    current.Name(),
				RetriesAttempted: retries,
				Elapsed:          time.Since(start),
			}, nil
		}
		lastErr = attemptErr
		slog.Warn("processing attempt failed",
			"processor", current.Name(), "attempt", attempt, "error", attemptErr)

		if ctx.Err() != nil {
			break
		}
	}

	return Outcome{
		ProcessorUsed:    current.Name(),
		RetriesAttempted: retries,
		Elapsed:          time.Since(start),
	}, fmt.Errorf("processing failed after %d retries: %w", retries, lastErr)
}

func (m *Manager) attempt(ctx context.Context, p Processor, req *datatypes.ProcessingRequest, attempt int) (string, error) {
	timeout := time.Duration(req.TimeoutSeconds().Seconds() * float64(time.Second))
	if attempt > 0 {
		// Failover attempts run under the shorter failover budget.
		failover := time.Duration(m.cfg.FailoverTimeoutMs) * time.Millisecond
		if failover < timeout {
			timeout = failover
		}
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Process(attemptCtx, req)
}

func (m *Manager) backend(t datatypes.ProcessorType) Processor {
	if t == datatypes.ProcessorCloud {
		return m.cloud
	}
	return m.local
}

func (m *Manager) other(p Processor) Processor {
	if p == m.cloud {
		return m.local
	}
	return m.cloud
}
