// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the gateway.
//
// Metrics cover the full pipeline: construction attempts and rejections
// (by model kind and rule), stage latencies, and processing dispatch
// results. Exposed via the /metrics endpoint; all operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "diamondgate"

// GatewayMetrics holds all Prometheus metrics for the validation gateway.
// Initialize once at startup via NewGatewayMetrics().
type GatewayMetrics struct {
	// ConstructionsTotal counts construction attempts.
	// Labels: model (signal_config, processing_request), status (ok, error)
	ConstructionsTotal *prometheus.CounterVec

	// ViolationsTotal counts individual violations across rejections.
	// Labels: model, field (first implicated field path)
	ViolationsTotal *prometheus.CounterVec

	// ConstructDurationSeconds measures construction latency.
	// Labels: model
	ConstructDurationSeconds *prometheus.HistogramVec

	// ProcessingsTotal counts processing dispatches.
	// Labels: processor (cloud, local), status (success, error)
	ProcessingsTotal *prometheus.CounterVec

	// ProcessingDurationSeconds measures end-to-end processing latency.
	// Labels: processor
	ProcessingDurationSeconds *prometheus.HistogramVec

	// RetriesTotal counts retry attempts spent by the processor manager.
	RetriesTotal prometheus.Counter
}

// NewGatewayMetrics registers and returns the gateway metric set on the
// default registry. Call exactly once per process.
func NewGatewayMetrics() *GatewayMetrics {
	return newGatewayMetrics(prometheus.DefaultRegisterer)
}

// NewGatewayMetricsFor registers on a caller-supplied registry. Tests use
// this to avoid duplicate registration across cases.
func NewGatewayMetricsFor(reg prometheus.Registerer) *GatewayMetrics {
	return newGatewayMetrics(reg)
}

func newGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	factory := promauto.With(reg)
	return &GatewayMetrics{
		ConstructionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "constructions_total",
			Help:      "Model construction attempts by model kind and outcome.",
		}, []string{"model", "status"}),
		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "violations_total",
			Help:      "Validation violations by model kind and field path.",
		}, []string{"model", "field"}),
		ConstructDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "construct_duration_seconds",
			Help:      "Latency of model construction.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"model"}),
		ProcessingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "processings_total",
			Help:      "Processing dispatches by processor and outcome.",
		}, []string{"processor", "status"}),
		ProcessingDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "processing_duration_seconds",
			Help:      "End-to-end processing latency by processor.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"processor"}),
		RetriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retries_total",
			Help:      "Retry attempts spent by the processor manager.",
		}),
	}
}
