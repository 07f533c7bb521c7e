// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/diamondgate/services/gateway/assembly"
	"github.com/AleutianAI/diamondgate/services/gateway/config"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/integrity"
	"github.com/AleutianAI/diamondgate/services/gateway/observability"
)

// modelSignal and modelRequest label metrics by model kind.
const (
	modelSignal  = "signal_config"
	modelRequest = "processing_request"
)

// HandleValidateSignal validates a raw signal configuration.
//
// 200 with the validated record echoed back on success; 422 with the
// aggregated violation set on rejection. Either way the body is a full
// OutputSchema whose validation block carries the input hash.
func HandleValidateSignal(metrics *observability.GatewayMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bindRecord(c)
		if !ok {
			return
		}

		start := time.Now()
		model, vr := integrity.ConstructSignalConfig(raw)
		observeConstruction(metrics, modelSignal, vr, time.Since(start))

		if !vr.IsValid {
			c.JSON(http.StatusUnprocessableEntity, assembly.Rejected(vr, time.Since(start)))
			return
		}
		emitValidated(c, model.RawForm(), vr, time.Since(start))
	}
}

// HandleValidateRequest validates a raw processing request without
// dispatching it to any processor.
func HandleValidateRequest(cfg config.GatewayConfig, metrics *observability.GatewayMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bindRecord(c)
		if !ok {
			return
		}

		start := time.Now()
		model, vr := integrity.ConstructProcessingRequest(raw, cfg.TimeoutSeconds)
		observeConstruction(metrics, modelRequest, vr, time.Since(start))

		if !vr.IsValid {
			c.JSON(http.StatusUnprocessableEntity, assembly.Rejected(vr, time.Since(start)))
			return
		}
		emitValidated(c, model.RawForm(), vr, time.Since(start))
	}
}

// bindRecord decodes the request body into an untyped record. A body that
// is not a JSON object never reaches construction; it gets a plain 400.
func bindRecord(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return nil, false
	}
	return raw, true
}

// emitValidated assembles and writes the success OutputSchema for a
// validate-only endpoint. No processor ran, so the slot reads local with
// zero retries.
func emitValidated(c *gin.Context, result any, vr datatypes.ValidationResult, elapsed time.Duration) {
	out, err := assembly.Success(result, vr, datatypes.ProcessorLocal, elapsed, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": datatypes.CodeAssemblyError})
		return
	}
	c.JSON(http.StatusOK, out)
}

// observeConstruction records construction metrics. Nil metrics means a
// test harness that did not wire observability.
func observeConstruction(metrics *observability.GatewayMetrics, model string, vr datatypes.ValidationResult, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.ConstructionsTotal.WithLabelValues(model, string(vr.Status)).Inc()
	metrics.ConstructDurationSeconds.WithLabelValues(model).Observe(elapsed.Seconds())
	for _, rec := range vr.Errors {
		field := "unknown"
		if len(rec.Fields) > 0 {
			field = rec.Fields[0]
		}
		metrics.ViolationsTotal.WithLabelValues(model, field).Inc()
	}
}
