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
	"github.com/AleutianAI/diamondgate/services/processor"
)

// HandleProcessRequest runs the full pipeline: construct, route, process,
// assemble.
//
// Rejections return 422 with the aggregated violations; processor failures
// after the retry budget return 502; a successful run returns 200 with the
// processor's output, the resolved processor, timing, and the retries spent.
func HandleProcessRequest(cfg config.GatewayConfig, manager *processor.Manager, metrics *observability.GatewayMetrics) gin.HandlerFunc {
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

		outcome, err := manager.Process(c.Request.Context(), model)
		observeProcessing(metrics, outcome, err)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":             "processing failed",
				"code":              datatypes.CodeProcessingError,
				"retries_attempted": outcome.RetriesAttempted,
			})
			return
		}

		out, asmErr := assembly.Success(outcome.Result, vr, outcome.ProcessorUsed,
			time.Since(start), outcome.RetriesAttempted)
		if asmErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": datatypes.CodeAssemblyError})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func observeProcessing(metrics *observability.GatewayMetrics, outcome processor.Outcome, err error) {
	if metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	proc := string(outcome.ProcessorUsed)
	metrics.ProcessingsTotal.WithLabelValues(proc, status).Inc()
	metrics.ProcessingDurationSeconds.WithLabelValues(proc).Observe(outcome.Elapsed.Seconds())
	metrics.RetriesTotal.Add(float64(outcome.RetriesAttempted))
}
