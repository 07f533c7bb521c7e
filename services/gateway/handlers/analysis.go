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
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/diamondgate/services/gateway/assembly"
	"github.com/AleutianAI/diamondgate/services/gateway/config"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/engine"
	"github.com/AleutianAI/diamondgate/services/gateway/integrity"
	"github.com/AleutianAI/diamondgate/services/gateway/observability"
)

// HandleRoute answers which processor would handle an input of the given
// size, without processing anything.
//
// GET /v1/route?tokens=N[&threshold=T]. Query values are transport strings,
// so parsing them here is HTTP decoding, not validation-layer coercion; the
// parsed count still goes through the constrained constructor.
func HandleRoute(cfg config.GatewayConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokensRaw := c.Query("tokens")
		tokensN, err := strconv.Atoi(tokensRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tokens must be an integer"})
			return
		}
		tokens, cv := datatypes.NewTokenCount(tokensN)
		if cv != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": cv.Rule})
			return
		}

		threshold := cfg.TokenThreshold
		if t := c.Query("threshold"); t != "" {
			threshold, err = strconv.Atoi(t)
			if err != nil || threshold <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a positive integer"})
				return
			}
		}

		routed, routeErr := engine.RouteByTokenThreshold(tokens, threshold)
		if routeErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": datatypes.CodeDomainError})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"processor": routed,
			"tokens":    tokens.Count(),
			"threshold": threshold,
		})
	}
}

// availabilityRequest is the body for the availability endpoint.
type availabilityRequest struct {
	Availabilities []float64 `json:"availabilities" binding:"required"`
	Mode           string    `json:"mode" binding:"required,oneof=parallel series"`
}

// HandleAvailability computes combined availability for a component set,
// in parallel (redundant) or series (sequential) arrangement.
func HandleAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req availabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var combined float64
		var err error
		if req.Mode == "parallel" {
			combined, err = engine.ParallelAvailability(req.Availabilities)
		} else {
			combined, err = engine.SeriesAvailability(req.Availabilities)
		}
		if err != nil {
			// Empty or out-of-range components: the binding let through a
			// record the math rejects. Report as a client error; the engine
			// itself treats this as misuse.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": datatypes.CodeDomainError})
			return
		}
		c.JSON(http.StatusOK, gin.H{"availability": combined, "mode": req.Mode})
	}
}

// HandleSuccessProbability computes the failover success probability from
// the configured failure probabilities.
func HandleSuccessProbability(cfg config.GatewayConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := engine.SystemSuccessProbability(
			cfg.CloudFailureProbability, cfg.LocalFailureProbability, cfg.EnableFailover)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": datatypes.CodeDomainError})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success_probability": p,
			"failover_enabled":    cfg.EnableFailover,
		})
	}
}

// HandleSignalAnalysis validates a raw signal configuration and, when it
// passes, returns the derived analysis (Nyquist frequency, required rate,
// sample counts) as the OutputSchema result.
func HandleSignalAnalysis(metrics *observability.GatewayMetrics) gin.HandlerFunc {
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
		emitValidated(c, engine.AnalyzeSignal(model), vr, time.Since(start))
	}
}
