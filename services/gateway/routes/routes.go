// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/diamondgate/services/gateway/config"
	"github.com/AleutianAI/diamondgate/services/gateway/handlers"
	"github.com/AleutianAI/diamondgate/services/gateway/middleware"
	"github.com/AleutianAI/diamondgate/services/gateway/observability"
	"github.com/AleutianAI/diamondgate/services/processor"
)

// SetupRoutes wires the gateway's endpoints onto a router.
//
// Health and metrics stay outside the authenticated group so probes and
// scrapers work without credentials.
func SetupRoutes(router *gin.Engine, cfg config.GatewayConfig,
	manager *processor.Manager, metrics *observability.GatewayMetrics) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(
		middleware.RequestID(),
		middleware.AuthMiddleware(cfg.AuthToken),
		middleware.RateLimit(100, 200),
	)
	{
		validate := v1.Group("/validate")
		{
			validate.POST("/signal", handlers.HandleValidateSignal(metrics))
			validate.POST("/request", handlers.HandleValidateRequest(cfg, metrics))
			validate.GET("/ws", handlers.HandleValidateStream(cfg, metrics))
		}
		v1.POST("/process/request", handlers.HandleProcessRequest(cfg, manager, metrics))
		v1.GET("/route", handlers.HandleRoute(cfg))
		v1.POST("/availability", handlers.HandleAvailability())
		v1.GET("/success-probability", handlers.HandleSuccessProbability(cfg))
		v1.POST("/signal/analysis", handlers.HandleSignalAnalysis(metrics))
	}
}
