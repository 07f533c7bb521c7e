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
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/diamondgate/services/gateway/assembly"
	"github.com/AleutianAI/diamondgate/services/gateway/config"
	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
	"github.com/AleutianAI/diamondgate/services/gateway/integrity"
	"github.com/AleutianAI/diamondgate/services/gateway/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// The gateway sits behind the deployment's ingress; origin policy
		// is enforced there.
		return true
	},
}

// validateFrame is one inbound message on the validation stream.
type validateFrame struct {
	// Model selects the kind: "signal_config" or "processing_request".
	Model string `json:"model"`

	// Data is the raw record to construct.
	Data map[string]any `json:"data"`
}

// wsError is the error frame sent for malformed stream messages (as opposed
// to validation rejections, which get a full OutputSchema like HTTP does).
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// HandleValidateStream validates a stream of raw records over a WebSocket.
//
// Each inbound frame names a model kind and carries a raw record; each
// outbound frame is the same OutputSchema the HTTP endpoints produce.
// Unknown model kinds and unparseable frames get an error frame and the
// stream continues; transport errors end the session.
func HandleValidateStream(cfg config.GatewayConfig, metrics *observability.GatewayMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error.
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		for {
			var frame validateFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Warn("websocket read failed", "error", err)
				}
				return
			}

			start := time.Now()
			var out any
			switch frame.Model {
			case modelSignal:
				model, vr := integrity.ConstructSignalConfig(frame.Data)
				observeConstruction(metrics, modelSignal, vr, time.Since(start))
				if !vr.IsValid {
					out = assembly.Rejected(vr, time.Since(start))
				} else if schema, asmErr := assembly.Success(model.RawForm(), vr,
					datatypes.ProcessorLocal, time.Since(start), 0); asmErr == nil {
					out = schema
				} else {
					out = wsError{Type: "error", Error: "internal error"}
				}
			case modelRequest:
				model, vr := integrity.ConstructProcessingRequest(frame.Data, cfg.TimeoutSeconds)
				observeConstruction(metrics, modelRequest, vr, time.Since(start))
				if !vr.IsValid {
					out = assembly.Rejected(vr, time.Since(start))
				} else if schema, asmErr := assembly.Success(model.RawForm(), vr,
					datatypes.ProcessorLocal, time.Since(start), 0); asmErr == nil {
					out = schema
				} else {
					out = wsError{Type: "error", Error: "internal error"}
				}
			default:
				out = wsError{Type: "error", Error: "model must be signal_config or processing_request"}
			}

			if err := conn.WriteJSON(out); err != nil {
				slog.Warn("websocket write failed", "error", err)
				return
			}
		}
	}
}
