// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package processor dispatches validated requests to LLM backends.
//
// The pipeline core stops at routing: this package is the external
// collaborator that actually invokes a processor, applies per-attempt
// timeouts, retries, and failover between the cloud and local backends.
// It consumes only finalized ProcessingRequest models.
package processor

import (
	"context"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// Processor is a single backend capable of handling a validated request.
type Processor interface {
	// Name identifies the backend; always a resolved type.
	Name() datatypes.ProcessorType

	// Process handles the request and returns the produced text. The
	// context carries the per-attempt deadline; implementations must
	// honor cancellation.
	Process(ctx context.Context, req *datatypes.ProcessingRequest) (string, error)
}
