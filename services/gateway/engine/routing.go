// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import "github.com/AleutianAI/diamondgate/services/gateway/datatypes"

// DefaultTokenThreshold routes to cloud above this many tokens when no
// explicit threshold is configured.
const DefaultTokenThreshold = 500

// RouteByTokenThreshold decides which processor handles an input of the
// given size.
//
// Returns ProcessorCloud iff tokenCount strictly exceeds the threshold,
// ProcessorLocal otherwise. Total over its domain: for every non-negative
// token count and positive threshold the result is exactly cloud or local,
// never hybrid. A non-positive threshold is a DomainError.
func RouteByTokenThreshold(tokenCount datatypes.TokenCount, threshold int) (datatypes.ProcessorType, error) {
	if threshold <= 0 {
		return "", &datatypes.DomainError{Op: "RouteByTokenThreshold", Reason: "token threshold must be positive"}
	}
	if tokenCount.Count() > threshold {
		return datatypes.ProcessorCloud, nil
	}
	return datatypes.ProcessorLocal, nil
}

// RouteRequest resolves the processor for a validated request.
//
// An explicit cloud or local selection is honored as-is; hybrid defers to
// the token-threshold rule. The result is always resolved.
func RouteRequest(req *datatypes.ProcessingRequest, threshold int) (datatypes.ProcessorType, error) {
	switch req.ProcessorType() {
	case datatypes.ProcessorCloud:
		return datatypes.ProcessorCloud, nil
	case datatypes.ProcessorLocal:
		return datatypes.ProcessorLocal, nil
	default:
		return RouteByTokenThreshold(req.InputTokens(), threshold)
	}
}
