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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// LocalProcessor handles requests via a local Ollama instance.
type LocalProcessor struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// Ollama API request structure
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// NewLocalProcessor builds a local processor against an Ollama base URL.
func NewLocalProcessor(baseURL, model string) (*LocalProcessor, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("local processor requires a base URL")
	}
	if model == "" {
		model = "llama3"
		slog.Warn("local model not set, defaulting", "model", model)
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	slog.Info("Initializing local processor", "base_url", baseURL, "model", model)
	return &LocalProcessor{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    baseURL,
		model:      model,
	}, nil
}

// Name implements the Processor interface.
func (l *LocalProcessor) Name() datatypes.ProcessorType {
	return datatypes.ProcessorLocal
}

// Process implements the Processor interface.
func (l *LocalProcessor) Process(ctx context.Context, req *datatypes.ProcessingRequest) (string, error) {
	slog.Debug("Processing via local", "model", l.model, "input_tokens", req.InputTokens().Count())

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  l.model,
		Prompt: req.InputData(),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling local request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		l.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building local request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("local processor call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("local processor returned %d: %s", resp.StatusCode, string(payload))
	}

	var generated ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("decoding local response: %w", err)
	}
	return generated.Response, nil
}
