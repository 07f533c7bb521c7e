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

	"github.com/sashabaranov/go-openai"

	"github.com/AleutianAI/diamondgate/services/gateway/datatypes"
)

// CloudProcessor handles requests via an OpenAI-compatible API.
type CloudProcessor struct {
	client *openai.Client
	model  string
}

// NewCloudProcessor builds a cloud processor. Credentials come from the
// caller; this package never reads the environment.
func NewCloudProcessor(apiKey, model string) (*CloudProcessor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("cloud processor requires an API key")
	}
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("cloud model not set, defaulting", "model", model)
	}
	slog.Info("Initializing cloud processor", "model", model)
	return &CloudProcessor{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name implements the Processor interface.
func (c *CloudProcessor) Name() datatypes.ProcessorType {
	return datatypes.ProcessorCloud
}

// Process implements the Processor interface.
func (c *CloudProcessor) Process(ctx context.Context, req *datatypes.ProcessingRequest) (string, error) {
	slog.Debug("Processing via cloud", "model", c.model, "input_tokens", req.InputTokens().Count())
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.InputData()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("cloud processor call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("cloud processor returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
