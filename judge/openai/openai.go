//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible judge backend.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-eval-go/judge"
)

// Judge calls an OpenAI-compatible chat completion endpoint.
type Judge struct {
	client      openai.Client
	model       string
	temperature *float64
}

// New creates a judge backed by an OpenAI-compatible endpoint.
func New(model string, opt ...Option) (*Judge, error) {
	if model == "" {
		return nil, fmt.Errorf("judge model is empty")
	}
	opts := newOptions(opt...)
	var clientOpts []openaiopt.RequestOption
	if opts.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(opts.baseURL))
	}
	clientOpts = append(clientOpts, opts.requestOptions...)
	return &Judge{
		client:      openai.NewClient(clientOpts...),
		model:       model,
		temperature: opts.temperature,
	}, nil
}

// Generate returns the completion text for the prompt.
func (j *Judge) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(j.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if j.temperature != nil {
		req.Temperature = openai.Float(*j.temperature)
	}
	completion, err := j.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w: %w", judge.ErrBackend, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices: %w", judge.ErrBackend)
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateStructured completes the prompt and decodes the JSON response into out.
// Judge models often wrap JSON in markdown fences; those are stripped first.
func (j *Judge) GenerateStructured(ctx context.Context, prompt string, out any) error {
	text, err := j.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(StripFences(text)), out); err != nil {
		return fmt.Errorf("decode judge response: %w: %w", judge.ErrMalformedOutput, err)
	}
	return nil
}

// StripFences removes a surrounding markdown code fence from the text, if any.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
