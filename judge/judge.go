//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package judge defines the scoring backend capability used by LLM-judged metrics.
package judge

import (
	"context"
	"errors"
)

// ErrBackend indicates the scoring backend was unreachable or timed out.
var ErrBackend = errors.New("judge backend error")

// ErrMalformedOutput indicates the backend returned output that could not be
// parsed into the expected shape. Metrics fail rather than guess a score.
var ErrMalformedOutput = errors.New("malformed judge output")

// Judge is the capability LLM-judged metrics need from a scoring backend.
type Judge interface {
	// Generate returns the backend's free-text completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateStructured completes the prompt and decodes the response into out.
	// Implementations return an error wrapping ErrMalformedOutput when the
	// response cannot be decoded.
	GenerateStructured(ctx context.Context, prompt string, out any) error
}
