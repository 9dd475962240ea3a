//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package geval

import (
	"context"
	"fmt"
	"sync"

	"trpc.group/trpc-go/trpc-eval-go/judge"
)

// stepCache holds the synthesized evaluation steps for one metric
// configuration. Clones share the same cache so the synthesis call happens
// once per configuration, not once per test case.
type stepCache struct {
	mu    sync.Mutex
	steps []string
}

func newStepCache(steps []string) *stepCache {
	return &stepCache{steps: steps}
}

type stepsResponse struct {
	Steps []string `json:"steps"`
}

// get returns the evaluation steps, synthesizing them from the criteria on
// first use. A failed synthesis is not cached so a later case can retry.
func (c *stepCache) get(ctx context.Context, j judge.Judge, criteria string, params []Param) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.steps) > 0 {
		return c.steps, nil
	}
	prompt, err := buildStepSynthesisPrompt(criteria, params)
	if err != nil {
		return nil, err
	}
	var resp stepsResponse
	if err := j.GenerateStructured(ctx, prompt, &resp); err != nil {
		return nil, fmt.Errorf("synthesize evaluation steps: %w", err)
	}
	if len(resp.Steps) == 0 {
		return nil, fmt.Errorf("synthesize evaluation steps: %w: empty steps list",
			judge.ErrMalformedOutput)
	}
	c.steps = resp.Steps
	return c.steps, nil
}
