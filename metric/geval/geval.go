//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package geval provides a rubric-driven LLM-judged metric. The judge first
// turns a natural-language criteria into concrete evaluation steps, then
// follows those steps to score each test case.
package geval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/judge"
	"trpc.group/trpc-go/trpc-eval-go/metric"
)

// version bumps when prompts or scoring behavior change, invalidating
// cached results.
const version = "1"

// Param names a test case field the judge is allowed to see.
type Param string

// Test case fields a metric can be parameterized on.
const (
	ParamInput            Param = "input"
	ParamActualOutput     Param = "actual_output"
	ParamExpectedOutput   Param = "expected_output"
	ParamRetrievalContext Param = "retrieval_context"
	ParamContext          Param = "context"
)

// Metric is a rubric-driven LLM-judged metric.
type Metric struct {
	metric.Base
	judge    judge.Judge
	criteria string
	// providedSteps is non-empty when the caller supplied the evaluation
	// steps directly instead of a criteria to synthesize them from.
	providedSteps []string
	params        []Param
	strict        bool
	steps         *stepCache
}

// New creates a G-Eval style metric named name that scores test cases
// against the natural-language criteria. Evaluation steps are synthesized
// from the criteria on first measurement unless WithEvaluationSteps supplies
// them directly.
func New(name, criteria string, j judge.Judge, opt ...Option) (*Metric, error) {
	if j == nil {
		return nil, errors.New("judge is nil")
	}
	opts := newOptions(opt...)
	if criteria == "" && len(opts.steps) == 0 {
		return nil, errors.New("either criteria or evaluation steps must be provided")
	}
	if err := metric.ValidateThreshold(opts.threshold); err != nil {
		return nil, err
	}
	if name == "" {
		name = metric.MetricGEval
	}
	params := opts.params
	if len(params) == 0 {
		params = []Param{ParamInput, ParamActualOutput}
	}
	for _, p := range params {
		switch p {
		case ParamInput, ParamActualOutput, ParamExpectedOutput, ParamRetrievalContext, ParamContext:
		default:
			return nil, fmt.Errorf("unknown evaluation param %q", p)
		}
	}
	return &Metric{
		Base:          metric.NewBase(name, opts.threshold, metric.HigherIsBetter),
		judge:         j,
		criteria:      criteria,
		providedSteps: opts.steps,
		params:        params,
		strict:        opts.strict,
		steps:         newStepCache(opts.steps),
	}, nil
}

// Measure implements metric.Metric.
func (m *Metric) Measure(tc *evalset.TestCase) (float64, error) {
	return m.MeasureWithContext(context.Background(), tc)
}

type scoreResponse struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// MeasureWithContext implements metric.Metric. Raw judge scores on the
// 0-10 scale are rescaled to [0, 1]; in strict mode the judge returns a
// binary 0 or 1 verdict instead.
func (m *Metric) MeasureWithContext(ctx context.Context, tc *evalset.TestCase) (float64, error) {
	if err := m.checkParams(tc); err != nil {
		m.RecordErr(err)
		return 0, err
	}
	steps, err := m.steps.get(ctx, m.judge, m.criteria, m.params)
	if err != nil {
		m.RecordErr(err)
		return 0, err
	}
	prompt, err := buildScoringPrompt(steps, m.params, tc, m.strict)
	if err != nil {
		m.RecordErr(err)
		return 0, err
	}
	var resp scoreResponse
	if err := m.judge.GenerateStructured(ctx, prompt, &resp); err != nil {
		err = fmt.Errorf("score test case: %w", err)
		m.RecordErr(err)
		return 0, err
	}
	score, err := m.normalize(resp.Score)
	if err != nil {
		m.RecordErr(err)
		return 0, err
	}
	m.Record(score, resp.Reason)
	return score, nil
}

func (m *Metric) checkParams(tc *evalset.TestCase) error {
	if tc == nil {
		return fmt.Errorf("%w: test case is nil", metric.ErrMissingField)
	}
	for _, p := range m.params {
		var present bool
		switch p {
		case ParamInput:
			present = tc.Input != ""
		case ParamActualOutput:
			present = tc.ActualOutput != ""
		case ParamExpectedOutput:
			present = tc.ExpectedOutput != ""
		case ParamRetrievalContext:
			present = len(tc.RetrievalContext) > 0
		case ParamContext:
			present = len(tc.Context) > 0
		}
		if !present {
			return fmt.Errorf("%w: %s", metric.ErrMissingField, p)
		}
	}
	return nil
}

func (m *Metric) normalize(raw float64) (float64, error) {
	if m.strict {
		if raw != 0 && raw != 1 {
			return 0, fmt.Errorf("strict judge score %v is not binary: %w",
				raw, judge.ErrMalformedOutput)
		}
		return raw, nil
	}
	if raw < 0 || raw > 10 {
		return 0, fmt.Errorf("judge score %v is outside [0, 10]: %w",
			raw, judge.ErrMalformedOutput)
	}
	return raw / 10, nil
}

// Clone implements metric.Metric. Clones share the synthesized evaluation
// steps so the synthesis call runs once per configuration.
func (m *Metric) Clone() metric.Metric {
	return &Metric{
		Base:          m.CloneBase(),
		judge:         m.judge,
		criteria:      m.criteria,
		providedSteps: m.providedSteps,
		params:        m.params,
		strict:        m.strict,
		steps:         m.steps,
	}
}

// Fingerprint implements metric.Metric. It is derived from the criteria and
// any caller-provided steps, never from synthesized steps, so it is stable
// before the first measurement.
func (m *Metric) Fingerprint() string {
	names := make([]string, 0, len(m.params))
	for _, p := range m.params {
		names = append(names, string(p))
	}
	return fmt.Sprintf("geval/v%s|name=%s|criteria=%s|steps=%s|params=%s|strict=%t|threshold=%v",
		version, m.Name(), m.criteria, strings.Join(m.providedSteps, ";"),
		strings.Join(names, ","), m.strict, m.Threshold())
}
