//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package geval

type options struct {
	threshold float64
	params    []Param
	strict    bool
	steps     []string
}

// Option configures the metric.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{threshold: 0.5}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithThreshold sets the pass threshold in [0, 1]. Defaults to 0.5.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithParams restricts which test case fields the judge sees. Every listed
// field becomes required on measured test cases. Defaults to input and
// actual_output.
func WithParams(params ...Param) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithStrict switches the judge to a binary 0 or 1 verdict with no
// partial credit.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithEvaluationSteps supplies the evaluation steps directly, skipping the
// synthesis phase.
func WithEvaluationSteps(steps ...string) Option {
	return func(o *options) {
		o.steps = steps
	}
}
