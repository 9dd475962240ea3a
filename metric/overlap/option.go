//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package overlap

type options struct {
	rougeType      string
	measure        Measure
	useStemmer     bool
	splitSummaries bool
}

// Option configures the overlap metric.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		rougeType: "rouge1",
		measure:   FMeasure,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithRougeType selects the ROUGE variant, e.g. rouge1, rouge2, rougeL or
// rougeLsum. Defaults to rouge1.
func WithRougeType(rougeType string) Option {
	return func(o *options) {
		o.rougeType = rougeType
	}
}

// WithMeasure selects which ROUGE component becomes the score.
// Defaults to FMeasure.
func WithMeasure(m Measure) Option {
	return func(o *options) {
		o.measure = m
	}
}

// WithStemmer enables Porter stemming during tokenization.
func WithStemmer(enable bool) Option {
	return func(o *options) {
		o.useStemmer = enable
	}
}

// WithSplitSummaries splits texts into sentences for rougeLsum when newlines
// are absent.
func WithSplitSummaries(enable bool) Option {
	return func(o *options) {
		o.splitSummaries = enable
	}
}
