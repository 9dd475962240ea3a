//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package overlap provides a deterministic lexical-overlap metric that scores
// the actual output against the expected output with ROUGE.
package overlap

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/internal/rouge"
	"trpc.group/trpc-go/trpc-eval-go/metric"
)

// version bumps when the scoring behavior changes, invalidating cached results.
const version = "1"

// Measure selects which ROUGE component becomes the metric score.
type Measure string

const (
	// FMeasure scores with the harmonic mean of precision and recall.
	FMeasure Measure = "fmeasure"
	// Precision scores with precision only.
	Precision Measure = "precision"
	// Recall scores with recall only.
	Recall Measure = "recall"
)

// Metric scores lexical overlap between actual and expected output.
// It requires no judge model and always produces the same score for the
// same pair of texts.
type Metric struct {
	metric.Base
	rougeCfg rouge.Config
	measure  Measure
}

// New creates a lexical overlap metric with the given pass threshold.
func New(threshold float64, opt ...Option) (*Metric, error) {
	if err := metric.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	opts := newOptions(opt...)
	if err := rouge.ValidateType(opts.rougeType); err != nil {
		return nil, err
	}
	switch opts.measure {
	case FMeasure, Precision, Recall:
	default:
		return nil, fmt.Errorf("unknown overlap measure %q", opts.measure)
	}
	return &Metric{
		Base: metric.NewBase(metric.MetricLexicalOverlap, threshold, metric.HigherIsBetter),
		rougeCfg: rouge.Config{
			Type:           opts.rougeType,
			UseStemmer:     opts.useStemmer,
			SplitSummaries: opts.splitSummaries,
		},
		measure: opts.measure,
	}, nil
}

// Measure implements metric.Metric.
func (m *Metric) Measure(tc *evalset.TestCase) (float64, error) {
	return m.MeasureWithContext(context.Background(), tc)
}

// MeasureWithContext implements metric.Metric. The computation is local, so
// the context only gates entry.
func (m *Metric) MeasureWithContext(ctx context.Context, tc *evalset.TestCase) (float64, error) {
	if err := ctx.Err(); err != nil {
		m.RecordErr(err)
		return 0, err
	}
	if tc == nil || tc.ExpectedOutput == "" {
		err := fmt.Errorf("%w: expected_output", metric.ErrMissingField)
		m.RecordErr(err)
		return 0, err
	}
	score, err := rouge.Compute(tc.ExpectedOutput, tc.ActualOutput, m.rougeCfg)
	if err != nil {
		err = fmt.Errorf("compute %s overlap: %w", m.rougeCfg.Type, err)
		m.RecordErr(err)
		return 0, err
	}
	value := m.pick(score)
	m.Record(value, fmt.Sprintf("%s %s of actual vs expected output is %.4f",
		m.rougeCfg.Type, m.measure, value))
	return value, nil
}

func (m *Metric) pick(s rouge.Score) float64 {
	switch m.measure {
	case Precision:
		return s.Precision
	case Recall:
		return s.Recall
	default:
		return s.FMeasure
	}
}

// Clone implements metric.Metric.
func (m *Metric) Clone() metric.Metric {
	return &Metric{
		Base:     m.CloneBase(),
		rougeCfg: m.rougeCfg,
		measure:  m.measure,
	}
}

// Fingerprint implements metric.Metric.
func (m *Metric) Fingerprint() string {
	return fmt.Sprintf("overlap/v%s|type=%s|measure=%s|stemmer=%t|split=%t|threshold=%v",
		version, m.rougeCfg.Type, m.measure, m.rougeCfg.UseStemmer,
		m.rougeCfg.SplitSummaries, m.Threshold())
}
