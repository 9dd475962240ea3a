//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package metric defines the evaluation metric abstraction shared by all
// built-in and user-provided metrics.
package metric

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-eval-go/evalset"
)

var (
	// ErrMissingField indicates a test case lacks a field the metric requires.
	ErrMissingField = errors.New("test case is missing a required field")
	// ErrNotMeasured indicates the metric has not produced a score yet.
	ErrNotMeasured = errors.New("metric has not been measured")
)

// Direction states which side of the threshold counts as success.
type Direction int

const (
	// HigherIsBetter passes when score >= threshold. This is the default.
	HigherIsBetter Direction = iota
	// LowerIsBetter passes when score <= threshold.
	LowerIsBetter
)

// Metric scores a single test case against one quality dimension.
//
// A Metric value is stateful: Measure records the score, reason and verdict
// on the receiver, and IsSuccessful, Score and Reason read them back. The
// runner never shares one Metric value across concurrent cases; it calls
// Clone to obtain an independent instance per case.
type Metric interface {
	// Name identifies the metric in reports and cache keys.
	Name() string
	// Threshold is the pass boundary applied to the score.
	Threshold() float64
	// Direction states which side of the threshold passes.
	Direction() Direction
	// Measure scores the test case and records the outcome on the receiver.
	Measure(tc *evalset.TestCase) (float64, error)
	// MeasureWithContext is Measure honoring cancellation and deadlines.
	MeasureWithContext(ctx context.Context, tc *evalset.TestCase) (float64, error)
	// IsSuccessful reports the recorded verdict. It returns ErrNotMeasured
	// before Measure has run, and the measurement error if Measure failed.
	IsSuccessful() (bool, error)
	// Score returns the recorded score; ok is false before measurement.
	Score() (score float64, ok bool)
	// Reason returns the recorded explanation for the score.
	Reason() string
	// Clone returns an independent instance with the same configuration
	// and no recorded measurement.
	Clone() Metric
	// Fingerprint captures the scoring configuration. Two instances with
	// equal fingerprints are interchangeable for caching purposes.
	Fingerprint() string
}

// Base carries the recorded state shared by metric implementations and the
// threshold logic that turns a score into a verdict. Embed it and call
// record or recordErr from Measure.
type Base struct {
	name      string
	threshold float64
	direction Direction

	measured bool
	score    float64
	reason   string
	err      error
}

// NewBase creates the shared metric state.
func NewBase(name string, threshold float64, direction Direction) Base {
	return Base{name: name, threshold: threshold, direction: direction}
}

// Name implements Metric.
func (b *Base) Name() string { return b.name }

// Threshold implements Metric.
func (b *Base) Threshold() float64 { return b.threshold }

// Direction implements Metric.
func (b *Base) Direction() Direction { return b.direction }

// Score implements Metric.
func (b *Base) Score() (float64, bool) {
	if !b.measured || b.err != nil {
		return 0, false
	}
	return b.score, true
}

// Reason implements Metric.
func (b *Base) Reason() string { return b.reason }

// IsSuccessful implements Metric.
func (b *Base) IsSuccessful() (bool, error) {
	if !b.measured {
		return false, ErrNotMeasured
	}
	if b.err != nil {
		return false, b.err
	}
	return b.Passes(b.score), nil
}

// Passes applies the threshold to a score honoring the direction.
func (b *Base) Passes(score float64) bool {
	if b.direction == LowerIsBetter {
		return score <= b.threshold
	}
	return score >= b.threshold
}

// Record stores a successful measurement on the receiver.
func (b *Base) Record(score float64, reason string) {
	b.measured = true
	b.score = score
	b.reason = reason
	b.err = nil
}

// RecordErr stores a failed measurement on the receiver.
func (b *Base) RecordErr(err error) {
	b.measured = true
	b.err = err
}

// Reset clears any recorded measurement.
func (b *Base) Reset() {
	b.measured = false
	b.score = 0
	b.reason = ""
	b.err = nil
}

// CloneBase returns a copy of the configuration with no recorded state.
func (b *Base) CloneBase() Base {
	return NewBase(b.name, b.threshold, b.direction)
}

// ValidateThreshold rejects thresholds outside the normalized score range.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %v is outside [0, 1]", threshold)
	}
	return nil
}
