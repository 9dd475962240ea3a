//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package evalresult defines evaluation run reports and their storage.
package evalresult

import (
	"context"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
	"trpc.group/trpc-go/trpc-eval-go/status"
)

// EvalMetricResult is the outcome of one metric applied to one eval case.
type EvalMetricResult struct {
	// MetricName identifies the metric.
	MetricName string `json:"metric_name"`
	// Threshold is the pass boundary that was applied.
	Threshold float64 `json:"threshold"`
	// Score is absent when the metric errored or was not evaluated.
	Score *float64 `json:"score,omitempty"`
	// Reason explains the score or names the error.
	Reason string `json:"reason,omitempty"`
	// Status is the verdict for this metric.
	Status status.EvalStatus `json:"status"`
	// FromCache marks results adopted from the cache without invoking the metric.
	FromCache bool `json:"from_cache,omitempty"`
	// ErrorMessage carries the measurement error, if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// EvalCaseResult aggregates the metric results of one eval case.
type EvalCaseResult struct {
	// EvalID identifies the eval case within its set.
	EvalID string `json:"eval_id"`
	// Status is the case verdict: failed if any metric failed.
	Status status.EvalStatus `json:"status"`
	// MetricResults holds one entry per requested metric, in request order.
	MetricResults []*EvalMetricResult `json:"metric_results"`
}

// Summary counts case verdicts of a run.
type Summary struct {
	// Total is the number of eval cases in the run.
	Total int `json:"total"`
	// Passed counts cases whose metrics all passed.
	Passed int `json:"passed"`
	// Failed counts cases with at least one failed metric.
	Failed int `json:"failed"`
	// NotEvaluated counts cases skipped by cancellation.
	NotEvaluated int `json:"not_evaluated"`
}

// EvalSetResult is the report of one evaluation run over an eval set.
// CaseResults preserves the order of the evaluated set.
type EvalSetResult struct {
	// EvalSetResultID identifies this run.
	EvalSetResultID string `json:"eval_set_result_id"`
	// EvalSetID identifies the evaluated set.
	EvalSetID string `json:"eval_set_id"`
	// Name is an optional human-readable run name.
	Name string `json:"name,omitempty"`
	// CaseResults holds one entry per eval case, in set order.
	CaseResults []*EvalCaseResult `json:"case_results"`
	// Status is the run verdict: passed only if every case passed.
	Status status.EvalStatus `json:"status"`
	// Summary counts case verdicts.
	Summary Summary `json:"summary"`
	// CreationTimestamp records when the run finished.
	CreationTimestamp *epochtime.EpochTime `json:"creation_timestamp,omitempty"`
}

// Passed reports whether every case in the run passed.
func (r *EvalSetResult) Passed() bool {
	return r.Status == status.EvalStatusPassed
}

// Manager persists evaluation run reports.
type Manager interface {
	// Save persists the result and returns its ID, generating one if empty.
	Save(ctx context.Context, result *EvalSetResult) (string, error)
	// Get loads a result by ID. The error wraps os.ErrNotExist when absent.
	Get(ctx context.Context, evalSetResultID string) (*EvalSetResult, error)
	// List returns all stored results, newest first.
	List(ctx context.Context) ([]*EvalSetResult, error)
}
