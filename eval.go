//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package eval runs evaluation metrics over evaluation sets and assembles
// ordered run reports.
package eval

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/trpc-eval-go/cache"
	"trpc.group/trpc-go/trpc-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/log"
	"trpc.group/trpc-go/trpc-eval-go/metric"
	"trpc.group/trpc-go/trpc-eval-go/status"
)

// Runner evaluates eval sets against a list of metrics. Cases fan out over
// a fixed-size worker pool; report order always matches set order.
type Runner struct {
	opts *options
	pool *ants.PoolWithFunc
}

// NewRunner creates a runner.
func NewRunner(opt ...Option) (*Runner, error) {
	opts := newOptions(opt...)
	if opts.maxConcurrentMetrics <= 0 {
		return nil, errors.New("max concurrent metrics must be greater than 0")
	}
	pool, err := createCaseEvalPool(opts.parallelism)
	if err != nil {
		return nil, err
	}
	return &Runner{opts: opts, pool: pool}, nil
}

// Close releases the worker pool.
func (r *Runner) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Run evaluates every case of the set against every metric and returns the
// ordered report. Metric errors are contained per metric result; Run only
// fails on invalid input or report persistence errors.
//
// Each metric value acts as a prototype: it is cloned per case, so one
// metric list is safe to share across concurrent runs.
func (r *Runner) Run(ctx context.Context, set *evalset.EvalSet, metrics []metric.Metric) (*evalresult.EvalSetResult, error) {
	if err := validateRun(set, metrics); err != nil {
		return nil, err
	}
	results := make([]*evalresult.EvalCaseResult, set.Len())
	var wg sync.WaitGroup
	for idx, evalCase := range set.Cases {
		wg.Add(1)
		param := caseEvalParamPool.Get().(*caseEvalParam)
		param.idx = idx
		param.ctx = ctx
		param.evalCase = evalCase
		param.metrics = metrics
		param.runner = r
		param.results = results
		param.wg = &wg
		if err := r.pool.Invoke(param); err != nil {
			wg.Done()
			results[idx] = r.failedCaseResult(evalCase, metrics,
				fmt.Errorf("submit eval task for case %s: %w", evalCase.EvalID, err))
			param.reset()
			caseEvalParamPool.Put(param)
		}
	}
	wg.Wait()

	overall, summary, err := evalresult.SummarizeRun(results)
	if err != nil {
		return nil, fmt.Errorf("summarize run: %w", err)
	}
	report := &evalresult.EvalSetResult{
		EvalSetResultID:   r.opts.idSupplier(),
		EvalSetID:         set.EvalSetID,
		Name:              set.Name,
		CaseResults:       results,
		Status:            overall,
		Summary:           summary,
		CreationTimestamp: r.opts.nowSupplier(),
	}
	if r.opts.resultManager != nil {
		if _, err := r.opts.resultManager.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("save eval set result: %w", err)
		}
	}
	return report, nil
}

// validateRun rejects inputs the runner cannot evaluate. All problems are
// reported together so callers can fix them in one pass.
func validateRun(set *evalset.EvalSet, metrics []metric.Metric) error {
	var errs *multierror.Error
	if set == nil || set.Len() == 0 {
		errs = multierror.Append(errs, errors.New("eval set is empty"))
	}
	if len(metrics) == 0 {
		errs = multierror.Append(errs, errors.New("metrics are empty"))
	}
	for i, m := range metrics {
		if m == nil {
			errs = multierror.Append(errs, fmt.Errorf("metric at index %d is nil", i))
			continue
		}
		if err := metric.ValidateThreshold(m.Threshold()); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("metric %s: %w", m.Name(), err))
		}
	}
	if set != nil {
		for _, evalID := range set.Unresolved() {
			errs = multierror.Append(errs,
				fmt.Errorf("case %s: %w", evalID, evalset.ErrUnresolvedGolden))
		}
	}
	return errs.ErrorOrNil()
}

func (r *Runner) evaluateCase(ctx context.Context, evalCase *evalset.EvalCase, metrics []metric.Metric) *evalresult.EvalCaseResult {
	metricResults := make([]*evalresult.EvalMetricResult, len(metrics))
	if r.opts.runAsync && len(metrics) > 1 {
		var group errgroup.Group
		group.SetLimit(r.opts.maxConcurrentMetrics)
		for i, m := range metrics {
			i, m := i, m
			group.Go(func() error {
				metricResults[i] = r.evaluateMetric(ctx, evalCase.TestCase, m)
				return nil
			})
		}
		_ = group.Wait()
	} else {
		for i, m := range metrics {
			metricResults[i] = r.evaluateMetric(ctx, evalCase.TestCase, m)
		}
	}
	caseStatus, err := evalresult.SummarizeCase(metricResults)
	if err != nil {
		caseStatus = status.EvalStatusFailed
	}
	return &evalresult.EvalCaseResult{
		EvalID:        evalCase.EvalID,
		Status:        caseStatus,
		MetricResults: metricResults,
	}
}

// evaluateMetric produces the result of one metric on one test case. Cache
// hits are adopted without invoking the metric; measurement errors become
// failed results, never run failures.
func (r *Runner) evaluateMetric(ctx context.Context, tc *evalset.TestCase, proto metric.Metric) *evalresult.EvalMetricResult {
	result := &evalresult.EvalMetricResult{
		MetricName: proto.Name(),
		Threshold:  proto.Threshold(),
	}
	// A cancelled run stops issuing new measurements.
	if err := ctx.Err(); err != nil {
		result.Status = status.EvalStatusNotEvaluated
		result.Reason = fmt.Sprintf("run stopped before measurement: %v", err)
		return result
	}
	key := cache.NewKey(tc.ContentHash(), proto.Name(), proto.Fingerprint())
	if entry := r.lookupCache(ctx, key); entry != nil {
		score := entry.Score
		result.Score = &score
		result.Reason = entry.Reason
		result.FromCache = true
		if entry.Success {
			result.Status = status.EvalStatusPassed
		} else {
			result.Status = status.EvalStatusFailed
		}
		return result
	}

	m := proto.Clone()
	// In-flight measurements run on their own timeout budget so a
	// cancelled run never truncates a measurement already started.
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.metricTimeout)
	defer cancel()
	score, err := m.MeasureWithContext(mctx, tc)
	if err != nil {
		result.Status = status.EvalStatusFailed
		result.Reason = fmt.Sprintf("metric errored: %v", err)
		result.ErrorMessage = err.Error()
		return result
	}
	success, err := m.IsSuccessful()
	if err != nil {
		result.Status = status.EvalStatusFailed
		result.Reason = fmt.Sprintf("metric errored: %v", err)
		result.ErrorMessage = err.Error()
		return result
	}
	result.Score = &score
	result.Reason = verdictReason(m, score, success)
	if success {
		result.Status = status.EvalStatusPassed
	} else {
		result.Status = status.EvalStatusFailed
	}
	// A measurement that finished after cancellation still keeps its
	// cache entry.
	r.storeCache(context.WithoutCancel(ctx), key, &cache.Entry{
		Score:     score,
		Reason:    result.Reason,
		Success:   success,
		Timestamp: r.opts.nowSupplier(),
	})
	return result
}

func verdictReason(m metric.Metric, score float64, success bool) string {
	if success {
		if reason := m.Reason(); reason != "" {
			return reason
		}
		return fmt.Sprintf("score %.4f meets threshold %.4f", score, m.Threshold())
	}
	side := "below"
	if m.Direction() == metric.LowerIsBetter {
		side = "above"
	}
	reason := fmt.Sprintf("score %.4f is %s threshold %.4f", score, side, m.Threshold())
	if detail := m.Reason(); detail != "" {
		reason = fmt.Sprintf("%s: %s", reason, detail)
	}
	return reason
}

// lookupCache treats store failures as misses so caching never breaks a run.
func (r *Runner) lookupCache(ctx context.Context, key cache.Key) *cache.Entry {
	if !r.opts.cacheEnabled || r.opts.cacheStore == nil {
		return nil
	}
	entry, err := r.opts.cacheStore.Lookup(ctx, key)
	if err != nil {
		log.Warnf("cache lookup for key %s failed: %v", key, err)
		return nil
	}
	return entry
}

func (r *Runner) storeCache(ctx context.Context, key cache.Key, entry *cache.Entry) {
	if !r.opts.cacheEnabled || r.opts.cacheStore == nil {
		return
	}
	if err := r.opts.cacheStore.Put(ctx, key, entry); err != nil {
		log.Warnf("cache store for key %s failed: %v", key, err)
	}
}

func (r *Runner) failedCaseResult(evalCase *evalset.EvalCase, metrics []metric.Metric, cause error) *evalresult.EvalCaseResult {
	metricResults := make([]*evalresult.EvalMetricResult, 0, len(metrics))
	for _, m := range metrics {
		metricResults = append(metricResults, &evalresult.EvalMetricResult{
			MetricName:   m.Name(),
			Threshold:    m.Threshold(),
			Status:       status.EvalStatusFailed,
			Reason:       fmt.Sprintf("metric errored: %v", cause),
			ErrorMessage: cause.Error(),
		})
	}
	return &evalresult.EvalCaseResult{
		EvalID:        evalCase.EvalID,
		Status:        status.EvalStatusFailed,
		MetricResults: metricResults,
	}
}
