//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package eval

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/cache"
	cacheinmemory "trpc.group/trpc-go/trpc-eval-go/cache/inmemory"
	resultinmemory "trpc.group/trpc-go/trpc-eval-go/evalresult/inmemory"
	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/metric"
	"trpc.group/trpc-go/trpc-eval-go/status"
)

// stubMetric scores with a caller-provided function and counts measurements
// across clones.
type stubMetric struct {
	metric.Base
	fn    func(tc *evalset.TestCase) (float64, error)
	calls *int32
}

func newStubMetric(name string, threshold float64, fn func(tc *evalset.TestCase) (float64, error)) *stubMetric {
	return &stubMetric{
		Base:  metric.NewBase(name, threshold, metric.HigherIsBetter),
		fn:    fn,
		calls: new(int32),
	}
}

func (s *stubMetric) Measure(tc *evalset.TestCase) (float64, error) {
	return s.MeasureWithContext(context.Background(), tc)
}

func (s *stubMetric) MeasureWithContext(_ context.Context, tc *evalset.TestCase) (float64, error) {
	atomic.AddInt32(s.calls, 1)
	score, err := s.fn(tc)
	if err != nil {
		s.RecordErr(err)
		return 0, err
	}
	s.Record(score, "")
	return score, nil
}

func (s *stubMetric) Clone() metric.Metric {
	return &stubMetric{Base: s.CloneBase(), fn: s.fn, calls: s.calls}
}

func (s *stubMetric) Fingerprint() string {
	return fmt.Sprintf("stub|name=%s|threshold=%v", s.Name(), s.Threshold())
}

func (s *stubMetric) measurements() int {
	return int(atomic.LoadInt32(s.calls))
}

// blockingMetric never scores; it waits for its measurement context to
// expire and reports that error.
type blockingMetric struct {
	metric.Base
}

func newBlockingMetric(name string) *blockingMetric {
	return &blockingMetric{Base: metric.NewBase(name, 0.5, metric.HigherIsBetter)}
}

func (b *blockingMetric) Measure(tc *evalset.TestCase) (float64, error) {
	return b.MeasureWithContext(context.Background(), tc)
}

func (b *blockingMetric) MeasureWithContext(ctx context.Context, _ *evalset.TestCase) (float64, error) {
	<-ctx.Done()
	err := ctx.Err()
	b.RecordErr(err)
	return 0, err
}

func (b *blockingMetric) Clone() metric.Metric {
	return &blockingMetric{Base: b.CloneBase()}
}

func (b *blockingMetric) Fingerprint() string {
	return fmt.Sprintf("blocking|name=%s|threshold=%v", b.Name(), b.Threshold())
}

// putContextStore records the context state seen by each Put.
type putContextStore struct {
	cache.Store
	mu      sync.Mutex
	putErrs []error
}

func (s *putContextStore) Put(ctx context.Context, key cache.Key, entry *cache.Entry) error {
	s.mu.Lock()
	s.putErrs = append(s.putErrs, ctx.Err())
	s.mu.Unlock()
	return s.Store.Put(ctx, key, entry)
}

func newEvalSet(t *testing.T, n int) *evalset.EvalSet {
	t.Helper()
	set := &evalset.EvalSet{EvalSetID: "set-1", Name: "demo"}
	for i := 0; i < n; i++ {
		require.NoError(t, set.Append(fmt.Sprintf("case-%d", i), &evalset.TestCase{
			Input:          fmt.Sprintf("question %d", i),
			ActualOutput:   fmt.Sprintf("answer %d", i),
			ExpectedOutput: fmt.Sprintf("answer %d", i),
		}))
	}
	return set
}

func newRunner(t *testing.T, opt ...Option) *Runner {
	t.Helper()
	r, err := NewRunner(opt...)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRunOrderPreserved(t *testing.T) {
	r := newRunner(t, WithParallelism(8))
	set := newEvalSet(t, 20)
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	report, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	require.Len(t, report.CaseResults, 20)
	for i, cr := range report.CaseResults {
		assert.Equal(t, fmt.Sprintf("case-%d", i), cr.EvalID)
	}
	assert.True(t, report.Passed())
}

func TestRunAggregation(t *testing.T) {
	r := newRunner(t)
	set := newEvalSet(t, 10)
	m := newStubMetric("strict", 0.5, func(tc *evalset.TestCase) (float64, error) {
		if tc.Input == "question 3" {
			return 0.1, nil
		}
		return 0.9, nil
	})

	report, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusFailed, report.Status)
	assert.False(t, report.Passed())
	assert.Equal(t, 10, report.Summary.Total)
	assert.Equal(t, 9, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, status.EvalStatusFailed, report.CaseResults[3].Status)
	assert.Contains(t, report.CaseResults[3].MetricResults[0].Reason, "below threshold")
}

func TestRunCacheRoundTrip(t *testing.T) {
	store := cacheinmemory.New()
	r := newRunner(t, WithCache(store))
	set := newEvalSet(t, 5)
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 0.8, nil })

	first, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	assert.Equal(t, 5, m.measurements())
	for _, cr := range first.CaseResults {
		assert.False(t, cr.MetricResults[0].FromCache)
	}

	second, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	assert.Equal(t, 5, m.measurements(), "second run must be served from cache")
	for _, cr := range second.CaseResults {
		mr := cr.MetricResults[0]
		assert.True(t, mr.FromCache)
		assert.Equal(t, status.EvalStatusPassed, mr.Status)
		require.NotNil(t, mr.Score)
		assert.Equal(t, 0.8, *mr.Score)
	}
}

func TestRunThresholdChangeInvalidatesCache(t *testing.T) {
	store := cacheinmemory.New()
	r := newRunner(t, WithCache(store))
	set := newEvalSet(t, 3)

	loose := newStubMetric("overlap", 0.5, func(*evalset.TestCase) (float64, error) { return 0.7, nil })
	_, err := r.Run(context.Background(), set, []metric.Metric{loose})
	require.NoError(t, err)
	assert.Equal(t, 3, loose.measurements())

	strict := newStubMetric("overlap", 0.9, func(*evalset.TestCase) (float64, error) { return 0.7, nil })
	report, err := r.Run(context.Background(), set, []metric.Metric{strict})
	require.NoError(t, err)
	assert.Equal(t, 3, strict.measurements(), "changed threshold must not reuse cached entries")
	assert.Equal(t, status.EvalStatusFailed, report.Status)
}

func TestRunMetricErrorIsolation(t *testing.T) {
	r := newRunner(t, WithRunAsync(true), WithMaxConcurrentMetrics(2))
	set := newEvalSet(t, 4)
	broken := newStubMetric("broken", 0.5, func(*evalset.TestCase) (float64, error) {
		return 0, errors.New("judge backend unreachable")
	})
	healthy := newStubMetric("healthy", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	report, err := r.Run(context.Background(), set, []metric.Metric{broken, healthy})
	require.NoError(t, err, "metric errors must not fail the run")
	assert.Equal(t, status.EvalStatusFailed, report.Status)
	for _, cr := range report.CaseResults {
		require.Len(t, cr.MetricResults, 2)
		assert.Equal(t, status.EvalStatusFailed, cr.MetricResults[0].Status)
		assert.Contains(t, cr.MetricResults[0].Reason, "metric errored")
		assert.NotEmpty(t, cr.MetricResults[0].ErrorMessage)
		assert.Nil(t, cr.MetricResults[0].Score)
		assert.Equal(t, status.EvalStatusPassed, cr.MetricResults[1].Status)
	}
}

func TestRunErroredMeasurementsAreNotCached(t *testing.T) {
	store := cacheinmemory.New()
	r := newRunner(t, WithCache(store))
	set := newEvalSet(t, 2)
	flaky := newStubMetric("flaky", 0.5, func(*evalset.TestCase) (float64, error) {
		return 0, errors.New("transient outage")
	})

	_, err := r.Run(context.Background(), set, []metric.Metric{flaky})
	require.NoError(t, err)
	assert.Equal(t, 2, flaky.measurements())

	// The outage is over; the rerun measures again instead of reusing
	// a cached failure.
	recovered := newStubMetric("flaky", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })
	report, err := r.Run(context.Background(), set, []metric.Metric{recovered})
	require.NoError(t, err)
	assert.Equal(t, 2, recovered.measurements())
	assert.True(t, report.Passed())
}

func TestRunCancelledContext(t *testing.T) {
	r := newRunner(t)
	set := newEvalSet(t, 3)
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := r.Run(ctx, set, []metric.Metric{m})
	require.NoError(t, err)
	assert.Equal(t, 0, m.measurements())
	assert.Equal(t, status.EvalStatusNotEvaluated, report.Status)
	assert.Equal(t, 3, report.Summary.NotEvaluated)
	for _, cr := range report.CaseResults {
		assert.Equal(t, status.EvalStatusNotEvaluated, cr.Status)
	}
}

func TestRunValidation(t *testing.T) {
	r := newRunner(t)
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	_, err := r.Run(context.Background(), nil, []metric.Metric{m})
	assert.ErrorContains(t, err, "eval set is empty")

	_, err = r.Run(context.Background(), newEvalSet(t, 1), nil)
	assert.ErrorContains(t, err, "metrics are empty")

	bad := newStubMetric("bad", 1.5, func(*evalset.TestCase) (float64, error) { return 1, nil })
	_, err = r.Run(context.Background(), newEvalSet(t, 1), []metric.Metric{bad})
	assert.ErrorContains(t, err, "outside [0, 1]")
}

func TestRunRejectsUnresolvedGoldens(t *testing.T) {
	r := newRunner(t)
	set := newEvalSet(t, 1)
	require.NoError(t, set.AppendGolden("golden-1", &evalset.Golden{
		Input:          "pending question",
		ExpectedOutput: "pending answer",
	}))
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	_, err := r.Run(context.Background(), set, []metric.Metric{m})
	assert.ErrorIs(t, err, evalset.ErrUnresolvedGolden)
	assert.ErrorContains(t, err, "golden-1")

	// Resolving the golden makes the same set runnable.
	require.NoError(t, set.Cases[1].Resolve("pending answer"))
	report, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	assert.True(t, report.Passed())
}

func TestRunPersistsReport(t *testing.T) {
	manager := resultinmemory.New()
	r := newRunner(t,
		WithResultManager(manager),
		WithIDSupplier(func() string { return "run-42" }),
	)
	set := newEvalSet(t, 2)
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	report, err := r.Run(context.Background(), set, []metric.Metric{m})
	require.NoError(t, err)
	assert.Equal(t, "run-42", report.EvalSetResultID)

	stored, err := manager.Get(context.Background(), "run-42")
	require.NoError(t, err)
	assert.Equal(t, "set-1", stored.EvalSetID)
	assert.Len(t, stored.CaseResults, 2)
}

func TestRunMetricTimeoutIsolation(t *testing.T) {
	r := newRunner(t,
		WithMetricTimeout(50*time.Millisecond),
		WithMaxConcurrentMetrics(2),
	)
	set := newEvalSet(t, 1)
	slow := newBlockingMetric("slow")
	healthy := newStubMetric("healthy", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	report, err := r.Run(context.Background(), set, []metric.Metric{slow, healthy})
	require.NoError(t, err)
	cr := report.CaseResults[0]
	require.Len(t, cr.MetricResults, 2)

	assert.Equal(t, status.EvalStatusFailed, cr.MetricResults[0].Status)
	assert.Contains(t, cr.MetricResults[0].ErrorMessage, context.DeadlineExceeded.Error())
	assert.Nil(t, cr.MetricResults[0].Score)

	// The sibling metric on the same case stays intact.
	assert.Equal(t, status.EvalStatusPassed, cr.MetricResults[1].Status)
	require.NotNil(t, cr.MetricResults[1].Score)
	assert.Equal(t, 1.0, *cr.MetricResults[1].Score)
}

func TestRunKeepsCacheEntriesAfterCancellation(t *testing.T) {
	store := &putContextStore{Store: cacheinmemory.New()}
	r := newRunner(t, WithCache(store))
	set := newEvalSet(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The run is cancelled while the measurement is in flight.
	m := newStubMetric("pass", 0.5, func(*evalset.TestCase) (float64, error) {
		cancel()
		return 1, nil
	})

	_, err := r.Run(ctx, set, []metric.Metric{m})
	require.NoError(t, err)
	require.Len(t, store.putErrs, 1)
	assert.NoError(t, store.putErrs[0], "cache store must not observe the cancelled run context")

	entry, err := store.Lookup(context.Background(),
		cache.NewKey(set.Cases[0].TestCase.ContentHash(), m.Name(), m.Fingerprint()))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1.0, entry.Score)
}

func TestRunPartialCancellationDemotesCase(t *testing.T) {
	r := newRunner(t, WithRunAsync(false))
	set := newEvalSet(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The first metric completes and cancels the run; the second is never
	// measured, so the case must not report as passed.
	first := newStubMetric("first", 0.5, func(*evalset.TestCase) (float64, error) {
		cancel()
		return 1, nil
	})
	second := newStubMetric("second", 0.5, func(*evalset.TestCase) (float64, error) { return 1, nil })

	report, err := r.Run(ctx, set, []metric.Metric{first, second})
	require.NoError(t, err)
	assert.Equal(t, 0, second.measurements())

	cr := report.CaseResults[0]
	assert.Equal(t, status.EvalStatusPassed, cr.MetricResults[0].Status)
	assert.Equal(t, status.EvalStatusNotEvaluated, cr.MetricResults[1].Status)
	assert.Equal(t, status.EvalStatusNotEvaluated, cr.Status)
	assert.False(t, report.Passed())
}

func TestNewRunnerRejectsBadParallelism(t *testing.T) {
	_, err := NewRunner(WithParallelism(0))
	assert.Error(t, err)
}

func TestNewRunnerRejectsBadMetricCap(t *testing.T) {
	_, err := NewRunner(WithMaxConcurrentMetrics(0))
	assert.Error(t, err)

	_, err = NewRunner(WithMaxConcurrentMetrics(-1))
	assert.Error(t, err)
}
