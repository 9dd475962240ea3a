//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package evalresult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/status"
)

func TestSummarizeCase(t *testing.T) {
	st, err := SummarizeCase([]*EvalMetricResult{
		{MetricName: "a", Status: status.EvalStatusPassed},
		{MetricName: "b", Status: status.EvalStatusFailed},
	})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusFailed, st)

	st, err = SummarizeCase([]*EvalMetricResult{
		{MetricName: "a", Status: status.EvalStatusPassed},
	})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusPassed, st)

	st, err = SummarizeCase(nil)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusNotEvaluated, st)

	// A case with an unmeasured metric must not report as passed.
	st, err = SummarizeCase([]*EvalMetricResult{
		{MetricName: "a", Status: status.EvalStatusPassed},
		{MetricName: "b", Status: status.EvalStatusNotEvaluated},
	})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusNotEvaluated, st)
}

func TestSummarizeRun(t *testing.T) {
	overall, summary, err := SummarizeRun([]*EvalCaseResult{
		{EvalID: "1", Status: status.EvalStatusPassed},
		{EvalID: "2", Status: status.EvalStatusFailed},
		{EvalID: "3", Status: status.EvalStatusPassed},
		{EvalID: "4", Status: status.EvalStatusNotEvaluated},
	})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusFailed, overall)
	assert.Equal(t, Summary{Total: 4, Passed: 2, Failed: 1, NotEvaluated: 1}, summary)
}

func TestSummarizeRunAllPassed(t *testing.T) {
	overall, summary, err := SummarizeRun([]*EvalCaseResult{
		{EvalID: "1", Status: status.EvalStatusPassed},
		{EvalID: "2", Status: status.EvalStatusPassed},
	})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusPassed, overall)
	assert.Equal(t, 2, summary.Passed)
}

func TestPassed(t *testing.T) {
	assert.True(t, (&EvalSetResult{Status: status.EvalStatusPassed}).Passed())
	assert.False(t, (&EvalSetResult{Status: status.EvalStatusFailed}).Passed())
	assert.False(t, (&EvalSetResult{Status: status.EvalStatusNotEvaluated}).Passed())
}
