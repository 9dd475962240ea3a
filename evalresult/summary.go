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
	internalstatus "trpc.group/trpc-go/trpc-eval-go/internal/status"
	"trpc.group/trpc-go/trpc-eval-go/status"
)

// SummarizeCase derives the case verdict from its metric results.
func SummarizeCase(metricResults []*EvalMetricResult) (status.EvalStatus, error) {
	statuses := make([]status.EvalStatus, 0, len(metricResults))
	for _, mr := range metricResults {
		statuses = append(statuses, mr.Status)
	}
	return internalstatus.Summarize(statuses)
}

// SummarizeRun derives the run verdict and counts from its case results.
func SummarizeRun(caseResults []*EvalCaseResult) (status.EvalStatus, Summary, error) {
	summary := Summary{Total: len(caseResults)}
	statuses := make([]status.EvalStatus, 0, len(caseResults))
	for _, cr := range caseResults {
		statuses = append(statuses, cr.Status)
		switch cr.Status {
		case status.EvalStatusPassed:
			summary.Passed++
		case status.EvalStatusFailed:
			summary.Failed++
		case status.EvalStatusNotEvaluated:
			summary.NotEvaluated++
		}
	}
	overall, err := internalstatus.Summarize(statuses)
	if err != nil {
		return status.EvalStatusUnknown, summary, err
	}
	return overall, summary, nil
}
