//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package status provides functions to summarize evaluation statuses.
package status

import (
	"fmt"

	"trpc.group/trpc-go/trpc-eval-go/status"
)

// Summarize combines a list of statuses into a single value.
// The precedence rules are:
// 1. If there is a Failed, the overall status is Failed.
// 2. If there is a NotEvaluated, the overall status is NotEvaluated:
//    an aggregate passes only when every member actually passed, so a
//    partially evaluated aggregate never reports Passed.
// 3. If every status is Passed, the overall status is Passed.
func Summarize(statuses []status.EvalStatus) (status.EvalStatus, error) {
	sawNotEvaluated := false
	sawPassed := false
	for _, s := range statuses {
		switch s {
		case status.EvalStatusFailed:
			return status.EvalStatusFailed, nil
		case status.EvalStatusPassed:
			sawPassed = true
		case status.EvalStatusNotEvaluated:
			sawNotEvaluated = true
		default:
			return status.EvalStatusFailed, fmt.Errorf("unexpected eval status %v", s)
		}
	}
	if sawPassed && !sawNotEvaluated {
		return status.EvalStatusPassed, nil
	}
	return status.EvalStatusNotEvaluated, nil
}
