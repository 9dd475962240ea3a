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

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/metric"
)

type caseEvalParam struct {
	idx      int
	ctx      context.Context
	evalCase *evalset.EvalCase
	metrics  []metric.Metric
	runner   *Runner
	results  []*evalresult.EvalCaseResult
	wg       *sync.WaitGroup
}

func (p *caseEvalParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.evalCase = nil
	p.metrics = nil
	p.runner = nil
	p.results = nil
	p.wg = nil
}

var caseEvalParamPool = &sync.Pool{
	New: func() any { return new(caseEvalParam) },
}

func createCaseEvalPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*caseEvalParam)
		if !ok {
			panic("case eval pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			caseEvalParamPool.Put(param)
		}()
		param.results[param.idx] = param.runner.evaluateCase(param.ctx, param.evalCase, param.metrics)
	})
	if err != nil {
		return nil, fmt.Errorf("create case eval pool: %w", err)
	}
	return pool, nil
}
