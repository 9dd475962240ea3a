//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory eval result manager.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-eval-go/evalresult"
)

var _ evalresult.Manager = (*manager)(nil)

type manager struct {
	mu      sync.RWMutex
	results map[string]*evalresult.EvalSetResult
}

// New creates an in-memory eval result manager.
func New() evalresult.Manager {
	return &manager{results: make(map[string]*evalresult.EvalSetResult)}
}

// Save implements evalresult.Manager.
func (m *manager) Save(_ context.Context, result *evalresult.EvalSetResult) (string, error) {
	if result == nil {
		return "", errors.New("eval set result is nil")
	}
	if result.EvalSetResultID == "" {
		result.EvalSetResultID = uuid.New().String()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *result
	m.results[result.EvalSetResultID] = &stored
	return result.EvalSetResultID, nil
}

// Get implements evalresult.Manager.
func (m *manager) Get(_ context.Context, evalSetResultID string) (*evalresult.EvalSetResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[evalSetResultID]
	if !ok {
		return nil, fmt.Errorf("eval set result %s: %w", evalSetResultID, os.ErrNotExist)
	}
	copied := *result
	return &copied, nil
}

// List implements evalresult.Manager.
func (m *manager) List(_ context.Context) ([]*evalresult.EvalSetResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]*evalresult.EvalSetResult, 0, len(m.results))
	for _, result := range m.results {
		copied := *result
		results = append(results, &copied)
	}
	sort.Slice(results, func(i, j int) bool {
		ti, tj := results[i].CreationTimestamp, results[j].CreationTimestamp
		if ti == nil || tj == nil {
			return results[i].EvalSetResultID < results[j].EvalSetResultID
		}
		return ti.Time.After(tj.Time)
	})
	return results, nil
}
