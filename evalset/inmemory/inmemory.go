//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of evalset.Manager.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
	"trpc.group/trpc-go/trpc-eval-go/evalset"
)

// manager implements evalset.Manager backed by a process-local map.
type manager struct {
	mu   sync.RWMutex
	sets map[string]*evalset.EvalSet
}

// NewManager creates a new in-memory evaluation set manager.
func NewManager() evalset.Manager {
	return &manager{sets: make(map[string]*evalset.EvalSet)}
}

// Get returns a copy of the EvalSet identified by evalSetID.
func (m *manager) Get(ctx context.Context, evalSetID string) (*evalset.EvalSet, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[evalSetID]
	if !ok {
		return nil, fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
	}
	return set.Clone(), nil
}

// Create creates and returns an empty EvalSet given the evalSetID.
func (m *manager) Create(ctx context.Context, evalSetID string) (*evalset.EvalSet, error) {
	_ = ctx
	if evalSetID == "" {
		return nil, errors.New("eval set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sets[evalSetID]; ok {
		return nil, fmt.Errorf("eval set %s already exists", evalSetID)
	}
	set := &evalset.EvalSet{
		EvalSetID:         evalSetID,
		CreationTimestamp: epochtime.Now(),
	}
	m.sets[evalSetID] = set
	return set.Clone(), nil
}

// GetCase returns a copy of an EvalCase if found.
func (m *manager) GetCase(ctx context.Context, evalSetID, evalCaseID string) (*evalset.EvalCase, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[evalSetID]
	if !ok {
		return nil, fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
	}
	for _, c := range set.Cases {
		if c.EvalID == evalCaseID {
			return c.Clone(), nil
		}
	}
	return nil, fmt.Errorf("get eval case %s: %w", evalCaseID, os.ErrNotExist)
}

// AddCase adds the given EvalCase to an existing EvalSet.
func (m *manager) AddCase(ctx context.Context, evalSetID string, evalCase *evalset.EvalCase) error {
	_ = ctx
	if evalCase == nil {
		return errors.New("eval case is nil")
	}
	if evalCase.EvalID == "" {
		return errors.New("eval case id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[evalSetID]
	if !ok {
		return fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
	}
	for _, c := range set.Cases {
		if c.EvalID == evalCase.EvalID {
			return fmt.Errorf("eval case %s already exists", evalCase.EvalID)
		}
	}
	set.Cases = append(set.Cases, evalCase.Clone())
	return nil
}

// UpdateCase replaces an existing EvalCase in the set.
func (m *manager) UpdateCase(ctx context.Context, evalSetID string, updatedEvalCase *evalset.EvalCase) error {
	_ = ctx
	if updatedEvalCase == nil {
		return errors.New("eval case is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[evalSetID]
	if !ok {
		return fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
	}
	for i, c := range set.Cases {
		if c.EvalID == updatedEvalCase.EvalID {
			set.Cases[i] = updatedEvalCase.Clone()
			return nil
		}
	}
	return fmt.Errorf("get eval case %s: %w", updatedEvalCase.EvalID, os.ErrNotExist)
}

// DeleteCase removes an EvalCase from the set.
func (m *manager) DeleteCase(ctx context.Context, evalSetID, evalCaseID string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[evalSetID]
	if !ok {
		return fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
	}
	for i, c := range set.Cases {
		if c.EvalID == evalCaseID {
			set.Cases = append(set.Cases[:i], set.Cases[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("get eval case %s: %w", evalCaseID, os.ErrNotExist)
}
