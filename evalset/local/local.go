//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file storage implementation of evalset.Manager.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
	"trpc.group/trpc-go/trpc-eval-go/evalset"
)

const evalSetFileSuffix = ".evalset.json"

// manager implements evalset.Manager using one JSON file per eval set.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// NewManager creates a new local file evaluation set manager.
// Use functional options (see option.go) to override the default directory.
func NewManager(opt ...Option) evalset.Manager {
	opts := newOptions(opt...)
	return &manager{baseDir: opts.baseDir}
}

// Get returns the EvalSet identified by evalSetID.
func (m *manager) Get(ctx context.Context, evalSetID string) (*evalset.EvalSet, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(evalSetID)
}

// Create creates and persists an empty EvalSet given the evalSetID.
func (m *manager) Create(ctx context.Context, evalSetID string) (*evalset.EvalSet, error) {
	_ = ctx
	if evalSetID == "" {
		return nil, errors.New("eval set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := os.Stat(m.setPath(evalSetID)); err == nil {
		return nil, fmt.Errorf("eval set %s already exists", evalSetID)
	}
	set := &evalset.EvalSet{
		EvalSetID:         evalSetID,
		CreationTimestamp: epochtime.Now(),
	}
	if err := m.save(set); err != nil {
		return nil, err
	}
	return set, nil
}

// GetCase returns an EvalCase if found.
func (m *manager) GetCase(ctx context.Context, evalSetID, evalCaseID string) (*evalset.EvalCase, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(evalSetID)
	if err != nil {
		return nil, err
	}
	for _, c := range set.Cases {
		if c.EvalID == evalCaseID {
			return c, nil
		}
	}
	return nil, fmt.Errorf("get eval case %s: %w", evalCaseID, os.ErrNotExist)
}

// AddCase appends the given EvalCase to an existing EvalSet.
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
	set, err := m.load(evalSetID)
	if err != nil {
		return err
	}
	for _, c := range set.Cases {
		if c.EvalID == evalCase.EvalID {
			return fmt.Errorf("eval case %s already exists", evalCase.EvalID)
		}
	}
	set.Cases = append(set.Cases, evalCase)
	return m.save(set)
}

// UpdateCase replaces an existing EvalCase and persists the set.
func (m *manager) UpdateCase(ctx context.Context, evalSetID string, updatedEvalCase *evalset.EvalCase) error {
	_ = ctx
	if updatedEvalCase == nil {
		return errors.New("eval case is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(evalSetID)
	if err != nil {
		return err
	}
	for i, c := range set.Cases {
		if c.EvalID == updatedEvalCase.EvalID {
			set.Cases[i] = updatedEvalCase
			return m.save(set)
		}
	}
	return fmt.Errorf("get eval case %s: %w", updatedEvalCase.EvalID, os.ErrNotExist)
}

// DeleteCase removes an EvalCase and persists the set.
func (m *manager) DeleteCase(ctx context.Context, evalSetID, evalCaseID string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(evalSetID)
	if err != nil {
		return err
	}
	for i, c := range set.Cases {
		if c.EvalID == evalCaseID {
			set.Cases = append(set.Cases[:i], set.Cases[i+1:]...)
			return m.save(set)
		}
	}
	return fmt.Errorf("get eval case %s: %w", evalCaseID, os.ErrNotExist)
}

func (m *manager) setPath(evalSetID string) string {
	return filepath.Join(m.baseDir, evalSetID+evalSetFileSuffix)
}

func (m *manager) load(evalSetID string) (*evalset.EvalSet, error) {
	f, err := os.Open(m.setPath(evalSetID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("get eval set %s: %w", evalSetID, os.ErrNotExist)
		}
		return nil, err
	}
	defer f.Close()
	var set evalset.EvalSet
	if err := json.NewDecoder(f).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode eval set %s: %w", evalSetID, err)
	}
	return &set, nil
}

func (m *manager) save(set *evalset.EvalSet) error {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return err
	}
	path := m.setPath(set.EvalSetID)
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
