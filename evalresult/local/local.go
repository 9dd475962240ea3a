//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a file-backed eval result manager.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-eval-go/evalresult"
)

const resultFileSuffix = ".evalset_result.json"

var _ evalresult.Manager = (*manager)(nil)

type manager struct {
	baseDir string
}

// New creates a file-backed eval result manager. Each result is one JSON
// file named by its ID under the base directory.
func New(opt ...Option) evalresult.Manager {
	opts := newOptions(opt...)
	return &manager{baseDir: opts.baseDir}
}

// Save implements evalresult.Manager. The result is written to a temporary
// file and renamed so readers never observe a partial write.
func (m *manager) Save(_ context.Context, result *evalresult.EvalSetResult) (string, error) {
	if result == nil {
		return "", errors.New("eval set result is nil")
	}
	if result.EvalSetResultID == "" {
		result.EvalSetResultID = uuid.New().String()
	}
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir %s: %w", m.baseDir, err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal eval set result %s: %w", result.EvalSetResultID, err)
	}
	tmp, err := os.CreateTemp(m.baseDir, "result-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp result file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write eval set result %s: %w", result.EvalSetResultID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp result file: %w", err)
	}
	if err := os.Rename(tmpPath, m.resultPath(result.EvalSetResultID)); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename eval set result %s: %w", result.EvalSetResultID, err)
	}
	return result.EvalSetResultID, nil
}

// Get implements evalresult.Manager.
func (m *manager) Get(_ context.Context, evalSetResultID string) (*evalresult.EvalSetResult, error) {
	data, err := os.ReadFile(m.resultPath(evalSetResultID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("eval set result %s: %w", evalSetResultID, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read eval set result %s: %w", evalSetResultID, err)
	}
	result := &evalresult.EvalSetResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("unmarshal eval set result %s: %w", evalSetResultID, err)
	}
	return result, nil
}

// List implements evalresult.Manager.
func (m *manager) List(ctx context.Context) ([]*evalresult.EvalSetResult, error) {
	entries, err := os.ReadDir(m.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results dir %s: %w", m.baseDir, err)
	}
	var results []*evalresult.EvalSetResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resultFileSuffix) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), resultFileSuffix)
		result, err := m.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
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

func (m *manager) resultPath(evalSetResultID string) string {
	return filepath.Join(m.baseDir, evalSetResultID+resultFileSuffix)
}
