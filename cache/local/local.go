//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a file-backed result cache store so cached metric
// results survive across runs.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"trpc.group/trpc-go/trpc-eval-go/cache"
)

const entryFileSuffix = ".cache.json"

var _ cache.Store = (*store)(nil)

type store struct {
	baseDir string
}

// New creates a file-backed cache store. Each entry is one JSON file named
// by its key under the base directory.
func New(opt ...Option) cache.Store {
	opts := newOptions(opt...)
	return &store{baseDir: opts.baseDir}
}

// Lookup implements cache.Store.
func (s *store) Lookup(_ context.Context, key cache.Key) (*cache.Entry, error) {
	data, err := os.ReadFile(s.entryPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	entry := &cache.Entry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, fmt.Errorf("unmarshal cache entry %s: %w", key, err)
	}
	return entry, nil
}

// Put implements cache.Store. The entry is written to a temporary file and
// renamed so readers never observe a partial write.
func (s *store) Put(_ context.Context, key cache.Key, entry *cache.Entry) error {
	if entry == nil {
		return nil
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir %s: %w", s.baseDir, err)
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}
	path := s.entryPath(key)
	tmp, err := os.CreateTemp(s.baseDir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename cache entry %s: %w", key, err)
	}
	return nil
}

func (s *store) entryPath(key cache.Key) string {
	return filepath.Join(s.baseDir, string(key)+entryFileSuffix)
}
