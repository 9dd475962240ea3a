//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory result cache store.
package inmemory

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-eval-go/cache"
)

var _ cache.Store = (*store)(nil)

type store struct {
	mu      sync.RWMutex
	entries map[cache.Key]cache.Entry
}

// New creates an in-memory cache store.
func New() cache.Store {
	return &store{entries: make(map[cache.Key]cache.Entry)}
}

// Lookup implements cache.Store.
func (s *store) Lookup(_ context.Context, key cache.Key) (*cache.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put implements cache.Store.
func (s *store) Put(_ context.Context, key cache.Key, entry *cache.Entry) error {
	if entry == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = *entry
	return nil
}
