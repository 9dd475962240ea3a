//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package cache provides content-addressed storage for metric results so
// unchanged test cases are not re-scored across runs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
)

// Key addresses one metric result. It is derived from the test case content
// hash and the metric identity, so any change to the case text, the metric
// name, or the metric configuration produces a different key.
type Key string

// NewKey builds the cache key for a test case scored by a metric.
func NewKey(caseHash, metricName, metricFingerprint string) Key {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s", caseHash, metricName, metricFingerprint))
	return Key(hex.EncodeToString(sum[:]))
}

// Entry is one cached metric result.
type Entry struct {
	// Score is the recorded metric score.
	Score float64 `json:"score"`
	// Reason explains the score.
	Reason string `json:"reason,omitempty"`
	// Success is the recorded verdict against the threshold.
	Success bool `json:"success"`
	// Timestamp records when the entry was stored.
	Timestamp *epochtime.EpochTime `json:"timestamp,omitempty"`
}

// Store persists cached metric results.
//
// Lookup returns (nil, nil) on a miss; an error means the store itself
// failed. Callers treat store failures as misses so caching never breaks
// an evaluation run.
type Store interface {
	// Lookup returns the cached entry for the key, or nil when absent.
	Lookup(ctx context.Context, key Key) (*Entry, error)
	// Put stores the entry under the key, replacing any existing entry.
	Put(ctx context.Context, key Key, entry *Entry) error
}
