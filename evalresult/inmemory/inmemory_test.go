//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
	"trpc.group/trpc-go/trpc-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-eval-go/status"
)

func TestSaveGeneratesID(t *testing.T) {
	m := New()
	id, err := m.Save(context.Background(), &evalresult.EvalSetResult{EvalSetID: "set-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := m.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "set-1", got.EvalSetID)
}

func TestSaveNil(t *testing.T) {
	m := New()
	_, err := m.Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetNotFound(t *testing.T) {
	m := New()
	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListNewestFirst(t *testing.T) {
	m := New()
	ctx := context.Background()

	_, err := m.Save(ctx, &evalresult.EvalSetResult{
		EvalSetResultID:   "old",
		Status:            status.EvalStatusPassed,
		CreationTimestamp: &epochtime.EpochTime{Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)
	_, err = m.Save(ctx, &evalresult.EvalSetResult{
		EvalSetResultID:   "new",
		Status:            status.EvalStatusFailed,
		CreationTimestamp: &epochtime.EpochTime{Time: time.Now()},
	})
	require.NoError(t, err)

	results, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new", results[0].EvalSetResultID)
}
