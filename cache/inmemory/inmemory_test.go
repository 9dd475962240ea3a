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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/cache"
)

func TestPutLookupRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	key := cache.NewKey("case-hash", "lexical_overlap", "overlap/v1")

	got, err := s.Lookup(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, key, &cache.Entry{Score: 0.6, Success: true}))

	got, err = s.Lookup(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.6, got.Score)
}

func TestLookupReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	key := cache.NewKey("case-hash", "g_eval", "geval/v1")
	require.NoError(t, s.Put(ctx, key, &cache.Entry{Score: 0.5}))

	first, err := s.Lookup(ctx, key)
	require.NoError(t, err)
	first.Score = 0

	second, err := s.Lookup(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0.5, second.Score)
}
