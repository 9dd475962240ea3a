//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package overlap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/evalset"
	"trpc.group/trpc-go/trpc-eval-go/metric"
)

func TestMeasureIdenticalTexts(t *testing.T) {
	m, err := New(0.5)
	require.NoError(t, err)

	score, err := m.Measure(&evalset.TestCase{
		Input:          "What is the refund window?",
		ActualOutput:   "You can get a full refund within 30 days.",
		ExpectedOutput: "You can get a full refund within 30 days.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	ok, err := m.IsSuccessful()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMeasurePartialOverlap(t *testing.T) {
	m, err := New(0.5)
	require.NoError(t, err)

	score, err := m.Measure(&evalset.TestCase{
		Input:          "What is the refund window?",
		ActualOutput:   "We offer a 30 day refund policy on all purchases.",
		ExpectedOutput: "We offer a 30 day refund.",
	})
	require.NoError(t, err)
	assert.Greater(t, score, 0.5)
	assert.Less(t, score, 1.0)

	ok, err := m.IsSuccessful()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, m.Reason())
}

func TestMeasureMissingExpectedOutput(t *testing.T) {
	m, err := New(0.5)
	require.NoError(t, err)

	_, err = m.Measure(&evalset.TestCase{
		Input:        "hello",
		ActualOutput: "hi there",
	})
	assert.ErrorIs(t, err, metric.ErrMissingField)

	_, err = m.IsSuccessful()
	assert.ErrorIs(t, err, metric.ErrMissingField)
}

func TestMeasureCanceledContext(t *testing.T) {
	m, err := New(0.5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.MeasureWithContext(ctx, &evalset.TestCase{
		ActualOutput:   "a",
		ExpectedOutput: "a",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidation(t *testing.T) {
	_, err := New(1.5)
	assert.Error(t, err)

	_, err = New(0.5, WithRougeType("rouge0"))
	assert.Error(t, err)

	_, err = New(0.5, WithMeasure("median"))
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := New(0.5, WithRougeType("rougeL"), WithMeasure(Recall))
	require.NoError(t, err)
	_, err = m.Measure(&evalset.TestCase{ActualOutput: "a b c", ExpectedOutput: "a b c"})
	require.NoError(t, err)

	clone := m.Clone()
	_, err = clone.IsSuccessful()
	assert.ErrorIs(t, err, metric.ErrNotMeasured)
	assert.Equal(t, m.Fingerprint(), clone.Fingerprint())
}

func TestFingerprintVariesWithConfig(t *testing.T) {
	a, err := New(0.5)
	require.NoError(t, err)
	b, err := New(0.6)
	require.NoError(t, err)
	c, err := New(0.5, WithRougeType("rouge2"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
