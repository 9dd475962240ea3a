//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//

package rouge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRouge1Identical(t *testing.T) {
	score, err := Compute("the cat sat", "the cat sat", Config{Type: "rouge1"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score.Precision, 1e-9)
	assert.InDelta(t, 1.0, score.Recall, 1e-9)
	assert.InDelta(t, 1.0, score.FMeasure, 1e-9)
}

func TestComputeRouge1Disjoint(t *testing.T) {
	score, err := Compute("alpha beta", "gamma delta", Config{Type: "rouge1"})
	require.NoError(t, err)
	assert.Zero(t, score.FMeasure)
}

func TestComputeRouge2(t *testing.T) {
	// Bigrams of the target: "the cat", "cat sat". The prediction shares "the cat".
	score, err := Compute("the cat sat", "the cat ran", Config{Type: "rouge2"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score.Precision, 1e-9)
	assert.InDelta(t, 0.5, score.Recall, 1e-9)
}

func TestComputeRougeL(t *testing.T) {
	score, err := Compute("the quick brown fox", "the brown fox", Config{Type: "rougeL"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score.Precision, 1e-9)
	assert.InDelta(t, 0.75, score.Recall, 1e-9)
}

func TestComputeRougeLsumSplitSummaries(t *testing.T) {
	target := "The cat sat on the mat. It purred loudly."
	prediction := "The cat sat on the mat. It slept all day."
	score, err := Compute(target, prediction, Config{Type: "rougeLsum", SplitSummaries: true})
	require.NoError(t, err)
	assert.Greater(t, score.FMeasure, 0.5)
}

func TestComputeEmptyInputs(t *testing.T) {
	score, err := Compute("", "anything", Config{Type: "rouge1"})
	require.NoError(t, err)
	assert.Zero(t, score.FMeasure)
}

func TestComputeInvalidType(t *testing.T) {
	_, err := Compute("a", "b", Config{Type: "bleu"})
	require.Error(t, err)
	_, err = Compute("a", "b", Config{Type: "rouge0"})
	require.Error(t, err)
	_, err = Compute("a", "b", Config{Type: "rouge"})
	require.Error(t, err)
}

func TestTokenizeStemmer(t *testing.T) {
	tok := newTokenizer(true)
	assert.Equal(t, []string{"run", "quickli"}, tok.Tokenize("Running quickly!"))

	plain := newTokenizer(false)
	assert.Equal(t, []string{"running", "quickly"}, plain.Tokenize("Running quickly!"))
}

func TestTokenizeDropsPunctuation(t *testing.T) {
	tok := newTokenizer(false)
	assert.Equal(t, []string{"we", "offer", "a", "30", "day", "refund"},
		tok.Tokenize("We offer a 30-day refund."))
}

func TestSentTokenizeEnglish(t *testing.T) {
	sents, err := sentTokenizeEnglish("First sentence. Second sentence! Third?")
	require.NoError(t, err)
	require.Len(t, sents, 3)
	assert.Equal(t, "First sentence.", sents[0])
}
