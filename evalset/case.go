//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package evalset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// TestCase represents a single scored input/output pair.
// Treat it as immutable once constructed: the content hash identifies the
// case in caches and reports, so mutating fields after construction would
// silently detach the case from its cached results.
type TestCase struct {
	// Input is the prompt or question presented to the evaluated application.
	Input string `json:"input"`
	// ActualOutput is the output produced by the evaluated application.
	ActualOutput string `json:"actualOutput"`
	// ExpectedOutput is the reference answer, when one exists.
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	// RetrievalContext holds the documents retrieved while producing ActualOutput.
	RetrievalContext []string `json:"retrievalContext,omitempty"`
	// Context holds additional ground-truth context for the case.
	Context []string `json:"context,omitempty"`
}

// ContentHash returns a stable hex digest of the case fields.
// Two cases with identical field values share a hash.
func (t *TestCase) ContentHash() string {
	if t == nil {
		return ""
	}
	b, err := json.Marshal(t)
	if err != nil {
		// Marshaling a struct of strings and string slices cannot fail.
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Golden is a case template that is still missing its actual output.
// A dataset producer creates Goldens; an output-generation step later
// materializes each one into a TestCase.
type Golden struct {
	// Input is the prompt or question for the pending case.
	Input string `json:"input"`
	// ExpectedOutput is the reference answer, when one exists.
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	// RetrievalContext holds documents associated with the pending case.
	RetrievalContext []string `json:"retrievalContext,omitempty"`
	// Context holds additional ground-truth context for the pending case.
	Context []string `json:"context,omitempty"`
}

// Materialize builds a TestCase from the golden and the generated output.
func (g *Golden) Materialize(actualOutput string) *TestCase {
	if g == nil {
		return nil
	}
	return &TestCase{
		Input:            g.Input,
		ActualOutput:     actualOutput,
		ExpectedOutput:   g.ExpectedOutput,
		RetrievalContext: append([]string(nil), g.RetrievalContext...),
		Context:          append([]string(nil), g.Context...),
	}
}
