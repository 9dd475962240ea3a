//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package evalset provides evaluation cases and the datasets that hold them.
package evalset

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-eval-go/epochtime"
)

// ErrUnresolvedGolden is returned when evaluation is requested for a case
// whose golden has not been materialized into a test case yet.
var ErrUnresolvedGolden = errors.New("golden has no actual output")

// EvalCase is one entry of an evaluation set: either a resolved test case or
// a golden still awaiting its generated output.
type EvalCase struct {
	// EvalID uniquely identifies this evaluation case within its set.
	EvalID string `json:"evalId,omitempty"`
	// TestCase is the resolved case. Nil while the entry is still a golden.
	TestCase *TestCase `json:"testCase,omitempty"`
	// Golden is the pending case template produced by a dataset producer.
	Golden *Golden `json:"golden,omitempty"`
	// CreationTimestamp when this eval case was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// Resolved reports whether the entry carries a test case ready for evaluation.
func (c *EvalCase) Resolved() bool {
	return c != nil && c.TestCase != nil
}

// Resolve materializes the golden with the generated output.
// It is a no-op error if the entry has no golden to resolve.
func (c *EvalCase) Resolve(actualOutput string) error {
	if c == nil {
		return errors.New("eval case is nil")
	}
	if c.TestCase != nil {
		return fmt.Errorf("eval case %s is already resolved", c.EvalID)
	}
	if c.Golden == nil {
		return fmt.Errorf("eval case %s has no golden: %w", c.EvalID, ErrUnresolvedGolden)
	}
	c.TestCase = c.Golden.Materialize(actualOutput)
	return nil
}

// EvalSet is an ordered collection of evaluation cases.
type EvalSet struct {
	// EvalSetID uniquely identifies this evaluation set.
	EvalSetID string `json:"evalSetId"`
	// Name of the evaluation set.
	Name string `json:"name,omitempty"`
	// Alias correlates the set with an external system, such as a dashboard.
	Alias string `json:"alias,omitempty"`
	// Cases contains all the evaluation cases in order.
	Cases []*EvalCase `json:"cases,omitempty"`
	// CreationTimestamp when this eval set was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// Len returns the number of cases in the set.
func (s *EvalSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Cases)
}

// Append adds a resolved test case to the end of the set.
func (s *EvalSet) Append(evalID string, testCase *TestCase) error {
	if s == nil {
		return errors.New("eval set is nil")
	}
	if testCase == nil {
		return errors.New("test case is nil")
	}
	s.Cases = append(s.Cases, &EvalCase{
		EvalID:            evalID,
		TestCase:          testCase,
		CreationTimestamp: epochtime.Now(),
	})
	return nil
}

// AppendGolden adds a pending golden to the end of the set.
// This is the entry point for external dataset producers.
func (s *EvalSet) AppendGolden(evalID string, golden *Golden) error {
	if s == nil {
		return errors.New("eval set is nil")
	}
	if golden == nil {
		return errors.New("golden is nil")
	}
	s.Cases = append(s.Cases, &EvalCase{
		EvalID:            evalID,
		Golden:            golden,
		CreationTimestamp: epochtime.Now(),
	})
	return nil
}

// Unresolved returns the IDs of cases that still lack an actual output.
func (s *EvalSet) Unresolved() []string {
	if s == nil {
		return nil
	}
	var ids []string
	for _, c := range s.Cases {
		if !c.Resolved() {
			ids = append(ids, c.EvalID)
		}
	}
	return ids
}

// Manager defines the interface for managing evaluation sets.
type Manager interface {
	// Get returns an EvalSet identified by evalSetID.
	Get(ctx context.Context, evalSetID string) (*EvalSet, error)
	// Create creates and returns an empty EvalSet given the evalSetID.
	Create(ctx context.Context, evalSetID string) (*EvalSet, error)
	// GetCase returns an EvalCase if found, otherwise an error.
	GetCase(ctx context.Context, evalSetID, evalCaseID string) (*EvalCase, error)
	// AddCase adds the given EvalCase to an existing EvalSet identified by evalSetID.
	AddCase(ctx context.Context, evalSetID string, evalCase *EvalCase) error
	// UpdateCase updates an existing EvalCase given the evalSetID.
	UpdateCase(ctx context.Context, evalSetID string, updatedEvalCase *EvalCase) error
	// DeleteCase deletes the given EvalCase identified by evalSetID and evalCaseID.
	DeleteCase(ctx context.Context, evalSetID, evalCaseID string) error
}
