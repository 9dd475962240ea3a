//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package evalset

// Clone returns a deep copy of the test case.
func (t *TestCase) Clone() *TestCase {
	if t == nil {
		return nil
	}
	copied := *t
	copied.RetrievalContext = append([]string(nil), t.RetrievalContext...)
	copied.Context = append([]string(nil), t.Context...)
	return &copied
}

// Clone returns a deep copy of the golden.
func (g *Golden) Clone() *Golden {
	if g == nil {
		return nil
	}
	copied := *g
	copied.RetrievalContext = append([]string(nil), g.RetrievalContext...)
	copied.Context = append([]string(nil), g.Context...)
	return &copied
}

// Clone returns a deep copy of the eval case.
func (c *EvalCase) Clone() *EvalCase {
	if c == nil {
		return nil
	}
	copied := *c
	copied.TestCase = c.TestCase.Clone()
	copied.Golden = c.Golden.Clone()
	if c.CreationTimestamp != nil {
		ts := *c.CreationTimestamp
		copied.CreationTimestamp = &ts
	}
	return &copied
}

// Clone returns a deep copy of the eval set.
func (s *EvalSet) Clone() *EvalSet {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Cases = make([]*EvalCase, 0, len(s.Cases))
	for _, c := range s.Cases {
		copied.Cases = append(copied.Cases, c.Clone())
	}
	if s.CreationTimestamp != nil {
		ts := *s.CreationTimestamp
		copied.CreationTimestamp = &ts
	}
	return &copied
}
