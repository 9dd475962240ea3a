//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package metric

// Names of the built-in metrics.
const (
	MetricLexicalOverlap = "lexical_overlap"
	MetricGEval          = "g_eval"
)
