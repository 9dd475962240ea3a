//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package local

const defaultBaseDir = "eval_cache"

type options struct {
	baseDir string
}

// Option configures the local cache store.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{baseDir: defaultBaseDir}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithBaseDir sets the directory cache entries are stored in.
// Defaults to "eval_cache".
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}
