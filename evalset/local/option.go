//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package local

// defaultBaseDir is the default directory for persisted eval sets.
const defaultBaseDir = "evalsets"

// options holds configuration for the local eval set manager.
type options struct {
	baseDir string
}

// newOptions applies functional options on top of the defaults.
func newOptions(opt ...Option) *options {
	opts := &options{baseDir: defaultBaseDir}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the local eval set manager.
type Option func(*options)

// WithBaseDir overrides the directory used to store eval set files.
func WithBaseDir(baseDir string) Option {
	return func(o *options) {
		if baseDir != "" {
			o.baseDir = baseDir
		}
	}
}
