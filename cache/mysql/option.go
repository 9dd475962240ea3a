//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import "time"

const (
	defaultTable       = "eval_metric_cache"
	defaultInitTimeout = 10 * time.Second
)

type options struct {
	table          string
	skipSchemaInit bool
	initTimeout    time.Duration
}

// Option configures the MySQL cache store.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		table:       defaultTable,
		initTimeout: defaultInitTimeout,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithTable sets the cache table name. Defaults to "eval_metric_cache".
func WithTable(table string) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithSkipSchemaInit skips the CREATE TABLE on startup for deployments
// where the schema is managed externally.
func WithSkipSchemaInit(skip bool) Option {
	return func(o *options) {
		o.skipSchemaInit = skip
	}
}

// WithInitTimeout bounds the schema initialization on startup.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.initTimeout = timeout
	}
}
