//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package eval

import (
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-eval-go/cache"
	cachelocal "trpc.group/trpc-go/trpc-eval-go/cache/local"
	"trpc.group/trpc-go/trpc-eval-go/config"
	"trpc.group/trpc-go/trpc-eval-go/epochtime"
	"trpc.group/trpc-go/trpc-eval-go/evalresult"
	resultlocal "trpc.group/trpc-go/trpc-eval-go/evalresult/local"
)

const (
	defaultParallelism          = 4
	defaultMaxConcurrentMetrics = 4
	defaultMetricTimeout        = 2 * time.Minute
)

type options struct {
	runAsync             bool
	parallelism          int
	maxConcurrentMetrics int
	cacheEnabled         bool
	cacheStore           cache.Store
	resultManager        evalresult.Manager
	metricTimeout        time.Duration
	idSupplier           func() string
	nowSupplier          func() *epochtime.EpochTime
}

// Option configures the runner.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		runAsync:             true,
		parallelism:          defaultParallelism,
		maxConcurrentMetrics: defaultMaxConcurrentMetrics,
		metricTimeout:        defaultMetricTimeout,
		idSupplier:           func() string { return uuid.New().String() },
		nowSupplier:          epochtime.Now,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithRunAsync toggles concurrent metric measurement within a case.
// Enabled by default.
func WithRunAsync(enable bool) Option {
	return func(o *options) {
		o.runAsync = enable
	}
}

// WithParallelism sets how many cases are evaluated concurrently.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMaxConcurrentMetrics bounds concurrent metric measurements within
// one case when run-async is enabled.
func WithMaxConcurrentMetrics(n int) Option {
	return func(o *options) {
		o.maxConcurrentMetrics = n
	}
}

// WithCache enables the metric result cache backed by the store.
func WithCache(store cache.Store) Option {
	return func(o *options) {
		o.cacheEnabled = store != nil
		o.cacheStore = store
	}
}

// WithResultManager persists run reports through the manager.
func WithResultManager(manager evalresult.Manager) Option {
	return func(o *options) {
		o.resultManager = manager
	}
}

// WithMetricTimeout bounds a single metric measurement.
// Defaults to two minutes.
func WithMetricTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.metricTimeout = timeout
	}
}

// WithIDSupplier overrides run report ID generation.
func WithIDSupplier(supplier func() string) Option {
	return func(o *options) {
		if supplier != nil {
			o.idSupplier = supplier
		}
	}
}

// WithNowSupplier overrides report timestamp generation.
func WithNowSupplier(supplier func() *epochtime.EpochTime) Option {
	return func(o *options) {
		if supplier != nil {
			o.nowSupplier = supplier
		}
	}
}

// FromConfig translates a loaded configuration into runner options.
func FromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}
	opts := []Option{
		WithRunAsync(cfg.RunAsync),
		WithParallelism(cfg.Parallelism),
		WithMaxConcurrentMetrics(cfg.MaxConcurrentMetrics),
		WithMetricTimeout(cfg.MetricTimeout.Std()),
	}
	if cfg.CacheEnabled {
		opts = append(opts, WithCache(cachelocal.New(cachelocal.WithBaseDir(cfg.CacheDir))))
	}
	if cfg.ResultsDir != "" {
		opts = append(opts, WithResultManager(resultlocal.New(resultlocal.WithBaseDir(cfg.ResultsDir))))
	}
	return opts
}
