//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads evaluation run configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML duration strings such as "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Judge configures the judge model backend.
type Judge struct {
	// Model is the judge model name, e.g. "gpt-4o-mini".
	Model string `yaml:"model"`
	// APIKey falls back to the OPENAI_API_KEY environment variable when empty.
	APIKey string `yaml:"api_key"`
	// BaseURL points at an OpenAI-compatible endpoint when non-empty.
	BaseURL string `yaml:"base_url"`
	// Temperature for judge calls; nil keeps the provider default.
	Temperature *float64 `yaml:"temperature"`
}

// Config is the evaluation run configuration.
type Config struct {
	// RunAsync enables concurrent metric measurement within a case.
	RunAsync bool `yaml:"run_async"`
	// Parallelism is the number of cases evaluated concurrently.
	Parallelism int `yaml:"parallelism"`
	// MaxConcurrentMetrics bounds concurrent metrics within one case.
	MaxConcurrentMetrics int `yaml:"max_concurrent_metrics"`
	// CacheEnabled turns on the metric result cache.
	CacheEnabled bool `yaml:"cache_enabled"`
	// CacheDir is the local cache directory when caching is enabled.
	CacheDir string `yaml:"cache_dir"`
	// ResultsDir is where run reports are written.
	ResultsDir string `yaml:"results_dir"`
	// MetricTimeout bounds a single metric measurement.
	MetricTimeout Duration `yaml:"metric_timeout"`
	// Judge configures the judge model backend.
	Judge Judge `yaml:"judge"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		RunAsync:             true,
		Parallelism:          4,
		MaxConcurrentMetrics: 4,
		CacheDir:             "eval_cache",
		ResultsDir:           "eval_results",
		MetricTimeout:        Duration(2 * time.Minute),
	}
}

// Load reads and validates a YAML configuration file. Omitted fields keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the runner cannot honor.
func (c *Config) Validate() error {
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive, got %d", c.Parallelism)
	}
	if c.MaxConcurrentMetrics <= 0 {
		return fmt.Errorf("max_concurrent_metrics must be positive, got %d", c.MaxConcurrentMetrics)
	}
	if c.MetricTimeout <= 0 {
		return fmt.Errorf("metric_timeout must be positive, got %v", c.MetricTimeout.Std())
	}
	return nil
}
