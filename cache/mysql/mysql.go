//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL-backed result cache store for sharing
// cached metric results between machines.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// MySQL driver registration.
	_ "github.com/go-sql-driver/mysql"

	"trpc.group/trpc-go/trpc-eval-go/cache"
)

var _ cache.Store = (*store)(nil)

type store struct {
	db    *sql.DB
	table string
}

// New opens a MySQL connection with the DSN and creates the cache table
// when it does not exist.
func New(dsn string, opt ...Option) (cache.Store, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn is empty")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	opts := newOptions(opt...)
	s := &store{db: db, table: opts.table}
	if !opts.skipSchemaInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if err := s.ensureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewWithDB wraps an existing database handle. The caller owns the handle
// and the table schema.
func NewWithDB(db *sql.DB, opt ...Option) cache.Store {
	opts := newOptions(opt...)
	return &store{db: db, table: opts.table}
}

func (s *store) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
		   cache_key VARCHAR(64) NOT NULL,
		   entry JSON NOT NULL,
		   updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		   PRIMARY KEY (cache_key)
		 )`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create cache table %s: %w", s.table, err)
	}
	return nil
}

// Lookup implements cache.Store.
func (s *store) Lookup(ctx context.Context, key cache.Key) (*cache.Entry, error) {
	query := fmt.Sprintf("SELECT entry FROM %s WHERE cache_key = ?", s.table)
	var payload []byte
	err := s.db.QueryRowContext(ctx, query, string(key)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query cache entry %s: %w", key, err)
	}
	entry := &cache.Entry{}
	if err := json.Unmarshal(payload, entry); err != nil {
		return nil, fmt.Errorf("unmarshal cache entry %s: %w", key, err)
	}
	return entry, nil
}

// Put implements cache.Store.
func (s *store) Put(ctx context.Context, key cache.Key, entry *cache.Entry) error {
	if entry == nil {
		return nil
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (cache_key, entry) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE entry = VALUES(entry), updated_at = CURRENT_TIMESTAMP(6)`,
		s.table)
	if _, err := s.db.ExecContext(ctx, query, string(key), payload); err != nil {
		return fmt.Errorf("store cache entry %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *store) Close() error {
	return s.db.Close()
}
