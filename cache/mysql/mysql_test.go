//
// Tencent is pleased to support the open source community by making trpc-eval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-eval-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-eval-go/cache"
)

func newCacheStore(t *testing.T) (cache.Store, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	return NewWithDB(db, WithTable("test_cache")), db, mock
}

func TestNewEmptyDSN(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestLookupHit(t *testing.T) {
	s, db, mock := newCacheStore(t)
	defer db.Close()

	entry := &cache.Entry{Score: 0.8, Reason: "good", Success: true}
	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	key := cache.NewKey("case-hash", "lexical_overlap", "overlap/v1")
	mock.ExpectQuery("SELECT entry FROM test_cache WHERE cache_key = \\?").
		WithArgs(string(key)).
		WillReturnRows(sqlmock.NewRows([]string{"entry"}).AddRow(payload))

	got, err := s.Lookup(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.8, got.Score)
	assert.Equal(t, "good", got.Reason)
	assert.True(t, got.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupMiss(t *testing.T) {
	s, db, mock := newCacheStore(t)
	defer db.Close()

	key := cache.NewKey("case-hash", "lexical_overlap", "overlap/v1")
	mock.ExpectQuery("SELECT entry FROM test_cache WHERE cache_key = \\?").
		WithArgs(string(key)).
		WillReturnError(sql.ErrNoRows)

	got, err := s.Lookup(context.Background(), key)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupQueryError(t *testing.T) {
	s, db, mock := newCacheStore(t)
	defer db.Close()

	key := cache.NewKey("case-hash", "lexical_overlap", "overlap/v1")
	mock.ExpectQuery("SELECT entry FROM test_cache WHERE cache_key = \\?").
		WithArgs(string(key)).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Lookup(context.Background(), key)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutUpsert(t *testing.T) {
	s, db, mock := newCacheStore(t)
	defer db.Close()

	key := cache.NewKey("case-hash", "g_eval", "geval/v1")
	mock.ExpectExec("INSERT INTO test_cache \\(cache_key, entry\\) VALUES \\(\\?, \\?\\)").
		WithArgs(string(key), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Put(context.Background(), key, &cache.Entry{Score: 1, Success: true})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutNilEntry(t *testing.T) {
	s, db, mock := newCacheStore(t)
	defer db.Close()

	err := s.Put(context.Background(), cache.NewKey("h", "m", "f"), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
