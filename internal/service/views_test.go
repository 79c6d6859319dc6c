// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

func testQueries(t *testing.T) *store.Queries {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return store.New(db)
}

func TestViewCounterFlush(t *testing.T) {
	queries := testQueries(t)
	ctx := context.Background()

	post, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title: "Counted", Slug: "counted", Status: model.PostStatusPublished,
	})
	require.NoError(t, err)

	counter := NewViewCounter(queries)
	counter.Record(post.ID)
	counter.Record(post.ID)
	counter.Record(post.ID)
	assert.Equal(t, 1, counter.Pending())

	require.NoError(t, counter.Flush(ctx))
	assert.Equal(t, 0, counter.Pending())

	got, err := queries.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Views)

	// Flushing an empty buffer is a no-op.
	require.NoError(t, counter.Flush(ctx))
}

func TestViewCounterConcurrentRecord(t *testing.T) {
	queries := testQueries(t)
	ctx := context.Background()

	post, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title: "Busy", Slug: "busy", Status: model.PostStatusPublished,
	})
	require.NoError(t, err)

	counter := NewViewCounter(queries)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Record(post.ID)
		}()
	}
	wg.Wait()

	require.NoError(t, counter.Flush(ctx))

	got, err := queries.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 50, got.Views)
}
