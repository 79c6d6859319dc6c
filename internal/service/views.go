// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds application services that sit between handlers
// and the store.
package service

import (
	"context"
	"sync"

	"github.com/sahablabs/sahab-go/internal/store"
)

// ViewCounter buffers blog post view counts in memory so each page view is
// a map increment rather than a database write. Flush runs from a cron job
// and on shutdown.
type ViewCounter struct {
	mu      sync.Mutex
	pending map[int64]int64
	queries *store.Queries
}

// NewViewCounter creates a view counter writing through the given queries.
func NewViewCounter(queries *store.Queries) *ViewCounter {
	return &ViewCounter{
		pending: make(map[int64]int64),
		queries: queries,
	}
}

// Record adds one view for a post.
func (v *ViewCounter) Record(postID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending[postID]++
}

// Pending returns the number of posts with unflushed views.
func (v *ViewCounter) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}

// Flush writes all buffered counts to the database. Counts that fail to
// write are restored to the buffer for the next flush.
func (v *ViewCounter) Flush(ctx context.Context) error {
	v.mu.Lock()
	batch := v.pending
	v.pending = make(map[int64]int64)
	v.mu.Unlock()

	var firstErr error
	for postID, count := range batch {
		if err := v.queries.AddPostViews(ctx, postID, count); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			v.mu.Lock()
			v.pending[postID] += count
			v.mu.Unlock()
		}
	}
	return firstErr
}
