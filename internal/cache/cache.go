// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer used for public blog listings
// and site settings. A memory cache is always available; Redis can be
// configured for multi-instance deployments.
package cache

import (
	"context"
	"time"
)

// Cache is the byte-oriented store shared by the memory and Redis backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
