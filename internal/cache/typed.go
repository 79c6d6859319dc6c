// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON fetches a cached value and unmarshals it into T.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, error) {
	var out T
	raw, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding cached %q: %w", key, err)
	}
	return out, nil
}

// SetJSON marshals a value and stores it under key.
func SetJSON[T any](ctx context.Context, c Cache, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q for cache: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// GetOrFillJSON returns the cached value for key, or invokes fill, caches
// the result and returns it. Fill errors are returned without caching.
func GetOrFillJSON[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fill func(context.Context) (T, error)) (T, error) {
	cached, err := GetJSON[T](ctx, c, key)
	if err == nil {
		return cached, nil
	}

	fresh, err := fill(ctx)
	if err != nil {
		return fresh, err
	}
	// Best effort; serving the fresh value matters more than caching it.
	_ = SetJSON(ctx, c, key, fresh, ttl)
	return fresh, nil
}
