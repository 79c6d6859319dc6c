// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheBasics(t *testing.T) {
	c := NewMemoryCache(100, time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(100, time.Minute)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemoryCache(2, time.Minute)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	assert.Equal(t, 2, c.Len())
	// "a" had the earliest expiry and should be the victim.
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(10, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), 0), ErrCacheClosed)
}

func TestTypedHelpers(t *testing.T) {
	c := NewMemoryCache(10, time.Minute)
	defer c.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, SetJSON(ctx, c, "p", payload{Name: "x", Count: 3}, 0))
	got, err := GetJSON[payload](ctx, c, "p")
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)

	calls := 0
	fill := func(context.Context) (payload, error) {
		calls++
		return payload{Name: "filled", Count: calls}, nil
	}

	first, err := GetOrFillJSON(ctx, c, "lazy", 0, fill)
	require.NoError(t, err)
	second, err := GetOrFillJSON(ctx, c, "lazy", 0, fill)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}
