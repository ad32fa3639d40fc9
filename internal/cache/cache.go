// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides response caching for the blog API, with an
// in-memory default and an optional Redis backend for multi-instance
// deployments.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Implementations must be
// safe for concurrent use. Values are opaque bytes; see TypedCache for a
// JSON-typed wrapper.
type Cache interface {
	// Get retrieves a value. Returns ErrMiss when the key is absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Stats holds hit/miss counters for diagnostics.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// StatsProvider is an optional interface for backends that track stats.
type StatsProvider interface {
	Stats() Stats
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)
