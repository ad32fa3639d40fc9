// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "time"

// Config selects and configures a cache backend.
type Config struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	// DefaultTTL applies when Set receives a zero TTL.
	DefaultTTL time.Duration

	// MaxSize caps the in-memory backend's entry count (0 = unlimited).
	MaxSize int
}

// New creates a cache from the config: Redis when a URL is set, otherwise
// in-memory.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		return NewRedis(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	}

	return NewMemory(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	}), nil
}
