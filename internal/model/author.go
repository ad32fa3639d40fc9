// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities served by the blog API:
// posts, authors, categories, and the content blocks a post body is
// composed of. All entities are immutable after the content store loads
// them; there is no write path.
package model

// Author represents a blog author.
type Author struct {
	Slug   string            `json:"slug"`
	Name   string            `json:"name"`
	Title  string            `json:"title"`
	Bio    string            `json:"bio"`
	Avatar string            `json:"avatar"`
	Social map[string]string `json:"social,omitempty"`
}
