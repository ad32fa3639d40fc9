// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package query implements the read-only query engine over the content
// store: slug lookups, category/author filtering, category counts,
// free-text search, and related-post ranking. Every operation is a pure
// function of the loaded collections and is safe for concurrent use.
package query

import (
	"github.com/pythonforall/blogapi/internal/model"
	"github.com/pythonforall/blogapi/internal/store"
)

// Engine answers read queries against a loaded content store.
type Engine struct {
	store *store.Store
}

// New creates a query engine over the given store.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Posts returns every post in store order.
func (e *Engine) Posts() []model.Post {
	return e.store.Posts()
}

// PostBySlug returns the post with the given slug, if any.
func (e *Engine) PostBySlug(slug string) (model.Post, bool) {
	for _, p := range e.store.Posts() {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.Post{}, false
}

// PostsByCategory returns posts carrying the given category slug, in
// store order.
func (e *Engine) PostsByCategory(categorySlug string) []model.Post {
	var matched []model.Post
	for _, p := range e.store.Posts() {
		if p.HasCategory(categorySlug) {
			matched = append(matched, p)
		}
	}
	return matched
}

// PostsByAuthor returns posts written by the given author slug, in store
// order.
func (e *Engine) PostsByAuthor(authorSlug string) []model.Post {
	var matched []model.Post
	for _, p := range e.store.Posts() {
		if p.Author.Slug == authorSlug {
			matched = append(matched, p)
		}
	}
	return matched
}

// Authors returns every author in store order.
func (e *Engine) Authors() []model.Author {
	return e.store.Authors()
}

// AuthorBySlug returns the author with the given slug, if any.
func (e *Engine) AuthorBySlug(slug string) (model.Author, bool) {
	for _, a := range e.store.Authors() {
		if a.Slug == slug {
			return a, true
		}
	}
	return model.Author{}, false
}

// CategoryCount is a category together with the number of posts
// referencing it.
type CategoryCount struct {
	model.Category
	Count int `json:"count"`
}

// CategoriesWithCounts returns every known category with its post count.
// Categories no post references are excluded.
func (e *Engine) CategoriesWithCounts() []CategoryCount {
	var result []CategoryCount
	for _, c := range e.store.Categories() {
		count := len(e.PostsByCategory(c.Slug))
		if count == 0 {
			continue
		}
		result = append(result, CategoryCount{Category: c, Count: count})
	}
	return result
}

// CategoryInfo returns a category with its post count. A category that
// exists but has no referencing posts is reported as not found, same as an
// unknown slug.
func (e *Engine) CategoryInfo(slug string) (CategoryCount, bool) {
	for _, c := range e.store.Categories() {
		if c.Slug != slug {
			continue
		}
		count := len(e.PostsByCategory(slug))
		if count == 0 {
			return CategoryCount{}, false
		}
		return CategoryCount{Category: c, Count: count}, true
	}
	return CategoryCount{}, false
}
