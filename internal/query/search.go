// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"strings"

	"github.com/pythonforall/blogapi/internal/model"
)

// Search returns posts matching the query, in store order. A post matches
// when the lowercased, trimmed query is a substring of its title, excerpt,
// any content block string, any category name/description/slug, or the
// author's name or bio. A query without a single non-whitespace character
// matches nothing.
func (e *Engine) Search(query string) []model.Post {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matched []model.Post
	for _, p := range e.store.Posts() {
		if postMatches(p, q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// postMatches applies case-insensitive substring containment with OR
// semantics across every searchable field. q must already be lowercased
// and trimmed.
func postMatches(p model.Post, q string) bool {
	if contains(p.Title, q) || contains(p.Excerpt, q) {
		return true
	}

	for _, b := range p.Content {
		for _, s := range b.Value.Strings() {
			if contains(s, q) {
				return true
			}
		}
	}

	for _, c := range p.Categories {
		if contains(c.Name, q) || contains(c.Description, q) || contains(c.Slug, q) {
			return true
		}
	}

	return contains(p.Author.Name, q) || contains(p.Author.Bio, q)
}

func contains(s, q string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), q)
}
