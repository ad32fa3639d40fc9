// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"sort"

	"github.com/pythonforall/blogapi/internal/model"
)

// DefaultRelatedCount is the number of related posts returned when the
// caller does not ask for a specific count.
const DefaultRelatedCount = 3

// Related assembles up to count posts related to the given post, filling
// from three prioritized tiers:
//
//  1. posts sharing at least one category slug, in store order; when this
//     tier alone satisfies count, the later tiers are never consulted
//  2. posts by the same author not already selected, in store order
//  3. remaining posts sorted by date descending, most recent first
//
// The subject post is never included. A post without a slug yields no
// results. Posts whose date parses under no accepted layout sort last
// within the recency tier, keeping store order among themselves.
func (e *Engine) Related(post model.Post, count int) []model.Post {
	if post.Slug == "" || count <= 0 {
		return nil
	}

	posts := e.store.Posts()
	selected := make(map[string]bool, count)

	var related []model.Post
	for _, p := range posts {
		if p.Slug == post.Slug || !p.SharesCategory(post) {
			continue
		}
		related = append(related, p)
		selected[p.Slug] = true
	}
	if len(related) >= count {
		return related[:count]
	}

	for _, p := range posts {
		if p.Slug == post.Slug || selected[p.Slug] || p.Author.Slug != post.Author.Slug {
			continue
		}
		related = append(related, p)
		selected[p.Slug] = true
	}
	if len(related) >= count {
		return related[:count]
	}

	var rest []model.Post
	for _, p := range posts {
		if p.Slug == post.Slug || selected[p.Slug] {
			continue
		}
		rest = append(rest, p)
	}
	sortByDateDesc(rest)

	related = append(related, rest...)
	if len(related) > count {
		related = related[:count]
	}
	return related
}

// sortByDateDesc orders posts most recent first. Unparseable dates sort
// after every valid date; the sort is stable, so ties and invalid dates
// keep store order.
func sortByDateDesc(posts []model.Post) {
	type dated struct {
		post  model.Post
		when  int64
		valid bool
	}

	entries := make([]dated, len(posts))
	for i, p := range posts {
		when, ok := model.ParseDate(p.Date)
		entries[i] = dated{post: p, valid: ok}
		if ok {
			entries[i].when = when.UnixNano()
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].valid != entries[j].valid {
			return entries[i].valid
		}
		return entries[i].when > entries[j].when
	})

	for i, entry := range entries {
		posts[i] = entry.post
	}
}
