// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"strings"
	"testing"

	"github.com/pythonforall/blogapi/internal/model"
)

func TestSearchEmptyQuery(t *testing.T) {
	e := defaultEngine(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		if got := e.Search(q); len(got) != 0 {
			t.Errorf("Search(%q) returned %d posts, want 0", q, len(got))
		}
	}
}

func TestSearchFieldCoverage(t *testing.T) {
	post := model.Post{
		Slug:    "searchable",
		Title:   "Decorators Explained",
		Excerpt: "A gentle tour of closures.",
		Date:    "2024-01-01",
		Author:  model.Author{Slug: "ana", Name: "Ana Torres", Bio: "Keen on metaprogramming."},
		Categories: []model.Category{
			{Slug: "advanced-python", Name: "Advanced Python", Description: "Deep dives"},
		},
		Content: []model.Block{
			{Type: model.BlockParagraph, Value: model.TextValue("Functions are first-class objects.")},
			{Type: model.BlockList, Value: model.ListValue("wraps", "functools")},
		},
		ReadingTime: 3,
	}
	e := newTestEngine(t, []model.Post{post}, nil, nil)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"title", "decorators", 1},
		{"title mixed case", "DECORATORS", 1},
		{"excerpt", "closures", 1},
		{"content paragraph", "first-class", 1},
		{"content list item", "functools", 1},
		{"category name", "advanced python", 1},
		{"category description", "deep dives", 1},
		{"category slug", "advanced-python", 1},
		{"author name", "torres", 1},
		{"author bio", "metaprogramming", 1},
		{"query with surrounding whitespace", "  closures  ", 1},
		{"garbage", "xyzzy", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Search(tt.query); len(got) != tt.want {
				t.Errorf("Search(%q) returned %d posts, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestSearchStoreOrderAndIdempotence(t *testing.T) {
	e := defaultEngine(t)

	first := e.Search("excerpt")
	second := e.Search("excerpt")

	if len(first) != 3 {
		t.Fatalf("Search(excerpt) returned %d posts, want 3", len(first))
	}
	for i := range first {
		if first[i].Slug != second[i].Slug {
			t.Fatalf("Search is not idempotent at index %d: %s vs %s", i, first[i].Slug, second[i].Slug)
		}
	}

	// Store order, never re-ranked by match strength.
	want := []string{"python-basics", "pandas-intro", "flask-start"}
	for i, p := range first {
		if p.Slug != want[i] {
			t.Errorf("Search order[%d] = %s, want %s", i, p.Slug, want[i])
		}
	}
}

func TestSearchByCategoryNameFindsItsPosts(t *testing.T) {
	e := defaultEngine(t)

	for _, p := range e.Posts() {
		for _, c := range p.Categories {
			results := e.Search(strings.ToLower(c.Name))
			found := false
			for _, r := range results {
				if r.Slug == p.Slug {
					found = true
				}
			}
			if !found {
				t.Errorf("Search(%q) does not include post %q carrying that category", strings.ToLower(c.Name), p.Slug)
			}
		}
	}
}
