// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"time"
)

// DefaultCoverImage is the shared fallback cover image used whenever a post
// does not carry one of its own.
const DefaultCoverImage = "https://images.pexels.com/photos/669615/pexels-photo-669615.jpeg"

// Post represents a single blog post. Author and Categories are snapshots
// embedded at load time, not references into the author/category
// collections.
type Post struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Date        string     `json:"date"`
	CoverImage  string     `json:"coverImage"`
	Author      Author     `json:"author"`
	Categories  []Category `json:"categories"`
	Content     []Block    `json:"content"`
	Featured    bool       `json:"featured,omitempty"`
	ReadingTime int        `json:"readingTime"`
}

// HasCategory reports whether the post carries a category with the given slug.
func (p Post) HasCategory(slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// SharesCategory reports whether the post shares at least one category slug
// with other.
func (p Post) SharesCategory(other Post) bool {
	for _, c := range other.Categories {
		if p.HasCategory(c.Slug) {
			return true
		}
	}
	return false
}

// ContentChars returns the total number of characters across all content
// block values.
func (p Post) ContentChars() int {
	total := 0
	for _, b := range p.Content {
		total += b.Value.Chars()
	}
	return total
}

// DefaultExcerpt returns the excerpt used for posts that do not declare one.
func DefaultExcerpt(title string) string {
	return fmt.Sprintf("Article about %s", title)
}

// dateLayouts are the accepted post date formats, tried in order.
// ISO-8601 variants first, then a couple of generic fallbacks.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// ParseDate parses a post date string. The second return value is false
// when the string matches none of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
