// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/pythonforall/blogapi/internal/model"
)

// fallbackReadingTime is the reading time reported for summaries of posts
// that somehow lack one.
const fallbackReadingTime = 5

// SearchAuthor is the reduced author projection in search results.
type SearchAuthor struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Avatar string `json:"avatar"`
}

// PostSummary is the reduced post projection returned by search.
type PostSummary struct {
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Date        string        `json:"date"`
	CoverImage  string        `json:"coverImage"`
	ReadingTime int           `json:"readingTime"`
	Categories  []string      `json:"categories"`
	Author      *SearchAuthor `json:"author"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Results []PostSummary `json:"results"`
}

// Search handles GET /api/v1/search?q=...
// A query without a single non-whitespace character matches nothing;
// unknown queries return an empty result set, never an error.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")
	normalized := strings.ToLower(strings.TrimSpace(rawQuery))

	if normalized == "" {
		WriteJSON(w, http.StatusOK, SearchResponse{Query: rawQuery, Results: []PostSummary{}})
		return
	}

	cacheKey := "search:" + normalized
	if h.searchCache != nil {
		if cached, ok := h.searchCache.Get(r.Context(), cacheKey); ok {
			cached.Query = rawQuery
			WriteJSON(w, http.StatusOK, cached)
			return
		}
	}

	matches := h.engine.Search(rawQuery)
	response := SearchResponse{
		Query:   rawQuery,
		Count:   len(matches),
		Results: make([]PostSummary, 0, len(matches)),
	}
	for _, p := range matches {
		response.Results = append(response.Results, summarize(p))
	}

	if h.searchCache != nil {
		_ = h.searchCache.Set(r.Context(), cacheKey, response)
	}

	WriteJSON(w, http.StatusOK, response)
}

// summarize reduces a post to its search projection, applying the shared
// cover image and reading time fallbacks.
func summarize(p model.Post) PostSummary {
	summary := PostSummary{
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Date:        p.Date,
		CoverImage:  p.CoverImage,
		ReadingTime: p.ReadingTime,
		Categories:  make([]string, 0, len(p.Categories)),
	}

	if summary.CoverImage == "" {
		summary.CoverImage = model.DefaultCoverImage
	}
	if summary.ReadingTime == 0 {
		summary.ReadingTime = fallbackReadingTime
	}

	for _, c := range p.Categories {
		summary.Categories = append(summary.Categories, c.Name)
	}

	if p.Author.Name != "" || p.Author.Slug != "" {
		summary.Author = &SearchAuthor{
			Name:   p.Author.Name,
			Slug:   p.Author.Slug,
			Avatar: p.Author.Avatar,
		}
	}

	return summary
}
