// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pythonforall/blogapi/internal/query"
	"github.com/pythonforall/blogapi/internal/render"
)

// ListPosts handles GET /api/v1/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, orEmpty(h.engine.Posts()))
}

// GetPost handles GET /api/v1/posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, ok := h.engine.PostBySlug(slug)
	if !ok {
		WriteNotFound(w, "Post not found")
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// GetRelatedPosts handles GET /api/v1/posts/{slug}/related?count=N.
// The base post must exist; count defaults to 3 and non-numeric values
// fall back to the default. A count of zero or less yields an empty list.
func (h *Handler) GetRelatedPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, ok := h.engine.PostBySlug(slug)
	if !ok {
		WriteNotFound(w, "Post not found")
		return
	}

	count := query.DefaultRelatedCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}

	WriteJSON(w, http.StatusOK, orEmpty(h.engine.Related(post, count)))
}

// PostHTMLResponse carries a post body rendered to sanitized HTML.
type PostHTMLResponse struct {
	Slug string `json:"slug"`
	HTML string `json:"html"`
}

// GetPostHTML handles GET /api/v1/posts/{slug}/html.
func (h *Handler) GetPostHTML(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, ok := h.engine.PostBySlug(slug)
	if !ok {
		WriteNotFound(w, "Post not found")
		return
	}

	html, err := render.Post(post)
	if err != nil {
		slog.Error("failed to render post", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to render post")
		return
	}

	WriteJSON(w, http.StatusOK, PostHTMLResponse{Slug: post.Slug, HTML: html})
}
