// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListAuthors handles GET /api/v1/authors.
func (h *Handler) ListAuthors(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, orEmpty(h.engine.Authors()))
}

// GetAuthor handles GET /api/v1/authors/{slug}.
func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	author, ok := h.engine.AuthorBySlug(slug)
	if !ok {
		WriteNotFound(w, "Author not found")
		return
	}
	WriteJSON(w, http.StatusOK, author)
}

// ListAuthorPosts handles GET /api/v1/authors/{slug}/posts.
// An unknown author yields an empty list, not a 404.
func (h *Handler) ListAuthorPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	WriteJSON(w, http.StatusOK, orEmpty(h.engine.PostsByAuthor(slug)))
}
