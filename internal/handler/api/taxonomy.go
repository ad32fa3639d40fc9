// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const categoryListCacheKey = "categories:counts"

// ListCategories handles GET /api/v1/categories.
// Returns every category at least one post references, with its count.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if h.categoryCache != nil {
		if cached, ok := h.categoryCache.Get(r.Context(), categoryListCacheKey); ok {
			WriteJSON(w, http.StatusOK, orEmpty(cached))
			return
		}
	}

	categories := h.engine.CategoriesWithCounts()

	if h.categoryCache != nil {
		_ = h.categoryCache.Set(r.Context(), categoryListCacheKey, categories)
	}

	WriteJSON(w, http.StatusOK, orEmpty(categories))
}

// GetCategory handles GET /api/v1/categories/{slug}.
// A category with zero referencing posts is indistinguishable from an
// unknown one: both answer 404.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	info, ok := h.engine.CategoryInfo(slug)
	if !ok {
		WriteNotFound(w, "Category not found")
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// ListCategoryPosts handles GET /api/v1/categories/{slug}/posts.
// An unknown or empty category yields an empty list, not a 404.
func (h *Handler) ListCategoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	WriteJSON(w, http.StatusOK, orEmpty(h.engine.PostsByCategory(slug)))
}
