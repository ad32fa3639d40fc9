// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON read API over the content query engine.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pythonforall/blogapi/internal/cache"
	"github.com/pythonforall/blogapi/internal/logging"
	"github.com/pythonforall/blogapi/internal/query"
	"github.com/pythonforall/blogapi/internal/store"
	"github.com/pythonforall/blogapi/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	engine   *query.Engine
	store    *store.Store
	cache    cache.Cache
	recorder *logging.EventRecorder

	categoryCache *cache.Typed[[]query.CategoryCount]
	searchCache   *cache.Typed[SearchResponse]

	versionInfo version.Info
	startTime   time.Time
}

// Options configures a Handler.
type Options struct {
	Engine *query.Engine
	Store  *store.Store

	// Cache is optional; without it every request recomputes.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Recorder is optional; without it the events endpoint serves an
	// empty list.
	Recorder *logging.EventRecorder

	Version version.Info
}

// NewHandler creates the API handler.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		engine:      opts.Engine,
		store:       opts.Store,
		cache:       opts.Cache,
		recorder:    opts.Recorder,
		versionInfo: opts.Version,
		startTime:   time.Now(),
	}
	if opts.Cache != nil {
		h.categoryCache = cache.NewTyped[[]query.CategoryCount](opts.Cache, opts.CacheTTL)
		h.searchCache = cache.NewTyped[SearchResponse](opts.Cache, opts.CacheTTL)
	}
	return h
}

// Routes returns the router for the versioned API surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/posts/{slug}/related", h.GetRelatedPosts)
	r.Get("/posts/{slug}/html", h.GetPostHTML)

	r.Get("/authors", h.ListAuthors)
	r.Get("/authors/{slug}", h.GetAuthor)
	r.Get("/authors/{slug}/posts", h.ListAuthorPosts)

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{slug}", h.GetCategory)
	r.Get("/categories/{slug}/posts", h.ListCategoryPosts)

	r.Get("/search", h.Search)
	r.Get("/events", h.ListEvents)

	return r
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// orEmpty guards list responses against encoding nil slices as JSON null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
