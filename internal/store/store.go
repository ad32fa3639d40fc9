// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the content store: an in-memory, read-only
// snapshot of all posts, authors, and categories loaded from per-record
// JSON documents on disk. The load runs once per Store and is safe to
// trigger from concurrent first callers; after that every accessor is a
// lock-free read of immutable data.
package store

import (
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/pythonforall/blogapi/internal/model"
)

// Content source directories, relative to the data root.
const (
	PostsDir      = "blog"
	AuthorsDir    = "authors"
	CategoriesDir = "categories"
)

// Store holds the loaded content collections. The zero value is not
// usable; construct with New or NewFromDir.
type Store struct {
	fsys   fs.FS
	logger *slog.Logger

	once sync.Once

	posts      []model.Post
	authors    []model.Author
	categories []model.Category
	derived    bool
	loadedAt   time.Time
}

// New creates a Store reading from the given filesystem. Nothing is
// loaded until Load or the first accessor call.
func New(fsys fs.FS, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fsys: fsys, logger: logger}
}

// NewFromDir creates a Store reading from a directory on the OS filesystem.
func NewFromDir(dir string, logger *slog.Logger) *Store {
	return New(os.DirFS(dir), logger)
}

// Load reads and repairs all three collections. It is idempotent:
// concurrent and repeated calls converge on a single loaded snapshot.
func (s *Store) Load() {
	s.once.Do(s.load)
}

func (s *Store) load() {
	now := time.Now()

	rawPosts := decodeDir[rawPost](s.fsys, PostsDir, s.logger)
	s.posts = make([]model.Post, 0, len(rawPosts))
	for _, raw := range rawPosts {
		post, err := repairPost(raw, now, s.logger)
		if err != nil {
			continue
		}
		s.posts = append(s.posts, post)
	}

	rawAuthors := decodeDir[model.Author](s.fsys, AuthorsDir, s.logger)
	s.authors = make([]model.Author, 0, len(rawAuthors))
	for _, raw := range rawAuthors {
		author, err := repairAuthor(raw, s.logger)
		if err != nil {
			continue
		}
		s.authors = append(s.authors, author)
	}

	s.categories, s.derived = s.loadCategories()
	s.loadedAt = now

	s.logger.Info("content store loaded",
		"posts", len(s.posts),
		"authors", len(s.authors),
		"categories", len(s.categories),
		"categories_derived", s.derived,
	)
}

// loadCategories applies the dual derivation policy: a dedicated category
// source with at least one valid record wins; otherwise categories are
// collected from the posts' embedded snapshots, deduplicated by slug
// (first occurrence wins) and sorted alphabetically by name.
func (s *Store) loadCategories() ([]model.Category, bool) {
	rawCategories := decodeDir[model.Category](s.fsys, CategoriesDir, s.logger)
	categories := make([]model.Category, 0, len(rawCategories))
	for _, raw := range rawCategories {
		category, err := repairCategory(raw, s.logger)
		if err != nil {
			continue
		}
		categories = append(categories, category)
	}
	if len(categories) > 0 {
		return categories, false
	}

	s.logger.Info("no dedicated category source, deriving categories from posts")

	seen := make(map[string]bool)
	var derived []model.Category
	for _, post := range s.posts {
		for _, c := range post.Categories {
			if c.Slug == "" || seen[c.Slug] {
				continue
			}
			seen[c.Slug] = true
			if c.Description == "" {
				c.Description = model.DefaultCategoryDescription(c.Name)
			}
			derived = append(derived, c)
		}
	}

	sort.SliceStable(derived, func(i, j int) bool {
		return derived[i].Name < derived[j].Name
	})
	return derived, true
}

// Posts returns all loaded posts in store order, loading on first access.
// Callers must not mutate the returned slice.
func (s *Store) Posts() []model.Post {
	s.Load()
	return s.posts
}

// Authors returns all loaded authors in store order.
func (s *Store) Authors() []model.Author {
	s.Load()
	return s.authors
}

// Categories returns all known categories: the dedicated source in source
// order, or categories derived from posts in alphabetical name order.
func (s *Store) Categories() []model.Category {
	s.Load()
	return s.categories
}

// CategoriesDerived reports whether the categories were derived by
// scanning posts rather than loaded from a dedicated source.
func (s *Store) CategoriesDerived() bool {
	s.Load()
	return s.derived
}

// Stats summarizes the loaded snapshot for diagnostics.
type Stats struct {
	Posts             int       `json:"posts"`
	Authors           int       `json:"authors"`
	Categories        int       `json:"categories"`
	CategoriesDerived bool      `json:"categories_derived"`
	LoadedAt          time.Time `json:"loaded_at"`
}

// Stats returns counts for the loaded collections.
func (s *Store) Stats() Stats {
	s.Load()
	return Stats{
		Posts:             len(s.posts),
		Authors:           len(s.authors),
		Categories:        len(s.categories),
		CategoriesDerived: s.derived,
		LoadedAt:          s.loadedAt,
	}
}
