// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/pythonforall/blogapi/internal/cache"
	"github.com/pythonforall/blogapi/internal/logging"
	"github.com/pythonforall/blogapi/internal/model"
	"github.com/pythonforall/blogapi/internal/query"
	"github.com/pythonforall/blogapi/internal/store"
	"github.com/pythonforall/blogapi/internal/version"
)

var (
	catPython = model.Category{Slug: "python", Name: "Python", Description: "All things Python"}
	catData   = model.Category{Slug: "data-science", Name: "Data Science", Description: "Posts about Data Science"}
	catWeb    = model.Category{Slug: "web", Name: "Web Development", Description: "Posts about Web Development"}

	authorAna = model.Author{Slug: "ana", Name: "Ana Torres", Avatar: "/avatars/ana.jpg", Bio: "Pythonista and educator."}
	authorBen = model.Author{Slug: "ben", Name: "Ben Okafor", Bio: "Data engineer."}
)

func fixturePost(slug string, author model.Author, date string, categories ...model.Category) model.Post {
	return model.Post{
		Slug:       slug,
		Title:      "Title " + slug,
		Excerpt:    "Excerpt " + slug,
		Date:       date,
		CoverImage: "/covers/" + slug + ".jpg",
		Author:     author,
		Categories: categories,
		Content: []model.Block{
			{Type: model.BlockParagraph, Value: model.TextValue("Body of " + slug)},
		},
		ReadingTime: 2,
	}
}

func defaultPosts() []model.Post {
	return []model.Post{
		fixturePost("python-basics", authorAna, "2024-01-10", catPython),
		fixturePost("pandas-intro", authorBen, "2024-02-20", catData, catPython),
		fixturePost("flask-start", authorAna, "2024-03-05", catWeb),
		fixturePost("testing-tips", authorAna, "2024-04-01", catPython),
	}
}

// newTestHandler builds a handler over an in-memory content tree, with a
// memory cache and an event recorder, and returns its mounted router.
func newTestHandler(t *testing.T, posts []model.Post) (*Handler, http.Handler) {
	t.Helper()

	fsys := fstest.MapFS{}
	addFixtures(t, fsys, store.PostsDir, len(posts), func(i int) any { return posts[i] })
	authors := []model.Author{authorAna, authorBen}
	addFixtures(t, fsys, store.AuthorsDir, len(authors), func(i int) any { return authors[i] })
	categories := []model.Category{catPython, catData, catWeb}
	addFixtures(t, fsys, store.CategoriesDir, len(categories), func(i int) any { return categories[i] })

	recorder := logging.NewEventRecorder(slog.NewTextHandler(io.Discard, nil))
	logger := slog.New(recorder)

	s := store.New(fsys, logger)
	mem := cache.NewMemory(cache.MemoryOptions{DefaultTTL: time.Minute, MaxSize: 100})
	t.Cleanup(func() { _ = mem.Close() })

	h := NewHandler(Options{
		Engine:   query.New(s),
		Store:    s,
		Cache:    mem,
		CacheTTL: time.Minute,
		Recorder: recorder,
		Version:  version.Info{Version: "test"},
	})
	return h, h.Routes()
}

func addFixtures(t *testing.T, fsys fstest.MapFS, dir string, n int, record func(int) any) {
	t.Helper()
	for i := 0; i < n; i++ {
		data, err := json.Marshal(record(i))
		if err != nil {
			t.Fatalf("marshaling fixture record: %v", err)
		}
		fsys[fmt.Sprintf("%s/%03d.json", dir, i)] = &fstest.MapFile{Data: data}
	}
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestListPosts(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	posts := decodeBody[[]model.Post](t, rec)
	if len(posts) != 4 {
		t.Fatalf("got %d posts, want 4", len(posts))
	}
	if posts[0].Slug != "python-basics" {
		t.Errorf("first post = %q, want store order", posts[0].Slug)
	}
}

func TestGetPost(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/posts/pandas-intro")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	post := decodeBody[model.Post](t, rec)
	if post.Slug != "pandas-intro" || post.Author.Slug != "ben" {
		t.Errorf("got post %q by %q", post.Slug, post.Author.Slug)
	}
}

func TestGetPostNotFound(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/posts/no-such-post")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody[ErrorResponse](t, rec)
	if body.Error.Code != "not_found" || body.Error.Message != "Post not found" {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestGetRelatedPosts(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	tests := []struct {
		name string
		path string
		want int
	}{
		{"default count", "/posts/python-basics/related", 3},
		{"explicit count", "/posts/python-basics/related?count=1", 1},
		{"non-numeric falls back", "/posts/python-basics/related?count=abc", 3},
		{"zero count", "/posts/python-basics/related?count=0", 0},
		{"negative count", "/posts/python-basics/related?count=-2", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			posts := decodeBody[[]model.Post](t, rec)
			if len(posts) != tt.want {
				t.Errorf("got %d related posts, want %d", len(posts), tt.want)
			}
			for _, p := range posts {
				if p.Slug == "python-basics" {
					t.Error("related posts include the base post")
				}
			}
		})
	}

	rec := doGet(t, router, "/posts/no-such-post/related")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown base post status = %d, want 404", rec.Code)
	}
}

func TestGetPostHTML(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/posts/flask-start/html")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody[PostHTMLResponse](t, rec)
	if body.Slug != "flask-start" {
		t.Errorf("slug = %q", body.Slug)
	}
	if want := "<p>Body of flask-start</p>"; !strings.Contains(body.HTML, want) {
		t.Errorf("html = %q, want it to contain %q", body.HTML, want)
	}

	rec = doGet(t, router, "/posts/no-such-post/html")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown post status = %d, want 404", rec.Code)
	}
}

func TestAuthorEndpoints(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/authors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if authors := decodeBody[[]model.Author](t, rec); len(authors) != 2 {
		t.Errorf("got %d authors, want 2", len(authors))
	}

	rec = doGet(t, router, "/authors/ana")
	author := decodeBody[model.Author](t, rec)
	if rec.Code != http.StatusOK || author.Name != "Ana Torres" {
		t.Errorf("GET /authors/ana = %d %+v", rec.Code, author)
	}

	rec = doGet(t, router, "/authors/nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown author status = %d, want 404", rec.Code)
	}

	// Unknown author posts: empty list, not an error.
	rec = doGet(t, router, "/authors/nobody/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown author posts status = %d, want 200", rec.Code)
	}
	if posts := decodeBody[[]model.Post](t, rec); len(posts) != 0 {
		t.Errorf("got %d posts for unknown author, want 0", len(posts))
	}

	rec = doGet(t, router, "/authors/ana/posts")
	if posts := decodeBody[[]model.Post](t, rec); len(posts) != 3 {
		t.Errorf("got %d posts for ana, want 3", len(posts))
	}
}

func TestCategoryEndpoints(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	rec := doGet(t, router, "/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	counts := decodeBody[[]query.CategoryCount](t, rec)
	bys := make(map[string]int, len(counts))
	for _, cc := range counts {
		bys[cc.Slug] = cc.Count
	}
	if bys["python"] != 3 || bys["data-science"] != 1 || bys["web"] != 1 {
		t.Errorf("category counts = %v", bys)
	}

	rec = doGet(t, router, "/categories/python")
	info := decodeBody[query.CategoryCount](t, rec)
	if rec.Code != http.StatusOK || info.Count != 3 {
		t.Errorf("GET /categories/python = %d %+v", rec.Code, info)
	}

	rec = doGet(t, router, "/categories/no-such-category")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown category status = %d, want 404", rec.Code)
	}

	// Unknown category posts: empty list, not an error.
	rec = doGet(t, router, "/categories/no-such-category/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown category posts status = %d, want 200", rec.Code)
	}
	if posts := decodeBody[[]model.Post](t, rec); len(posts) != 0 {
		t.Errorf("got %d posts for unknown category, want 0", len(posts))
	}

	rec = doGet(t, router, "/categories/python/posts")
	if posts := decodeBody[[]model.Post](t, rec); len(posts) != 3 {
		t.Errorf("got %d python posts, want 3", len(posts))
	}
}

func TestCategoryListCached(t *testing.T) {
	h, router := newTestHandler(t, defaultPosts())

	first := doGet(t, router, "/categories")
	second := doGet(t, router, "/categories")
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached category list differs:\n%s\n%s", first.Body, second.Body)
	}

	if provider, ok := h.cache.(cache.StatsProvider); ok {
		if stats := provider.Stats(); stats.Hits == 0 {
			t.Error("second category request did not hit the cache")
		}
	}
}

func TestSearch(t *testing.T) {
	bare := model.Post{
		Slug:    "bare-post",
		Title:   "Bare Minimum",
		Excerpt: "Nothing optional set.",
		Date:    "2024-05-01",
		Content: []model.Block{
			{Type: model.BlockParagraph, Value: model.TextValue("A searchable body.")},
		},
		Categories: []model.Category{catPython},
	}
	posts := append(defaultPosts(), bare)
	_, router := newTestHandler(t, posts)

	rec := doGet(t, router, "/search?q=pandas")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[SearchResponse](t, rec)
	if resp.Query != "pandas" || resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	got := resp.Results[0]
	if got.Slug != "pandas-intro" {
		t.Errorf("result slug = %q", got.Slug)
	}
	if got.Author == nil || got.Author.Name != "Ben Okafor" {
		t.Errorf("result author = %+v", got.Author)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "Data Science" {
		t.Errorf("result categories = %v, want names", got.Categories)
	}
}

func TestSearchAppliesFallbacks(t *testing.T) {
	bare := model.Post{
		Slug:    "bare-post",
		Title:   "Bare Minimum",
		Excerpt: "Nothing optional set.",
		Date:    "2024-05-01",
		Content: []model.Block{
			{Type: model.BlockParagraph, Value: model.TextValue("A searchable body.")},
		},
	}
	_, router := newTestHandler(t, []model.Post{bare})

	resp := decodeBody[SearchResponse](t, doGet(t, router, "/search?q=bare"))
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	got := resp.Results[0]
	if got.CoverImage != model.DefaultCoverImage {
		t.Errorf("coverImage = %q, want default", got.CoverImage)
	}
	if got.ReadingTime != fallbackReadingTime {
		t.Errorf("readingTime = %d, want %d", got.ReadingTime, fallbackReadingTime)
	}
	if got.Author != nil {
		t.Errorf("author = %+v, want nil", got.Author)
	}
	if got.Categories == nil || len(got.Categories) != 0 {
		t.Errorf("categories = %v, want empty list", got.Categories)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	for _, q := range []string{"", "   "} {
		rec := doGet(t, router, "/search?q="+url.QueryEscape(q))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeBody[SearchResponse](t, rec)
		if resp.Count != 0 || len(resp.Results) != 0 {
			t.Errorf("Search(%q) = %+v, want empty", q, resp)
		}
	}
}

func TestSearchCachePreservesRawQuery(t *testing.T) {
	_, router := newTestHandler(t, defaultPosts())

	first := decodeBody[SearchResponse](t, doGet(t, router, "/search?q=pandas"))
	if first.Count != 1 {
		t.Fatalf("first count = %d", first.Count)
	}

	// Same normalized key, different raw spelling: served from cache but
	// echoing the caller's query.
	second := decodeBody[SearchResponse](t, doGet(t, router, "/search?q=PANDAS"))
	if second.Query != "PANDAS" {
		t.Errorf("cached query echo = %q, want PANDAS", second.Query)
	}
	if second.Count != first.Count {
		t.Errorf("cached count = %d, want %d", second.Count, first.Count)
	}
}

func TestListEvents(t *testing.T) {
	h, router := newTestHandler(t, defaultPosts())

	slog.New(h.recorder).Warn("content warning", "slug", "broken")

	rec := doGet(t, router, "/events")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[EventsResponse](t, rec)
	if resp.Count != 1 || len(resp.Events) != 1 {
		t.Fatalf("events = %+v", resp)
	}
	if resp.Events[0].Message != "content warning" || resp.Events[0].Attrs["slug"] != "broken" {
		t.Errorf("event = %+v", resp.Events[0])
	}
}

func TestListEventsWithoutRecorder(t *testing.T) {
	h, router := newTestHandler(t, defaultPosts())
	h.recorder = nil

	rec := doGet(t, router, "/events")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[EventsResponse](t, rec)
	if resp.Count != 0 || resp.Events == nil {
		t.Errorf("events without recorder = %+v, want empty list", resp)
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, defaultPosts())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	status := decodeBody[HealthStatus](t, rec)
	if status.Status != "ok" || status.Version != "test" {
		t.Errorf("health = %+v", status)
	}
	if status.Store.Posts != 4 || status.Store.Authors != 2 {
		t.Errorf("store stats = %+v", status.Store)
	}
	if status.Cache == nil {
		t.Error("cache stats missing despite a stats-providing cache")
	}
}
