// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/pythonforall/blogapi/internal/model"
	"github.com/pythonforall/blogapi/internal/util"
)

// errSkipRecord marks a post record that fails validation and must be
// dropped from the collection without aborting the batch load.
var errSkipRecord = errors.New("record rejected")

// rawPost mirrors model.Post but defers the loosely-typed fields to the
// repair pass: content may be a string, an array of blocks, or garbage;
// categories and readingTime may be malformed without sinking the record.
type rawPost struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Excerpt     string          `json:"excerpt"`
	Date        string          `json:"date"`
	CoverImage  string          `json:"coverImage"`
	Author      model.Author    `json:"author"`
	Categories  json.RawMessage `json:"categories"`
	Content     json.RawMessage `json:"content"`
	Featured    bool            `json:"featured"`
	ReadingTime json.RawMessage `json:"readingTime"`
}

// repairPost validates a raw post record and fills in defaults.
// Records without a non-empty title and slug are rejected.
func repairPost(raw rawPost, now time.Time, logger *slog.Logger) (model.Post, error) {
	if raw.Title == "" {
		logger.Warn("dropping post without title", "slug", raw.Slug)
		return model.Post{}, errSkipRecord
	}
	if raw.Slug == "" {
		logger.Warn("dropping post without slug", "title", raw.Title)
		return model.Post{}, errSkipRecord
	}

	post := model.Post{
		Slug:       raw.Slug,
		Title:      raw.Title,
		Excerpt:    raw.Excerpt,
		Date:       raw.Date,
		CoverImage: raw.CoverImage,
		Author:     raw.Author,
		Featured:   raw.Featured,
	}

	if post.Excerpt == "" {
		logger.Warn("post missing excerpt, adding default", "slug", post.Slug)
		post.Excerpt = model.DefaultExcerpt(post.Title)
	}

	if post.Date == "" {
		logger.Warn("post missing date, adding default", "slug", post.Slug)
		post.Date = now.UTC().Format(time.RFC3339)
	}

	post.Categories = repairCategories(raw.Categories, post.Slug, logger)
	post.Content = repairContent(raw.Content, post.Excerpt, post.Slug, logger)
	post.ReadingTime = repairReadingTime(raw.ReadingTime, post)

	return post, nil
}

// repairCategories decodes a post's embedded categories, defaulting to an
// empty sequence on any malformed shape. An entry with a name but no slug
// gets a generated slug so category filtering can still reach it; entries
// with neither are dropped.
func repairCategories(raw json.RawMessage, postSlug string, logger *slog.Logger) []model.Category {
	var categories []model.Category
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &categories); err != nil {
			logger.Warn("post has invalid categories, defaulting to none", "slug", postSlug, "error", err)
			categories = nil
		}
	}

	repaired := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.Slug == "" {
			if c.Name == "" {
				continue
			}
			c.Slug = util.Slugify(c.Name)
			logger.Warn("category missing slug, generated one", "post", postSlug, "category", c.Name, "generated", c.Slug)
			if c.Slug == "" {
				continue
			}
		}
		if c.Description == "" && c.Name != "" {
			c.Description = model.DefaultCategoryDescription(c.Name)
		}
		repaired = append(repaired, c)
	}
	return repaired
}

// repairContent normalizes a post body to a sequence of typed blocks:
//   - a bare string becomes a single markdown block
//   - anything that is not an array becomes one paragraph holding the excerpt
//   - array entries get their type repaired (empty type -> paragraph,
//     markdown-looking text -> markdown)
func repairContent(raw json.RawMessage, excerpt, postSlug string, logger *slog.Logger) []model.Block {
	// A literal null decodes into a string as a no-op, so it must be
	// treated as absent before the string attempt.
	if len(raw) > 0 && string(raw) != "null" {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			logger.Debug("converting string content to markdown block", "slug", postSlug)
			return []model.Block{{Type: model.BlockMarkdown, Value: model.TextValue(text)}}
		}

		var blocks []model.Block
		if err := json.Unmarshal(raw, &blocks); err == nil {
			for i := range blocks {
				if blocks[i].Type == "" {
					blocks[i].Type = model.BlockParagraph
				}
				if blocks[i].Type != model.BlockMarkdown && blocks[i].LooksLikeMarkdown() {
					blocks[i].Type = model.BlockMarkdown
				}
			}
			return blocks
		}
	}

	logger.Warn("post has invalid content structure, substituting excerpt", "slug", postSlug)
	return []model.Block{{Type: model.BlockParagraph, Value: model.TextValue(excerpt)}}
}

// repairReadingTime decodes a declared reading time, deriving one from the
// content length when it is absent or malformed. Derivation assumes
// roughly 1000 characters per minute, with a one-minute floor.
func repairReadingTime(raw json.RawMessage, post model.Post) int {
	if len(raw) > 0 {
		var minutes int
		if err := json.Unmarshal(raw, &minutes); err == nil && minutes > 0 {
			return minutes
		}
	}

	chars := post.ContentChars()
	minutes := (chars + 999) / 1000
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// repairAuthor validates an author record. Authors without a slug are
// unreachable by every query and get dropped.
func repairAuthor(a model.Author, logger *slog.Logger) (model.Author, error) {
	if a.Slug == "" {
		logger.Warn("dropping author without slug", "name", a.Name)
		return model.Author{}, errSkipRecord
	}
	return a, nil
}

// repairCategory validates a category record from the dedicated category
// source and fills the default description.
func repairCategory(c model.Category, logger *slog.Logger) (model.Category, error) {
	if c.Slug == "" {
		logger.Warn("dropping category without slug", "name", c.Name)
		return model.Category{}, errSkipRecord
	}
	if c.Description == "" && c.Name != "" {
		c.Description = model.DefaultCategoryDescription(c.Name)
	}
	return c, nil
}
