// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts a post's content blocks to sanitized HTML.
// The original site rendered blocks in the browser; this is the
// server-side equivalent for API consumers that want prepared markup.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/pythonforall/blogapi/internal/model"
)

// htmlSanitizer strips dangerous markup from the rendered output. The
// class attribute is kept on code elements so syntax highlighters can see
// the language hint.
var htmlSanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	return p
}()

// Post renders every content block of a post and returns the concatenated,
// sanitized HTML.
func Post(p model.Post) (string, error) {
	var sb strings.Builder
	for _, block := range p.Content {
		rendered, err := renderBlock(block)
		if err != nil {
			return "", fmt.Errorf("rendering %s block in post %q: %w", block.Type, p.Slug, err)
		}
		sb.WriteString(rendered)
	}
	return htmlSanitizer.Sanitize(sb.String()), nil
}

func renderBlock(b model.Block) (string, error) {
	switch b.Type {
	case model.BlockMarkdown:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(b.Value.Text), &buf); err != nil {
			return "", err
		}
		return buf.String(), nil

	case model.BlockHeading:
		level := b.Level
		if level < 1 {
			level = 2
		}
		if level > 6 {
			level = 6
		}
		return fmt.Sprintf("<h%d>%s</h%d>\n", level, html.EscapeString(blockText(b.Value, " ")), level), nil

	case model.BlockCode:
		class := ""
		if b.Language != "" {
			class = fmt.Sprintf(` class="language-%s"`, html.EscapeString(b.Language))
		}
		return fmt.Sprintf("<pre><code%s>%s</code></pre>\n", class, html.EscapeString(blockText(b.Value, "\n"))), nil

	case model.BlockList:
		return renderList("ul", b.Value.Strings()), nil

	case model.BlockOrderedList:
		return renderList("ol", b.Value.Strings()), nil

	case model.BlockQuote:
		return fmt.Sprintf("<blockquote><p>%s</p></blockquote>\n", html.EscapeString(blockText(b.Value, " "))), nil

	default:
		// Unknown types render as paragraphs; the store's repair pass has
		// already mapped untyped blocks there.
		return fmt.Sprintf("<p>%s</p>\n", html.EscapeString(blockText(b.Value, " "))), nil
	}
}

// blockText flattens a value for text-context blocks: list-shaped values
// in a heading or quote still carry content that must not be dropped.
func blockText(v model.BlockValue, sep string) string {
	if v.IsList() {
		return strings.Join(v.Items, sep)
	}
	return v.Text
}

func renderList(tag string, items []string) string {
	var sb strings.Builder
	sb.WriteString("<" + tag + ">\n")
	for _, item := range items {
		sb.WriteString("<li>" + html.EscapeString(item) + "</li>\n")
	}
	sb.WriteString("</" + tag + ">\n")
	return sb.String()
}
