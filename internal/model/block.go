// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
)

// Block types understood by the renderer.
const (
	BlockParagraph   = "paragraph"
	BlockHeading     = "heading"
	BlockCode        = "code"
	BlockList        = "list"
	BlockOrderedList = "ordered-list"
	BlockQuote       = "blockquote"
	BlockMarkdown    = "markdown"
)

// Block is one unit of a post's body: a paragraph, heading, code sample,
// list, quote, or raw markdown.
type Block struct {
	Type     string     `json:"type"`
	Value    BlockValue `json:"value"`
	Language string     `json:"language,omitempty"`
	Level    int        `json:"level,omitempty"`
}

// LooksLikeMarkdown reports whether the block's text carries markdown
// markers (headings or fenced code) and should be rendered as markdown
// regardless of its declared type.
func (b Block) LooksLikeMarkdown() bool {
	return !b.Value.IsList() &&
		(strings.Contains(b.Value.Text, "#") || strings.Contains(b.Value.Text, "```"))
}

// BlockValue holds a block's value, which the source JSON encodes as either
// a single string or an array of strings (for list blocks).
type BlockValue struct {
	Text  string
	Items []string
	list  bool
}

// TextValue returns a BlockValue holding a single string.
func TextValue(s string) BlockValue {
	return BlockValue{Text: s}
}

// ListValue returns a BlockValue holding a sequence of strings.
func ListValue(items ...string) BlockValue {
	return BlockValue{Items: items, list: true}
}

// IsList reports whether the value is a sequence of strings.
func (v BlockValue) IsList() bool {
	return v.list
}

// Strings returns every string the value carries, in order.
func (v BlockValue) Strings() []string {
	if v.list {
		return v.Items
	}
	return []string{v.Text}
}

// Chars returns the total number of characters across all strings.
// Used to estimate reading time for posts that do not declare one.
func (v BlockValue) Chars() int {
	if !v.list {
		return len(v.Text)
	}
	total := 0
	for _, s := range v.Items {
		total += len(s)
	}
	return total
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
// Any other shape decodes to an empty value rather than failing the
// surrounding record; the load-time repair pass deals with the rest.
func (v *BlockValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = BlockValue{Text: s}
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*v = BlockValue{Items: items, list: true}
		return nil
	}

	*v = BlockValue{}
	return nil
}

// MarshalJSON renders the value back in its source shape.
func (v BlockValue) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.Items == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Items)
	}
	return json.Marshal(v.Text)
}
