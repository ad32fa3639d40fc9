// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// Category represents a post category.
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultCategoryDescription returns the description used for categories
// that do not declare one.
func DefaultCategoryDescription(name string) string {
	return fmt.Sprintf("Posts about %s", name)
}
