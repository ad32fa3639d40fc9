// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"path"
	"strings"
)

// decodeDir reads every *.json file in dir (one record per file, in
// filename order) and decodes each into T. A file that cannot be read or
// parsed is logged and skipped; a missing directory yields an empty slice.
func decodeDir[T any](fsys fs.FS, dir string, logger *slog.Logger) []T {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		logger.Warn("content directory unavailable", "dir", dir, "error", err)
		return nil
	}

	var records []T
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			logger.Warn("skipping unreadable content file", "file", name, "error", err)
			continue
		}

		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			logger.Warn("skipping malformed content file", "file", name, "error", err)
			continue
		}

		records = append(records, record)
	}

	logger.Debug("content directory loaded", "dir", dir, "records", len(records))
	return records
}
