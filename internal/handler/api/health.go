// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/pythonforall/blogapi/internal/cache"
	"github.com/pythonforall/blogapi/internal/store"
)

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Version   string       `json:"version"`
	Store     store.Stats  `json:"store"`
	Cache     *cache.Stats `json:"cache,omitempty"`
	System    SystemInfo   `json:"system"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.versionInfo.Version,
		Store:     h.store.Stats(),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
		},
	}

	if provider, ok := h.cache.(cache.StatsProvider); ok {
		stats := provider.Stats()
		status.Cache = &stats
	}

	WriteJSON(w, http.StatusOK, status)
}
