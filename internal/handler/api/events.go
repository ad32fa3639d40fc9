// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/pythonforall/blogapi/internal/logging"
)

// EventsResponse is the payload for GET /events.
type EventsResponse struct {
	Count  int             `json:"count"`
	Events []logging.Event `json:"events"`
}

// ListEvents handles GET /events, returning recorded log events newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, _ *http.Request) {
	var events []logging.Event
	if h.recorder != nil {
		events = h.recorder.Events()
	}

	WriteJSON(w, http.StatusOK, EventsResponse{
		Count:  len(events),
		Events: orEmpty(events),
	})
}
