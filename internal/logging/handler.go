// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that records WARN and ERROR
// logs into a bounded in-memory event log, so content problems noticed
// during load (dropped records, missing directories) stay inspectable
// over the API after the fact.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of events kept when none is specified.
const DefaultCapacity = 256

// Event is one recorded log entry.
type Event struct {
	ID      string            `json:"id"`
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// eventBuffer is a fixed-size ring of recorded events shared by a handler
// and all handlers derived from it via WithAttrs/WithGroup.
type eventBuffer struct {
	mu       sync.Mutex
	events   []Event
	next     int
	full     bool
	capacity int
}

func (b *eventBuffer) add(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) < b.capacity {
		b.events = append(b.events, e)
		return
	}
	b.events[b.next] = e
	b.next = (b.next + 1) % b.capacity
	b.full = true
}

func (b *eventBuffer) snapshot() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ordered := make([]Event, 0, len(b.events))
	if b.full {
		ordered = append(ordered, b.events[b.next:]...)
		ordered = append(ordered, b.events[:b.next]...)
	} else {
		ordered = append(ordered, b.events...)
	}

	// Newest first.
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	return ordered
}

// EventRecorder is a slog.Handler that forwards every record to an inner
// handler and additionally records entries at or above a minimum level.
type EventRecorder struct {
	inner  slog.Handler
	buffer *eventBuffer
	level  slog.Level
}

// NewEventRecorder wraps inner, recording WARN and above.
func NewEventRecorder(inner slog.Handler) *EventRecorder {
	return NewEventRecorderWithLevel(inner, slog.LevelWarn, DefaultCapacity)
}

// NewEventRecorderWithLevel wraps inner with a custom recording level and
// buffer capacity.
func NewEventRecorderWithLevel(inner slog.Handler, level slog.Level, capacity int) *EventRecorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventRecorder{
		inner:  inner,
		buffer: &eventBuffer{capacity: capacity},
		level:  level,
	}
}

// Events returns the recorded events, newest first.
func (h *EventRecorder) Events() []Event {
	return h.buffer.snapshot()
}

// Enabled implements slog.Handler.
func (h *EventRecorder) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventRecorder) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		attrs := make(map[string]string)
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})
		if len(attrs) == 0 {
			attrs = nil
		}

		h.buffer.add(Event{
			ID:      uuid.NewString(),
			Time:    r.Time,
			Level:   r.Level.String(),
			Message: r.Message,
			Attrs:   attrs,
		})
	}

	return nil
}

// WithAttrs implements slog.Handler. Derived handlers share the buffer.
func (h *EventRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventRecorder{
		inner:  h.inner.WithAttrs(attrs),
		buffer: h.buffer,
		level:  h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventRecorder) WithGroup(name string) slog.Handler {
	return &EventRecorder{
		inner:  h.inner.WithGroup(name),
		buffer: h.buffer,
		level:  h.level,
	}
}
