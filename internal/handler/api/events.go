// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/atelieraurora/aurora/internal/handler"
	"github.com/atelieraurora/aurora/internal/model"
)

// Event log listing bounds.
const (
	EventsDefaultLimit = 50
	EventsMaxLimit     = 200
)

// ListEvents returns the most recent audit log entries, newest first.
// ?limit= caps the result, clamped to EventsMaxLimit.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := handler.ParseIntQuery(r, "limit", EventsDefaultLimit)
	if limit < 1 {
		limit = EventsDefaultLimit
	}
	if limit > EventsMaxLimit {
		limit = EventsMaxLimit
	}

	events, err := h.queries.ListRecentEvents(r.Context(), int64(limit))
	if err != nil {
		slog.Error("listing events failed", "error", err)
		WriteInternalError(w, "Internal error")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	WriteSuccess(w, events, nil)
}
