// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/atelieraurora/aurora/internal/handler"
	"github.com/atelieraurora/aurora/internal/service"
)

// ListCatalogItems returns active catalog items, optionally filtered by
// ?category=<slug> and capped by ?limit=N.
func (h *Handler) ListCatalogItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit := handler.ParseIntQuery(r, "limit", service.CatalogDefaultLimit)

	items, err := h.catalog.ListItems(r.Context(), category, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, items, &Meta{Total: int64(len(items))})
}
