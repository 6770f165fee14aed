// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/atelieraurora/aurora/internal/service"
)

// AddSectionRequest is the create-section request body. A missing or
// non-positive position appends to the end.
type AddSectionRequest struct {
	Type     string          `json:"type"`
	Position *int64          `json:"position"`
	Settings json.RawMessage `json:"settings"`
}

// AddSection creates a section on a page.
func (h *Handler) AddSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	var req AddSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settings, ok := parseAttrs(w, req.Settings, "settings")
	if !ok {
		return
	}

	tree, err := h.pages.AddSection(r.Context(), pageID, service.AddSectionInput{
		Type:     req.Type,
		Position: req.Position,
		Settings: settings,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteCreated(w, tree)
}

// UpdateSectionRequest is the update-section request body. Absent
// fields keep their stored values; settings replaces the whole object.
type UpdateSectionRequest struct {
	Type     *string         `json:"type"`
	Settings json.RawMessage `json:"settings"`
}

// UpdateSection merges the provided fields into a section.
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}

	var req UpdateSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settings, ok := parseAttrs(w, req.Settings, "settings")
	if !ok {
		return
	}

	tree, err := h.pages.UpdateSection(r.Context(), pageID, sectionID, service.UpdateSectionInput{
		Type:     req.Type,
		Settings: settings,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}

// DeleteSection removes a section and its components.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}

	if err := h.pages.DeleteSection(r.Context(), pageID, sectionID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteNoContent(w)
}

// ReorderRequest is the reorder request body: either a direction or an
// absolute index.
type ReorderRequest struct {
	Direction string `json:"direction"`
	Index     *int   `json:"index"`
}

// ReorderSection moves a section among its siblings.
func (h *Handler) ReorderSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}

	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tree, err := h.pages.ReorderSection(r.Context(), pageID, sectionID, service.Move{
		Direction: req.Direction,
		Index:     req.Index,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}
