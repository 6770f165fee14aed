// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/atelieraurora/aurora/internal/service"
)

// AddComponentRequest is the create-component request body. A missing
// or non-positive position appends to the end of the section.
type AddComponentRequest struct {
	Type     string          `json:"type"`
	Position *int64          `json:"position"`
	Props    json.RawMessage `json:"props"`
}

// AddComponent creates a component in a section.
func (h *Handler) AddComponent(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}

	var req AddComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	props, ok := parseAttrs(w, req.Props, "props")
	if !ok {
		return
	}

	tree, err := h.pages.AddComponent(r.Context(), pageID, sectionID, service.AddComponentInput{
		Type:     req.Type,
		Position: req.Position,
		Props:    props,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteCreated(w, tree)
}

// UpdateComponentRequest is the update-component request body. Absent
// fields keep their stored values; props replaces the whole object.
type UpdateComponentRequest struct {
	Type  *string         `json:"type"`
	Props json.RawMessage `json:"props"`
}

// UpdateComponent merges the provided fields into a component.
func (h *Handler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}
	componentID, ok := requireID(w, r, "componentID")
	if !ok {
		return
	}

	var req UpdateComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	props, ok := parseAttrs(w, req.Props, "props")
	if !ok {
		return
	}

	tree, err := h.pages.UpdateComponent(r.Context(), pageID, sectionID, componentID, service.UpdateComponentInput{
		Type:  req.Type,
		Props: props,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}

// DeleteComponent removes a component.
func (h *Handler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}
	componentID, ok := requireID(w, r, "componentID")
	if !ok {
		return
	}

	if err := h.pages.DeleteComponent(r.Context(), pageID, sectionID, componentID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteNoContent(w)
}

// ReorderComponent moves a component among its section's siblings.
func (h *Handler) ReorderComponent(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	sectionID, ok := requireID(w, r, "sectionID")
	if !ok {
		return
	}
	componentID, ok := requireID(w, r, "componentID")
	if !ok {
		return
	}

	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tree, err := h.pages.ReorderComponent(r.Context(), pageID, sectionID, componentID, service.Move{
		Direction: req.Direction,
		Index:     req.Index,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}
