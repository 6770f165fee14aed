// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/atelieraurora/aurora/internal/model"
)

// ListVersions returns a page's versions without snapshot bodies,
// newest first.
func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	versions, err := h.pages.ListVersions(r.Context(), pageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if versions == nil {
		versions = []model.PageVersion{}
	}
	WriteSuccess(w, versions, &Meta{Total: int64(len(versions))})
}

// CreateVersionRequest is the create-version request body.
type CreateVersionRequest struct {
	Comment string `json:"comment"`
}

// CreateVersion captures the current page tree as a new version.
func (h *Handler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	var req CreateVersionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	version, err := h.pages.CreateVersion(r.Context(), pageID, req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteCreated(w, version)
}

// DeleteVersion removes a version row.
func (h *Handler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	versionID, ok := requireID(w, r, "versionID")
	if !ok {
		return
	}

	if err := h.pages.DeleteVersion(r.Context(), pageID, versionID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteNoContent(w)
}

// RestoreVersion replaces the page's live tree with a stored snapshot
// and returns the refreshed tree.
func (h *Handler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}
	versionID, ok := requireID(w, r, "versionID")
	if !ok {
		return
	}

	tree, err := h.pages.RestoreVersion(r.Context(), pageID, versionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}
