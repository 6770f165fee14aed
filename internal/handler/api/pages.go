// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelieraurora/aurora/internal/middleware"
	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/service"
)

// parseAttrs unmarshals a raw JSON field into Attrs. A nil raw value
// means the field was absent and returns a nil map. Non-object values
// produce a 422 with the offending field named.
func parseAttrs(w http.ResponseWriter, raw json.RawMessage, field string) (model.Attrs, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	attrs := model.Attrs{}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		WriteValidationError(w, map[string]string{field: "Must be a JSON object"})
		return nil, false
	}
	return attrs, true
}

// ListPages returns all pages without their trees.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.ListPages(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if pages == nil {
		pages = []model.Page{}
	}
	WriteSuccess(w, pages, &Meta{Total: int64(len(pages))})
}

// CreatePageRequest is the create-page request body.
type CreatePageRequest struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// CreatePage creates a page and returns its hydrated tree.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tree, err := h.pages.CreatePage(r.Context(), service.CreatePageInput{
		Title:  req.Title,
		Slug:   req.Slug,
		Status: req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteCreated(w, tree)
}

// GetPage returns the hydrated tree for a page.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	tree, err := h.pages.GetTree(r.Context(), pageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}

// GetPageBySlug returns the hydrated tree for a slug. Drafts are only
// visible with ?preview=true and a valid bearer token.
func (h *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	preview := r.URL.Query().Get("preview") == "true" && middleware.GetUser(r) != nil

	tree, err := h.pages.GetTreeBySlug(r.Context(), slug, preview)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// Draft previews are per-author; keep them out of shared caches.
	if tree.Page.IsDraft() {
		w.Header().Set("Cache-Control", "no-store")
	}
	WriteSuccess(w, tree, nil)
}

// UpdatePageRequest is the update-page request body. Absent fields keep
// their stored values.
type UpdatePageRequest struct {
	Title  *string `json:"title"`
	Slug   *string `json:"slug"`
	Status *string `json:"status"`
}

// UpdatePage merges the provided fields into a page.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tree, err := h.pages.UpdatePage(r.Context(), pageID, service.UpdatePageInput{
		Title:  req.Title,
		Slug:   req.Slug,
		Status: req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tree, nil)
}

// DeletePage removes a page and everything under it.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	if err := h.pages.DeletePage(r.Context(), pageID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteNoContent(w)
}

// DuplicatePage creates a draft copy of a page with its full tree.
func (h *Handler) DuplicatePage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	tree, err := h.pages.DuplicatePage(r.Context(), pageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteCreated(w, tree)
}
