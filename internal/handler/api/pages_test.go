// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/service"
)

func TestCreatePage(t *testing.T) {
	_, h := testSetup(t)

	t.Run("creates a draft with a derived slug", func(t *testing.T) {
		req := newJSONRequest(t, http.MethodPost, "/api/v1/pages", CreatePageRequest{Title: "Hello World"})
		w := executeHandler(h.CreatePage, req)

		assertStatusCode(t, w, http.StatusCreated)
		tree := unmarshalData[service.PageTree](t, w.Body.Bytes())
		if tree.Page.Slug != "hello-world" {
			t.Errorf("slug = %q, want %q", tree.Page.Slug, "hello-world")
		}
		if tree.Page.Status != model.PageStatusDraft {
			t.Errorf("status = %q, want draft", tree.Page.Status)
		}
		if tree.Sections == nil || len(tree.Sections) != 0 {
			t.Errorf("expected empty sections array, got %v", tree.Sections)
		}
	})

	t.Run("missing title is 422", func(t *testing.T) {
		req := newJSONRequest(t, http.MethodPost, "/api/v1/pages", CreatePageRequest{})
		w := executeHandler(h.CreatePage, req)

		assertStatusCode(t, w, http.StatusUnprocessableEntity)
		resp := assertErrorResponse(t, w, "validation_error")
		if _, ok := resp.Error.Details["title"]; !ok {
			t.Errorf("expected title detail, got %v", resp.Error.Details)
		}
	})

	t.Run("duplicate slug is 409", func(t *testing.T) {
		req := newJSONRequest(t, http.MethodPost, "/api/v1/pages", CreatePageRequest{Title: "Hello Again", Slug: "hello-world"})
		w := executeHandler(h.CreatePage, req)

		assertStatusCode(t, w, http.StatusConflict)
		assertErrorResponse(t, w, "conflict")
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req := newJSONRequest(t, http.MethodPost, "/api/v1/pages", nil)
		req.Body = http.NoBody
		w := executeHandler(h.CreatePage, req)

		assertStatusCode(t, w, http.StatusBadRequest)
	})
}

func TestListPages(t *testing.T) {
	_, h := testSetup(t)

	t.Run("empty list is an array with total zero", func(t *testing.T) {
		w := executeHandler(h.ListPages, newGetRequest("/api/v1/pages"))

		assertStatusCode(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), `"data":[]`) {
			t.Errorf("expected empty array, got %s", w.Body.String())
		}
	})

	t.Run("lists created pages", func(t *testing.T) {
		createTestPage(t, h, "One")
		createTestPage(t, h, "Two")

		w := executeHandler(h.ListPages, newGetRequest("/api/v1/pages"))

		assertStatusCode(t, w, http.StatusOK)
		pages := unmarshalData[[]model.Page](t, w.Body.Bytes())
		if len(pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(pages))
		}
	})
}

func TestGetPage(t *testing.T) {
	_, h := testSetup(t)
	tree := createTestPage(t, h, "Readable")
	tree = addTestSection(t, h, tree.Page.ID, "hero")
	addTestComponent(t, h, tree.Page.ID, tree.Sections[0].ID, "heading")

	t.Run("returns the hydrated tree", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/api/v1/pages/1"), map[string]string{
			"id": fmt.Sprintf("%d", tree.Page.ID),
		})
		w := executeHandler(h.GetPage, req)

		assertStatusCode(t, w, http.StatusOK)
		got := unmarshalData[service.PageTree](t, w.Body.Bytes())
		if len(got.Sections) != 1 {
			t.Fatalf("expected 1 section, got %d", len(got.Sections))
		}
		if len(got.Sections[0].Components) != 1 {
			t.Fatalf("expected 1 component, got %d", len(got.Sections[0].Components))
		}
	})

	t.Run("unknown page is 404", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/api/v1/pages/9999"), map[string]string{"id": "9999"})
		w := executeHandler(h.GetPage, req)

		assertStatusCode(t, w, http.StatusNotFound)
		assertErrorResponse(t, w, "not_found")
	})
}

func TestGetPageBySlug(t *testing.T) {
	db, h := testSetup(t)
	draft := createTestPage(t, h, "Hidden Draft")
	user := createTestUser(t, db, "editor@example.com", "changeme-editor", model.RoleEditor)

	t.Run("draft is hidden from anonymous readers", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/api/v1/pages/slug/hidden-draft"), map[string]string{
			"slug": draft.Page.Slug,
		})
		w := executeHandler(h.GetPageBySlug, req)

		assertStatusCode(t, w, http.StatusNotFound)
	})

	t.Run("preview flag alone is not enough", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/api/v1/pages/slug/hidden-draft?preview=true"), map[string]string{
			"slug": draft.Page.Slug,
		})
		w := executeHandler(h.GetPageBySlug, req)

		assertStatusCode(t, w, http.StatusNotFound)
	})

	t.Run("authenticated preview sees the draft", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/api/v1/pages/slug/hidden-draft?preview=true"), map[string]string{
			"slug": draft.Page.Slug,
		})
		req = requestWithUser(req, &user)
		w := executeHandler(h.GetPageBySlug, req)

		assertStatusCode(t, w, http.StatusOK)
		got := unmarshalData[service.PageTree](t, w.Body.Bytes())
		if got.Page.ID != draft.Page.ID {
			t.Errorf("page ID = %d, want %d", got.Page.ID, draft.Page.ID)
		}
		if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store for a draft preview", cc)
		}
	})

	t.Run("published page reads without the no-store header", func(t *testing.T) {
		status := "published"
		if _, err := h.pages.UpdatePage(context.Background(), draft.Page.ID, service.UpdatePageInput{Status: &status}); err != nil {
			t.Fatalf("failed to publish page: %v", err)
		}

		req := requestWithURLParams(newGetRequest("/api/v1/pages/slug/hidden-draft"), map[string]string{
			"slug": draft.Page.Slug,
		})
		w := executeHandler(h.GetPageBySlug, req)

		assertStatusCode(t, w, http.StatusOK)
		if cc := w.Header().Get("Cache-Control"); cc != "" {
			t.Errorf("Cache-Control = %q, want unset for a published page", cc)
		}
	})
}

func TestUpdatePage(t *testing.T) {
	_, h := testSetup(t)
	tree := createTestPage(t, h, "Mutable")

	pageParams := map[string]string{"id": fmt.Sprintf("%d", tree.Page.ID)}

	t.Run("publishes and stamps", func(t *testing.T) {
		status := model.PageStatusPublished
		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPut, "/api/v1/pages/1", UpdatePageRequest{Status: &status}),
			pageParams)
		w := executeHandler(h.UpdatePage, req)

		assertStatusCode(t, w, http.StatusOK)
		got := unmarshalData[service.PageTree](t, w.Body.Bytes())
		if got.Page.Status != model.PageStatusPublished {
			t.Errorf("status = %q, want published", got.Page.Status)
		}
		if !got.Page.PublishedAt.Valid {
			t.Error("published_at should be set")
		}
	})

	t.Run("invalid status is 422", func(t *testing.T) {
		status := "archived"
		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPut, "/api/v1/pages/1", UpdatePageRequest{Status: &status}),
			pageParams)
		w := executeHandler(h.UpdatePage, req)

		assertStatusCode(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("slug conflict is 409", func(t *testing.T) {
		createTestPage(t, h, "Occupied")
		slug := "occupied"
		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPut, "/api/v1/pages/1", UpdatePageRequest{Slug: &slug}),
			pageParams)
		w := executeHandler(h.UpdatePage, req)

		assertStatusCode(t, w, http.StatusConflict)
	})
}

func TestDeletePage(t *testing.T) {
	_, h := testSetup(t)
	tree := createTestPage(t, h, "Ephemeral")

	req := requestWithURLParams(newDeleteRequest("/api/v1/pages/1"), map[string]string{
		"id": fmt.Sprintf("%d", tree.Page.ID),
	})
	w := executeHandler(h.DeletePage, req)
	assertStatusCode(t, w, http.StatusNoContent)

	// Deleting again is 404.
	w = executeHandler(h.DeletePage, requestWithURLParams(newDeleteRequest("/api/v1/pages/1"), map[string]string{
		"id": fmt.Sprintf("%d", tree.Page.ID),
	}))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestDuplicatePage(t *testing.T) {
	_, h := testSetup(t)
	tree := createTestPage(t, h, "Template")
	tree = addTestSection(t, h, tree.Page.ID, "hero")
	addTestComponent(t, h, tree.Page.ID, tree.Sections[0].ID, "heading")

	req := requestWithURLParams(
		newJSONRequest(t, http.MethodPost, "/api/v1/pages/1/duplicate", nil),
		map[string]string{"id": fmt.Sprintf("%d", tree.Page.ID)})
	w := executeHandler(h.DuplicatePage, req)

	assertStatusCode(t, w, http.StatusCreated)
	got := unmarshalData[service.PageTree](t, w.Body.Bytes())
	if got.Page.Title != "Template (copy)" {
		t.Errorf("title = %q, want %q", got.Page.Title, "Template (copy)")
	}
	if got.Page.ID == tree.Page.ID {
		t.Error("copy should have a new ID")
	}
	if len(got.Sections) != 1 || len(got.Sections[0].Components) != 1 {
		t.Errorf("copy should carry the full tree, got %+v", got.Sections)
	}
}
