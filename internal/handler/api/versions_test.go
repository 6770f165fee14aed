// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/service"
)

func versionParams(pageID, versionID int64) map[string]string {
	params := pageParams(pageID)
	params["versionID"] = fmt.Sprintf("%d", versionID)
	return params
}

func TestVersionHandlers(t *testing.T) {
	_, h := testSetup(t)
	tree := createTestPage(t, h, "Versioned")
	tree = addTestSection(t, h, tree.Page.ID, "hero")
	tree = addTestComponent(t, h, tree.Page.ID, tree.Sections[0].ID, "heading")
	pageID := tree.Page.ID

	var versionID int64

	t.Run("create", func(t *testing.T) {
		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPost, "/versions", CreateVersionRequest{Comment: "baseline"}),
			pageParams(pageID))
		w := executeHandler(h.CreateVersion, req)

		assertStatusCode(t, w, http.StatusCreated)
		version := unmarshalData[model.PageVersion](t, w.Body.Bytes())
		if version.PageID != pageID {
			t.Errorf("page_id = %d, want %d", version.PageID, pageID)
		}
		versionID = version.ID
	})

	t.Run("list hides snapshot bodies", func(t *testing.T) {
		req := requestWithURLParams(newGetRequest("/versions"), pageParams(pageID))
		w := executeHandler(h.ListVersions, req)

		assertStatusCode(t, w, http.StatusOK)
		versions := unmarshalData[[]model.PageVersion](t, w.Body.Bytes())
		if len(versions) != 1 {
			t.Fatalf("expected 1 version, got %d", len(versions))
		}
	})

	t.Run("restore replays the snapshot", func(t *testing.T) {
		// Wreck the live tree first.
		if err := h.pages.DeleteSection(context.Background(), pageID, tree.Sections[0].ID); err != nil {
			t.Fatalf("failed to delete section: %v", err)
		}

		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPost, "/restore", nil),
			versionParams(pageID, versionID))
		w := executeHandler(h.RestoreVersion, req)

		assertStatusCode(t, w, http.StatusOK)
		got := unmarshalData[service.PageTree](t, w.Body.Bytes())
		if len(got.Sections) != 1 || got.Sections[0].Type != "hero" {
			t.Fatalf("restore did not bring the tree back: %+v", got.Sections)
		}
		if len(got.Sections[0].Components) != 1 {
			t.Errorf("expected 1 restored component, got %d", len(got.Sections[0].Components))
		}
	})

	t.Run("version of another page is 404", func(t *testing.T) {
		other := createTestPage(t, h, "Other")
		req := requestWithURLParams(
			newJSONRequest(t, http.MethodPost, "/restore", nil),
			versionParams(other.Page.ID, versionID))
		w := executeHandler(h.RestoreVersion, req)

		assertStatusCode(t, w, http.StatusNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		req := requestWithURLParams(newDeleteRequest("/versions/1"), versionParams(pageID, versionID))
		w := executeHandler(h.DeleteVersion, req)
		assertStatusCode(t, w, http.StatusNoContent)

		w = executeHandler(h.DeleteVersion,
			requestWithURLParams(newDeleteRequest("/versions/1"), versionParams(pageID, versionID)))
		assertStatusCode(t, w, http.StatusNotFound)
	})
}
