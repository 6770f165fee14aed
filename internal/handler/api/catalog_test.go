// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/atelieraurora/aurora/internal/model"
)

func seedCatalogFixture(t *testing.T, db *sql.DB) {
	t.Helper()

	res, err := db.Exec("INSERT INTO catalog_categories (name, slug) VALUES ('Decor', 'decor')")
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	categoryID, _ := res.LastInsertId()

	items := []struct {
		name, slug string
		price      int64
		active     bool
	}{
		{"Ceramic Vase", "ceramic-vase", 2500, true},
		{"Wall Mirror", "wall-mirror", 7900, true},
		{"Broken Clock", "broken-clock", 100, false},
	}
	for _, item := range items {
		_, err := db.Exec(
			"INSERT INTO catalog_items (category_id, name, slug, price_cents, active) VALUES (?, ?, ?, ?, ?)",
			categoryID, item.name, item.slug, item.price, item.active)
		if err != nil {
			t.Fatalf("failed to seed item: %v", err)
		}
	}
}

func TestListCatalogItems(t *testing.T) {
	db, h := testSetup(t)
	seedCatalogFixture(t, db)

	t.Run("lists active items", func(t *testing.T) {
		w := executeHandler(h.ListCatalogItems, newGetRequest("/api/v1/catalog/items"))

		assertStatusCode(t, w, http.StatusOK)
		items := unmarshalData[[]model.CatalogItem](t, w.Body.Bytes())
		if len(items) != 2 {
			t.Fatalf("expected 2 active items, got %d", len(items))
		}
		for _, item := range items {
			if item.Slug == "broken-clock" {
				t.Error("inactive item leaked into the listing")
			}
		}
	})

	t.Run("category filter", func(t *testing.T) {
		w := executeHandler(h.ListCatalogItems, newGetRequest("/api/v1/catalog/items?category=decor"))

		assertStatusCode(t, w, http.StatusOK)
		items := unmarshalData[[]model.CatalogItem](t, w.Body.Bytes())
		if len(items) != 2 {
			t.Errorf("expected 2 items for decor, got %d", len(items))
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		w := executeHandler(h.ListCatalogItems, newGetRequest("/api/v1/catalog/items?limit=1"))

		assertStatusCode(t, w, http.StatusOK)
		items := unmarshalData[[]model.CatalogItem](t, w.Body.Bytes())
		if len(items) != 1 {
			t.Errorf("expected 1 item, got %d", len(items))
		}
	})

	t.Run("unknown category is an empty list", func(t *testing.T) {
		w := executeHandler(h.ListCatalogItems, newGetRequest("/api/v1/catalog/items?category=nope"))

		assertStatusCode(t, w, http.StatusOK)
		items := unmarshalData[[]model.CatalogItem](t, w.Body.Bytes())
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})
}
