// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/require"

	"github.com/atelieraurora/aurora/internal/model"
)

// testDB creates an in-memory SQLite database with the page tables.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'draft',
			published_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 1,
			settings TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_components (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			section_id INTEGER NOT NULL REFERENCES page_sections(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 1,
			props TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			snapshot TEXT NOT NULL,
			comment TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE catalog_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE catalog_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL REFERENCES catalog_categories(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			price_cents INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// newTestPages creates a test database and a Pages service without caching.
func newTestPages(t *testing.T) (*sql.DB, *Pages) {
	t.Helper()
	db := testDB(t)
	return db, NewPages(db, nil)
}

// seedTree creates a page with the named section types, each holding
// the given component types, and returns the hydrated tree.
func seedTree(t *testing.T, svc *Pages, title string, sections map[string][]string, order []string) PageTree {
	t.Helper()
	ctx := context.Background()

	tree, err := svc.CreatePage(ctx, CreatePageInput{Title: title})
	require.NoError(t, err)

	for _, sectionType := range order {
		tree, err = svc.AddSection(ctx, tree.Page.ID, AddSectionInput{Type: sectionType})
		require.NoError(t, err)
		sectionID := tree.Sections[len(tree.Sections)-1].ID
		for _, componentType := range sections[sectionType] {
			tree, err = svc.AddComponent(ctx, tree.Page.ID, sectionID, AddComponentInput{
				Type:  componentType,
				Props: model.Attrs{"text": componentType},
			})
			require.NoError(t, err)
		}
	}
	return tree
}

// sectionTypes lists a tree's section types in order.
func sectionTypes(tree PageTree) []string {
	types := make([]string, len(tree.Sections))
	for i, s := range tree.Sections {
		types[i] = s.Type
	}
	return types
}

// sectionPositions lists a tree's section positions in order.
func sectionPositions(tree PageTree) []int64 {
	positions := make([]int64, len(tree.Sections))
	for i, s := range tree.Sections {
		positions[i] = s.Position
	}
	return positions
}
