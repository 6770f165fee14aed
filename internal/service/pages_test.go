// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelieraurora/aurora/internal/model"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestCreatePage(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	t.Run("derives slug from title", func(t *testing.T) {
		tree, err := svc.CreatePage(ctx, CreatePageInput{Title: "Página Exemplo!!"})
		require.NoError(t, err)
		assert.Equal(t, "pagina-exemplo", tree.Page.Slug)
		assert.Equal(t, model.PageStatusDraft, tree.Page.Status)
		assert.False(t, tree.Page.PublishedAt.Valid)
		assert.Empty(t, tree.Sections)
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		tree, err := svc.CreatePage(ctx, CreatePageInput{Title: "About Us", Slug: "about"})
		require.NoError(t, err)
		assert.Equal(t, "about", tree.Page.Slug)
	})

	t.Run("published page is stamped", func(t *testing.T) {
		tree, err := svc.CreatePage(ctx, CreatePageInput{Title: "Launch", Status: model.PageStatusPublished})
		require.NoError(t, err)
		assert.Equal(t, model.PageStatusPublished, tree.Page.Status)
		assert.True(t, tree.Page.PublishedAt.Valid)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, CreatePageInput{})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields, "title")
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, CreatePageInput{Title: "X", Status: "archived"})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields, "status")
	})

	t.Run("malformed slug", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, CreatePageInput{Title: "X", Slug: "Not A Slug"})
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("slug conflict", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, CreatePageInput{Title: "Also About", Slug: "about"})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestUpdatePage(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	tree, err := svc.CreatePage(ctx, CreatePageInput{Title: "Original", Slug: "original"})
	require.NoError(t, err)
	pageID := tree.Page.ID

	t.Run("partial update keeps other fields", func(t *testing.T) {
		got, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Title: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Page.Title)
		assert.Equal(t, "original", got.Page.Slug)
		assert.Equal(t, model.PageStatusDraft, got.Page.Status)
	})

	t.Run("publishing stamps the timestamp once", func(t *testing.T) {
		published, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Status: strPtr(model.PageStatusPublished)})
		require.NoError(t, err)
		require.True(t, published.Page.PublishedAt.Valid)
		first := published.Page.PublishedAt.Time

		// A title edit on a published page must not touch the stamp.
		again, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Title: strPtr("Renamed Again")})
		require.NoError(t, err)
		assert.True(t, again.Page.PublishedAt.Time.Equal(first))
	})

	t.Run("unpublishing clears the timestamp", func(t *testing.T) {
		got, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Status: strPtr(model.PageStatusDraft)})
		require.NoError(t, err)
		assert.False(t, got.Page.PublishedAt.Valid)
	})

	t.Run("keeping the own slug is allowed", func(t *testing.T) {
		got, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Slug: strPtr("original")})
		require.NoError(t, err)
		assert.Equal(t, "original", got.Page.Slug)
	})

	t.Run("slug conflict with another page", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, CreatePageInput{Title: "Other", Slug: "other"})
		require.NoError(t, err)
		_, err = svc.UpdatePage(ctx, pageID, UpdatePageInput{Slug: strPtr("other")})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.UpdatePage(ctx, pageID, UpdatePageInput{Title: strPtr("")})
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := svc.UpdatePage(ctx, 9999, UpdatePageInput{Title: strPtr("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetTreeBySlug(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	draft, err := svc.CreatePage(ctx, CreatePageInput{Title: "Draft Page"})
	require.NoError(t, err)
	live, err := svc.CreatePage(ctx, CreatePageInput{Title: "Live Page", Status: model.PageStatusPublished})
	require.NoError(t, err)

	t.Run("published page is visible", func(t *testing.T) {
		got, err := svc.GetTreeBySlug(ctx, live.Page.Slug, false)
		require.NoError(t, err)
		assert.Equal(t, live.Page.ID, got.Page.ID)
	})

	t.Run("draft hidden without preview", func(t *testing.T) {
		_, err := svc.GetTreeBySlug(ctx, draft.Page.Slug, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("draft visible with preview", func(t *testing.T) {
		got, err := svc.GetTreeBySlug(ctx, draft.Page.Slug, true)
		require.NoError(t, err)
		assert.Equal(t, draft.Page.ID, got.Page.ID)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := svc.GetTreeBySlug(ctx, "no-such-page", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSectionLifecycle(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	tree, err := svc.CreatePage(ctx, CreatePageInput{Title: "Sections"})
	require.NoError(t, err)
	pageID := tree.Page.ID

	t.Run("append assigns next position", func(t *testing.T) {
		tree, err = svc.AddSection(ctx, pageID, AddSectionInput{Type: "hero"})
		require.NoError(t, err)
		tree, err = svc.AddSection(ctx, pageID, AddSectionInput{Type: "grid"})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, sectionPositions(tree))
	})

	t.Run("nil settings become an empty object", func(t *testing.T) {
		assert.NotNil(t, tree.Sections[0].Settings)
	})

	t.Run("missing type rejected", func(t *testing.T) {
		_, err := svc.AddSection(ctx, pageID, AddSectionInput{})
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("update replaces settings wholesale", func(t *testing.T) {
		sectionID := tree.Sections[0].ID
		tree, err = svc.UpdateSection(ctx, pageID, sectionID, UpdateSectionInput{
			Settings: model.Attrs{"layout": "grid", "columns": 3},
		})
		require.NoError(t, err)
		tree, err = svc.UpdateSection(ctx, pageID, sectionID, UpdateSectionInput{
			Settings: model.Attrs{"layout": "stack"},
		})
		require.NoError(t, err)
		assert.Equal(t, "stack", tree.Sections[0].Settings.String("layout", ""))
		assert.Equal(t, 0, tree.Sections[0].Settings.Int("columns", 0))
	})

	t.Run("delete compacts positions", func(t *testing.T) {
		tree, err = svc.AddSection(ctx, pageID, AddSectionInput{Type: "stack"})
		require.NoError(t, err)
		require.Equal(t, []int64{1, 2, 3}, sectionPositions(tree))

		err = svc.DeleteSection(ctx, pageID, tree.Sections[0].ID)
		require.NoError(t, err)

		tree, err = svc.GetTree(ctx, pageID)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, sectionPositions(tree))
	})

	t.Run("delete via wrong page", func(t *testing.T) {
		other, err := svc.CreatePage(ctx, CreatePageInput{Title: "Other Page"})
		require.NoError(t, err)
		err = svc.DeleteSection(ctx, other.Page.ID, tree.Sections[0].ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	tree := seedTree(t, svc, "Components", map[string][]string{
		"hero": {"heading", "text"},
	}, []string{"hero"})
	pageID := tree.Page.ID
	sectionID := tree.Sections[0].ID

	t.Run("append assigns next position", func(t *testing.T) {
		got, err := svc.AddComponent(ctx, pageID, sectionID, AddComponentInput{Type: "button"})
		require.NoError(t, err)
		components := got.Sections[0].Components
		require.Len(t, components, 3)
		assert.Equal(t, int64(3), components[2].Position)
		assert.Equal(t, "button", components[2].Type)
	})

	t.Run("unknown component types are accepted", func(t *testing.T) {
		got, err := svc.AddComponent(ctx, pageID, sectionID, AddComponentInput{Type: "carousel-v2"})
		require.NoError(t, err)
		assert.Equal(t, "carousel-v2", got.Sections[0].Components[3].Type)
	})

	t.Run("update merges fields", func(t *testing.T) {
		componentID := tree.Sections[0].Components[0].ID
		got, err := svc.UpdateComponent(ctx, pageID, sectionID, componentID, UpdateComponentInput{
			Props: model.Attrs{"text": "Hello", "level": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, "heading", got.Sections[0].Components[0].Type)
		assert.Equal(t, "Hello", got.Sections[0].Components[0].Props.String("text", ""))
	})

	t.Run("delete compacts positions", func(t *testing.T) {
		err := svc.DeleteComponent(ctx, pageID, sectionID, tree.Sections[0].Components[0].ID)
		require.NoError(t, err)

		got, err := svc.GetTree(ctx, pageID)
		require.NoError(t, err)
		for i, c := range got.Sections[0].Components {
			assert.Equal(t, int64(i+1), c.Position)
		}
	})

	t.Run("component via wrong section", func(t *testing.T) {
		got, err := svc.AddSection(ctx, pageID, AddSectionInput{Type: "stack"})
		require.NoError(t, err)
		wrongSection := got.Sections[len(got.Sections)-1].ID
		remaining := got.Sections[0].Components[0].ID
		err = svc.DeleteComponent(ctx, pageID, wrongSection, remaining)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePageCascades(t *testing.T) {
	ctx := context.Background()
	db, svc := newTestPages(t)

	tree := seedTree(t, svc, "Doomed", map[string][]string{
		"hero": {"heading", "text"},
	}, []string{"hero", "grid"})
	_, err := svc.CreateVersion(ctx, tree.Page.ID, "before deletion")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePage(ctx, tree.Page.ID))

	for _, table := range []string{"pages", "page_sections", "page_components", "page_versions"} {
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
		assert.Zero(t, count, "table %s should be empty", table)
	}

	assert.ErrorIs(t, svc.DeletePage(ctx, tree.Page.ID), ErrNotFound)
}

func TestDuplicatePage(t *testing.T) {
	ctx := context.Background()
	_, svc := newTestPages(t)

	source := seedTree(t, svc, "Campaign", map[string][]string{
		"hero": {"heading", "button"},
		"grid": {"text"},
	}, []string{"hero", "grid"})
	source, err := svc.UpdatePage(ctx, source.Page.ID, UpdatePageInput{Status: strPtr(model.PageStatusPublished)})
	require.NoError(t, err)

	copy1, err := svc.DuplicatePage(ctx, source.Page.ID)
	require.NoError(t, err)

	assert.Equal(t, "Campaign (copy)", copy1.Page.Title)
	assert.Equal(t, "campaign-copy", copy1.Page.Slug)
	assert.Equal(t, model.PageStatusDraft, copy1.Page.Status, "copies start as drafts")
	assert.False(t, copy1.Page.PublishedAt.Valid)

	require.Len(t, copy1.Sections, 2)
	assert.Equal(t, sectionTypes(source), sectionTypes(copy1))
	require.Len(t, copy1.Sections[0].Components, 2)
	assert.NotEqual(t, source.Sections[0].ID, copy1.Sections[0].ID, "copies get fresh ids")

	t.Run("repeated copies get numbered slugs", func(t *testing.T) {
		copy2, err := svc.DuplicatePage(ctx, source.Page.ID)
		require.NoError(t, err)
		assert.Equal(t, "campaign-copy-2", copy2.Page.Slug)

		copy3, err := svc.DuplicatePage(ctx, source.Page.ID)
		require.NoError(t, err)
		assert.Equal(t, "campaign-copy-3", copy3.Page.Slug)
	})
}
