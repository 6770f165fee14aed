// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelieraurora/aurora/internal/cache"
	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
	"github.com/atelieraurora/aurora/internal/util"
)

// Pages orchestrates everything around page composition. It owns the
// transaction boundaries; handlers stay thin.
type Pages struct {
	db        *sql.DB
	queries   *store.Queries
	pageCache *cache.PageCache // optional, nil disables caching
}

// NewPages creates the page service. pageCache may be nil.
func NewPages(db *sql.DB, pageCache *cache.PageCache) *Pages {
	return &Pages{
		db:        db,
		queries:   store.New(db),
		pageCache: pageCache,
	}
}

// withTx runs fn inside a transaction with Queries bound to it.
func (s *Pages) withTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(s.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// invalidate drops cached rendered HTML for a slug.
func (s *Pages) invalidate(ctx context.Context, slug string) {
	if s.pageCache != nil {
		s.pageCache.Invalidate(ctx, slug)
	}
}

// requirePage fetches a page, mapping sql.ErrNoRows to ErrNotFound.
func (s *Pages) requirePage(ctx context.Context, id int64) (model.Page, error) {
	page, err := s.queries.GetPage(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Page{}, ErrNotFound
	}
	if err != nil {
		return model.Page{}, fmt.Errorf("loading page %d: %w", id, err)
	}
	return page, nil
}

// requireSection fetches a section and verifies it belongs to the page.
func (s *Pages) requireSection(ctx context.Context, pageID, sectionID int64) (model.Section, error) {
	section, err := s.queries.GetSection(ctx, sectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Section{}, ErrNotFound
	}
	if err != nil {
		return model.Section{}, fmt.Errorf("loading section %d: %w", sectionID, err)
	}
	if section.PageID != pageID {
		return model.Section{}, ErrNotFound
	}
	return section, nil
}

// requireComponent fetches a component and verifies the full ancestry:
// component in section, section in page.
func (s *Pages) requireComponent(ctx context.Context, pageID, sectionID, componentID int64) (model.Component, error) {
	if _, err := s.requireSection(ctx, pageID, sectionID); err != nil {
		return model.Component{}, err
	}
	component, err := s.queries.GetComponent(ctx, componentID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Component{}, ErrNotFound
	}
	if err != nil {
		return model.Component{}, fmt.Errorf("loading component %d: %w", componentID, err)
	}
	if component.SectionID != sectionID {
		return model.Component{}, ErrNotFound
	}
	return component, nil
}

// treeByID reloads and hydrates a page tree.
func (s *Pages) treeByID(ctx context.Context, pageID int64) (PageTree, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	return BuildPageTree(ctx, s.queries, page)
}

// checkSlugFree validates slug format and uniqueness. excludeID ignores
// the page being updated.
func (s *Pages) checkSlugFree(ctx context.Context, slug string, excludeID int64) error {
	if !util.IsValidSlug(slug) {
		return NewValidationError("slug", "Must contain only lowercase letters, numbers and hyphens")
	}
	count, err := s.queries.CountPagesBySlug(ctx, store.CountPagesBySlugParams{Slug: slug, ExcludeID: excludeID})
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

// ListPages returns all pages, most recently updated first.
func (s *Pages) ListPages(ctx context.Context) ([]model.Page, error) {
	return s.queries.ListPages(ctx)
}

// GetTree returns the hydrated tree for a page.
func (s *Pages) GetTree(ctx context.Context, pageID int64) (PageTree, error) {
	return s.treeByID(ctx, pageID)
}

// GetTreeBySlug returns the hydrated tree for a slug. Unless
// includeDrafts is set, drafts are reported as absent.
func (s *Pages) GetTreeBySlug(ctx context.Context, slug string, includeDrafts bool) (PageTree, error) {
	page, err := s.queries.GetPageBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return PageTree{}, ErrNotFound
	}
	if err != nil {
		return PageTree{}, fmt.Errorf("loading page %q: %w", slug, err)
	}
	if !includeDrafts && !page.IsPublished() {
		return PageTree{}, ErrNotFound
	}
	return BuildPageTree(ctx, s.queries, page)
}

// CreatePageInput holds the create-page fields. An empty Slug derives
// one from the title.
type CreatePageInput struct {
	Title  string
	Slug   string
	Status string
}

// CreatePage creates a page and returns its (empty) tree.
func (s *Pages) CreatePage(ctx context.Context, in CreatePageInput) (PageTree, error) {
	if in.Title == "" {
		return PageTree{}, NewValidationError("title", "Title is required")
	}

	status := in.Status
	if status == "" {
		status = model.PageStatusDraft
	}
	if status != model.PageStatusDraft && status != model.PageStatusPublished {
		return PageTree{}, NewValidationError("status", "Must be \"draft\" or \"published\"")
	}

	slug := in.Slug
	if slug == "" {
		slug = util.SlugifyWithFallback(in.Title)
	}
	if err := s.checkSlugFree(ctx, slug, 0); err != nil {
		return PageTree{}, err
	}

	now := time.Now()
	publishedAt := sql.NullTime{}
	if status == model.PageStatusPublished {
		publishedAt = util.NullTimeFromValue(now)
	}

	page, err := s.queries.CreatePage(ctx, store.CreatePageParams{
		Title:       in.Title,
		Slug:        slug,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return PageTree{}, fmt.Errorf("creating page: %w", err)
	}

	return BuildPageTree(ctx, s.queries, page)
}

// UpdatePageInput holds the update-page fields. Nil pointers keep the
// stored values.
type UpdatePageInput struct {
	Title  *string
	Slug   *string
	Status *string
}

// UpdatePage merges the provided fields into a page and returns the
// refreshed tree. Publishing stamps published_at once; republishing a
// published page keeps the original timestamp; unpublishing clears it.
func (s *Pages) UpdatePage(ctx context.Context, pageID int64, in UpdatePageInput) (PageTree, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	oldSlug := page.Slug

	if in.Title != nil {
		if *in.Title == "" {
			return PageTree{}, NewValidationError("title", "Title is required")
		}
		page.Title = *in.Title
	}

	if in.Slug != nil && *in.Slug != page.Slug {
		if err := s.checkSlugFree(ctx, *in.Slug, page.ID); err != nil {
			return PageTree{}, err
		}
		page.Slug = *in.Slug
	}

	now := time.Now()
	if in.Status != nil && *in.Status != page.Status {
		switch *in.Status {
		case model.PageStatusPublished:
			if !page.PublishedAt.Valid {
				page.PublishedAt = util.NullTimeFromValue(now)
			}
		case model.PageStatusDraft:
			page.PublishedAt = sql.NullTime{}
		default:
			return PageTree{}, NewValidationError("status", "Must be \"draft\" or \"published\"")
		}
		page.Status = *in.Status
	}

	updated, err := s.queries.UpdatePage(ctx, store.UpdatePageParams{
		ID:          page.ID,
		Title:       page.Title,
		Slug:        page.Slug,
		Status:      page.Status,
		PublishedAt: page.PublishedAt,
		UpdatedAt:   now,
	})
	if err != nil {
		return PageTree{}, fmt.Errorf("updating page %d: %w", pageID, err)
	}

	s.invalidate(ctx, oldSlug)
	if updated.Slug != oldSlug {
		s.invalidate(ctx, updated.Slug)
	}
	return BuildPageTree(ctx, s.queries, updated)
}

// DeletePage removes a page; sections, components and versions cascade.
func (s *Pages) DeletePage(ctx context.Context, pageID int64) error {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.queries.DeletePage(ctx, pageID); err != nil {
		return fmt.Errorf("deleting page %d: %w", pageID, err)
	}
	s.invalidate(ctx, page.Slug)
	return nil
}

// DuplicatePage creates a draft copy of a page with a fresh slug and
// replays its sections and components in order. The replay is a series
// of independent creates, not one transaction: a mid-way failure leaves
// a partial copy behind for the author to delete.
func (s *Pages) DuplicatePage(ctx context.Context, pageID int64) (PageTree, error) {
	source, err := s.treeByID(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}

	title := source.Page.Title + " (copy)"
	slug := util.SlugifyWithFallback(title)
	for i := 2; ; i++ {
		err := s.checkSlugFree(ctx, slug, 0)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrSlugTaken) {
			return PageTree{}, err
		}
		slug = fmt.Sprintf("%s-%d", util.SlugifyWithFallback(title), i)
	}

	now := time.Now()
	copyPage, err := s.queries.CreatePage(ctx, store.CreatePageParams{
		Title:     title,
		Slug:      slug,
		Status:    model.PageStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return PageTree{}, fmt.Errorf("creating page copy: %w", err)
	}

	for _, node := range source.Sections {
		section, err := s.queries.CreateSection(ctx, store.CreateSectionParams{
			PageID:    copyPage.ID,
			Type:      node.Type,
			Position:  node.Position,
			Settings:  node.Settings,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			slog.Warn("page duplication left a partial copy",
				"source_id", pageID, "copy_id", copyPage.ID, "error", err)
			return PageTree{}, fmt.Errorf("copying section: %w", err)
		}
		for _, comp := range node.Components {
			if _, err := s.queries.CreateComponent(ctx, store.CreateComponentParams{
				SectionID: section.ID,
				Type:      comp.Type,
				Position:  comp.Position,
				Props:     comp.Props,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				slog.Warn("page duplication left a partial copy",
					"source_id", pageID, "copy_id", copyPage.ID, "error", err)
				return PageTree{}, fmt.Errorf("copying component: %w", err)
			}
		}
	}

	return BuildPageTree(ctx, s.queries, copyPage)
}
