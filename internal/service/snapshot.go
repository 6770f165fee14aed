// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
	"github.com/atelieraurora/aurora/internal/util"
)

// Capture builds a detached snapshot of the current page tree. The
// result shares nothing with live rows; later edits never leak into it.
func (s *Pages) Capture(ctx context.Context, pageID int64) (model.Snapshot, error) {
	tree, err := s.treeByID(ctx, pageID)
	if err != nil {
		return model.Snapshot{}, err
	}

	snap := model.Snapshot{
		Title:    tree.Page.Title,
		Slug:     tree.Page.Slug,
		Status:   tree.Page.Status,
		Sections: make([]model.SnapshotSection, 0, len(tree.Sections)),
	}
	for _, node := range tree.Sections {
		sec := model.SnapshotSection{
			Type:       node.Type,
			Position:   node.Position,
			Settings:   cloneAttrs(node.Settings),
			Components: make([]model.SnapshotComponent, 0, len(node.Components)),
		}
		for _, comp := range node.Components {
			sec.Components = append(sec.Components, model.SnapshotComponent{
				Type:     comp.Type,
				Position: comp.Position,
				Props:    cloneAttrs(comp.Props),
			})
		}
		snap.Sections = append(snap.Sections, sec)
	}
	return snap, nil
}

// cloneAttrs deep-copies an attrs map through JSON. Snapshots must not
// alias live maps.
func cloneAttrs(a model.Attrs) model.Attrs {
	if len(a) == 0 {
		return model.Attrs{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return model.Attrs{}
	}
	clone := model.Attrs{}
	_ = json.Unmarshal(b, &clone)
	return clone
}

// CreateVersion captures the page tree and stores it as a new immutable
// version row.
func (s *Pages) CreateVersion(ctx context.Context, pageID int64, comment string) (model.PageVersion, error) {
	snap, err := s.Capture(ctx, pageID)
	if err != nil {
		return model.PageVersion{}, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return model.PageVersion{}, fmt.Errorf("serializing snapshot: %w", err)
	}

	version, err := s.queries.CreatePageVersion(ctx, store.CreatePageVersionParams{
		PageID:    pageID,
		Snapshot:  string(payload),
		Comment:   util.NullStringFromValue(comment),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.PageVersion{}, fmt.Errorf("creating page version: %w", err)
	}
	return version, nil
}

// ListVersions returns a page's versions, newest first, without
// snapshot bodies.
func (s *Pages) ListVersions(ctx context.Context, pageID int64) ([]model.PageVersion, error) {
	if _, err := s.requirePage(ctx, pageID); err != nil {
		return nil, err
	}
	return s.queries.ListPageVersionsByPage(ctx, pageID)
}

// requireVersion fetches a version and verifies it belongs to the page.
func (s *Pages) requireVersion(ctx context.Context, pageID, versionID int64) (model.PageVersion, error) {
	version, err := s.queries.GetPageVersion(ctx, versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PageVersion{}, ErrNotFound
	}
	if err != nil {
		return model.PageVersion{}, fmt.Errorf("loading version %d: %w", versionID, err)
	}
	if version.PageID != pageID {
		return model.PageVersion{}, ErrNotFound
	}
	return version, nil
}

// DeleteVersion removes a version row. The page itself is untouched.
func (s *Pages) DeleteVersion(ctx context.Context, pageID, versionID int64) error {
	if _, err := s.requirePage(ctx, pageID); err != nil {
		return err
	}
	if _, err := s.requireVersion(ctx, pageID, versionID); err != nil {
		return err
	}
	return s.queries.DeletePageVersion(ctx, versionID)
}

// RestoreVersion replaces a page's live tree with a stored snapshot:
// inside one transaction every current section is dropped (components
// cascade) and the captured sections and components are re-inserted in
// order with fresh IDs. The version row survives and can be replayed
// again. Page metadata (title, slug, status) is not touched; versions
// restore structure.
func (s *Pages) RestoreVersion(ctx context.Context, pageID, versionID int64) (PageTree, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	version, err := s.requireVersion(ctx, pageID, versionID)
	if err != nil {
		return PageTree{}, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(version.Snapshot), &snap); err != nil {
		return PageTree{}, fmt.Errorf("parsing snapshot of version %d: %w", versionID, err)
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		if err := q.DeleteSectionsByPage(ctx, pageID); err != nil {
			return fmt.Errorf("clearing page %d sections: %w", pageID, err)
		}
		for _, sec := range snap.Sections {
			created, err := q.CreateSection(ctx, store.CreateSectionParams{
				PageID:    pageID,
				Type:      sec.Type,
				Position:  sec.Position,
				Settings:  sec.Settings,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("restoring section: %w", err)
			}
			for _, comp := range sec.Components {
				if _, err := q.CreateComponent(ctx, store.CreateComponentParams{
					SectionID: created.ID,
					Type:      comp.Type,
					Position:  comp.Position,
					Props:     comp.Props,
					CreatedAt: now,
					UpdatedAt: now,
				}); err != nil {
					return fmt.Errorf("restoring component: %w", err)
				}
			}
		}
		return q.TouchPage(ctx, pageID, now)
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}
