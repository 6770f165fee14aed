// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
)

// AddSectionInput holds the create-section fields. A nil Position
// appends after the current last sibling.
type AddSectionInput struct {
	Type     string
	Position *int64
	Settings model.Attrs
}

// AddSection appends or inserts a section on a page and returns the
// refreshed tree.
func (s *Pages) AddSection(ctx context.Context, pageID int64, in AddSectionInput) (PageTree, error) {
	if in.Type == "" {
		return PageTree{}, NewValidationError("type", "Type is required")
	}

	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		position := int64(0)
		if in.Position != nil {
			position = *in.Position
		}
		if position <= 0 {
			max, err := q.MaxSectionPosition(ctx, pageID)
			if err != nil {
				return fmt.Errorf("finding last section position: %w", err)
			}
			position = max + 1
		}

		settings := in.Settings
		if settings == nil {
			settings = model.Attrs{}
		}

		if _, err := q.CreateSection(ctx, store.CreateSectionParams{
			PageID:    pageID,
			Type:      in.Type,
			Position:  position,
			Settings:  settings,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating section: %w", err)
		}
		return q.TouchPage(ctx, pageID, now)
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}

// UpdateSectionInput holds the update-section fields. Nil pointers keep
// the stored values; Settings replaces the whole object when non-nil.
type UpdateSectionInput struct {
	Type     *string
	Settings model.Attrs
}

// UpdateSection merges the provided fields into a section and returns
// the refreshed tree.
func (s *Pages) UpdateSection(ctx context.Context, pageID, sectionID int64, in UpdateSectionInput) (PageTree, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	section, err := s.requireSection(ctx, pageID, sectionID)
	if err != nil {
		return PageTree{}, err
	}

	if in.Type != nil {
		if *in.Type == "" {
			return PageTree{}, NewValidationError("type", "Type is required")
		}
		section.Type = *in.Type
	}
	if in.Settings != nil {
		section.Settings = in.Settings
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.UpdateSection(ctx, store.UpdateSectionParams{
			ID:        section.ID,
			Type:      section.Type,
			Settings:  section.Settings,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("updating section %d: %w", sectionID, err)
		}
		return q.TouchPage(ctx, pageID, now)
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}

// DeleteSection removes a section (components cascade) and re-ranks the
// remaining siblings so positions stay dense.
func (s *Pages) DeleteSection(ctx context.Context, pageID, sectionID int64) error {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := s.requireSection(ctx, pageID, sectionID); err != nil {
		return err
	}

	err = s.withTx(ctx, func(q *store.Queries) error {
		if err := q.DeleteSection(ctx, sectionID); err != nil {
			return fmt.Errorf("deleting section %d: %w", sectionID, err)
		}
		remaining, err := q.ListSectionsByPage(ctx, pageID)
		if err != nil {
			return fmt.Errorf("loading remaining sections: %w", err)
		}
		for i, sec := range remaining {
			want := int64(i + 1)
			if sec.Position == want {
				continue
			}
			if err := q.UpdateSectionPosition(ctx, sec.ID, want); err != nil {
				return fmt.Errorf("compacting section %d position: %w", sec.ID, err)
			}
		}
		return q.TouchPage(ctx, pageID, time.Now())
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, page.Slug)
	return nil
}
