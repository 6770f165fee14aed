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

// AddComponentInput holds the create-component fields. A nil Position
// appends after the current last sibling.
type AddComponentInput struct {
	Type     string
	Position *int64
	Props    model.Attrs
}

// AddComponent appends or inserts a component in a section and returns
// the refreshed tree. The section must belong to the page.
func (s *Pages) AddComponent(ctx context.Context, pageID, sectionID int64, in AddComponentInput) (PageTree, error) {
	if in.Type == "" {
		return PageTree{}, NewValidationError("type", "Type is required")
	}

	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	if _, err := s.requireSection(ctx, pageID, sectionID); err != nil {
		return PageTree{}, err
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		position := int64(0)
		if in.Position != nil {
			position = *in.Position
		}
		if position <= 0 {
			max, err := q.MaxComponentPosition(ctx, sectionID)
			if err != nil {
				return fmt.Errorf("finding last component position: %w", err)
			}
			position = max + 1
		}

		props := in.Props
		if props == nil {
			props = model.Attrs{}
		}

		if _, err := q.CreateComponent(ctx, store.CreateComponentParams{
			SectionID: sectionID,
			Type:      in.Type,
			Position:  position,
			Props:     props,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating component: %w", err)
		}
		return q.TouchPage(ctx, pageID, now)
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}

// UpdateComponentInput holds the update-component fields. Nil pointers
// keep the stored values; Props replaces the whole object when non-nil.
type UpdateComponentInput struct {
	Type  *string
	Props model.Attrs
}

// UpdateComponent merges the provided fields into a component and
// returns the refreshed tree.
func (s *Pages) UpdateComponent(ctx context.Context, pageID, sectionID, componentID int64, in UpdateComponentInput) (PageTree, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	component, err := s.requireComponent(ctx, pageID, sectionID, componentID)
	if err != nil {
		return PageTree{}, err
	}

	if in.Type != nil {
		if *in.Type == "" {
			return PageTree{}, NewValidationError("type", "Type is required")
		}
		component.Type = *in.Type
	}
	if in.Props != nil {
		component.Props = in.Props
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.UpdateComponent(ctx, store.UpdateComponentParams{
			ID:        component.ID,
			Type:      component.Type,
			Props:     component.Props,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("updating component %d: %w", componentID, err)
		}
		return q.TouchPage(ctx, pageID, now)
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}

// DeleteComponent removes a component and re-ranks the remaining
// siblings so positions stay dense.
func (s *Pages) DeleteComponent(ctx context.Context, pageID, sectionID, componentID int64) error {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := s.requireComponent(ctx, pageID, sectionID, componentID); err != nil {
		return err
	}

	err = s.withTx(ctx, func(q *store.Queries) error {
		if err := q.DeleteComponent(ctx, componentID); err != nil {
			return fmt.Errorf("deleting component %d: %w", componentID, err)
		}
		remaining, err := q.ListComponentsBySection(ctx, sectionID)
		if err != nil {
			return fmt.Errorf("loading remaining components: %w", err)
		}
		for i, c := range remaining {
			want := int64(i + 1)
			if c.Position == want {
				continue
			}
			if err := q.UpdateComponentPosition(ctx, c.ID, want); err != nil {
				return fmt.Errorf("compacting component %d position: %w", c.ID, err)
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
