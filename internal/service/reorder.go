// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/atelieraurora/aurora/internal/store"
)

// Move describes a reorder request: either a relative direction
// ("up"/"down") or an absolute target index (0-based, clamped).
type Move struct {
	Direction string
	Index     *int
}

// Valid reports whether the move specifies exactly one addressing form.
func (m Move) Valid() bool {
	if m.Index != nil {
		return m.Direction == ""
	}
	return m.Direction == "up" || m.Direction == "down"
}

// sibling is the minimal view the reorder algorithm needs.
type sibling struct {
	id       int64
	position int64
}

// reorderSiblings recomputes the full sibling order: locate the target,
// resolve its new index (boundary moves and out-of-range indexes clamp,
// never fail), splice, and rewrite every row to its dense 1-based rank.
// Writing all rows heals any gaps or duplicates left by older data.
func reorderSiblings(siblings []sibling, targetID int64, move Move) ([]sibling, bool) {
	cur := -1
	for i, s := range siblings {
		if s.id == targetID {
			cur = i
			break
		}
	}
	if cur == -1 {
		return nil, false
	}

	next := cur
	switch {
	case move.Direction == "up":
		if next > 0 {
			next--
		}
	case move.Direction == "down":
		if next < len(siblings)-1 {
			next++
		}
	case move.Index != nil:
		next = *move.Index
		if next < 0 {
			next = 0
		}
		if next > len(siblings)-1 {
			next = len(siblings) - 1
		}
	}

	if next == cur {
		return siblings, true
	}

	target := siblings[cur]
	reordered := make([]sibling, 0, len(siblings))
	reordered = append(reordered, siblings[:cur]...)
	reordered = append(reordered, siblings[cur+1:]...)
	reordered = append(reordered[:next], append([]sibling{target}, reordered[next:]...)...)

	return reordered, true
}

// ReorderSection moves a section among its page's siblings and returns
// the refreshed tree. All position writes happen in one transaction.
func (s *Pages) ReorderSection(ctx context.Context, pageID, sectionID int64, move Move) (PageTree, error) {
	if !move.Valid() {
		return PageTree{}, NewValidationError("move", "Requires direction \"up\"/\"down\" or a numeric index")
	}

	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}

	err = s.withTx(ctx, func(q *store.Queries) error {
		sections, err := q.ListSectionsByPage(ctx, pageID)
		if err != nil {
			return fmt.Errorf("loading sections: %w", err)
		}
		siblings := make([]sibling, len(sections))
		for i, sec := range sections {
			siblings[i] = sibling{id: sec.ID, position: sec.Position}
		}

		reordered, found := reorderSiblings(siblings, sectionID, move)
		if !found {
			return ErrNotFound
		}
		for i, sib := range reordered {
			want := int64(i + 1)
			if sib.position == want {
				continue
			}
			if err := q.UpdateSectionPosition(ctx, sib.id, want); err != nil {
				return fmt.Errorf("updating section %d position: %w", sib.id, err)
			}
		}
		return nil
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}

// ReorderComponent moves a component among its section's siblings and
// returns the refreshed tree. The section must belong to the page and
// the component to the section, otherwise the component is treated as
// absent.
func (s *Pages) ReorderComponent(ctx context.Context, pageID, sectionID, componentID int64, move Move) (PageTree, error) {
	if !move.Valid() {
		return PageTree{}, NewValidationError("move", "Requires direction \"up\"/\"down\" or a numeric index")
	}

	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return PageTree{}, err
	}
	if _, err := s.requireSection(ctx, pageID, sectionID); err != nil {
		return PageTree{}, err
	}

	err = s.withTx(ctx, func(q *store.Queries) error {
		components, err := q.ListComponentsBySection(ctx, sectionID)
		if err != nil {
			return fmt.Errorf("loading components: %w", err)
		}
		siblings := make([]sibling, len(components))
		for i, c := range components {
			siblings[i] = sibling{id: c.ID, position: c.Position}
		}

		reordered, found := reorderSiblings(siblings, componentID, move)
		if !found {
			return ErrNotFound
		}
		for i, sib := range reordered {
			want := int64(i + 1)
			if sib.position == want {
				continue
			}
			if err := q.UpdateComponentPosition(ctx, sib.id, want); err != nil {
				return fmt.Errorf("updating component %d position: %w", sib.id, err)
			}
		}
		return nil
	})
	if err != nil {
		return PageTree{}, err
	}

	s.invalidate(ctx, page.Slug)
	return s.treeByID(ctx, pageID)
}
