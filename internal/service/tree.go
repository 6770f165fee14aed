// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
)

// PageTree is a fully hydrated page: metadata plus ordered sections,
// each carrying its ordered components. Ordering is established at
// load time; consumers never re-sort.
type PageTree struct {
	Page     model.Page    `json:"page"`
	Sections []SectionNode `json:"sections"`
}

// SectionNode is a section with its components attached.
type SectionNode struct {
	model.Section
	Components []model.Component `json:"components"`
}

// BuildPageTree hydrates a page tree using two queries: sections in
// rank order, then one batch load of all their components grouped back
// by section.
func BuildPageTree(ctx context.Context, queries *store.Queries, page model.Page) (PageTree, error) {
	sections, err := queries.ListSectionsByPage(ctx, page.ID)
	if err != nil {
		return PageTree{}, fmt.Errorf("loading sections for page %d: %w", page.ID, err)
	}

	tree := PageTree{Page: page, Sections: make([]SectionNode, 0, len(sections))}
	if len(sections) == 0 {
		return tree, nil
	}

	ids := make([]int64, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}

	components, err := queries.ListComponentsBySections(ctx, ids)
	if err != nil {
		return PageTree{}, fmt.Errorf("loading components for page %d: %w", page.ID, err)
	}

	bySection := make(map[int64][]model.Component, len(sections))
	for _, c := range components {
		bySection[c.SectionID] = append(bySection[c.SectionID], c)
	}

	for _, s := range sections {
		comps := bySection[s.ID]
		if comps == nil {
			comps = []model.Component{}
		}
		tree.Sections = append(tree.Sections, SectionNode{Section: s, Components: comps})
	}

	return tree, nil
}
