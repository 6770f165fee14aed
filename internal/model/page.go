// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Page statuses
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Page represents a composable page: metadata plus an ordered tree of
// sections and components stored in their own tables.
type Page struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Status      string       `json:"status"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsPublished returns true if the page is published.
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}

// IsDraft returns true if the page is a draft.
func (p *Page) IsDraft() bool {
	return p.Status == PageStatusDraft
}

// Section is a direct child of a page. Position is a dense 1-based rank
// among the siblings of the same page.
type Section struct {
	ID        int64     `json:"id"`
	PageID    int64     `json:"page_id"`
	Type      string    `json:"type"`
	Position  int64     `json:"position"`
	Settings  Attrs     `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Component is a leaf of the page tree, owned by a section. Position is
// a dense 1-based rank among the siblings of the same section.
type Component struct {
	ID        int64     `json:"id"`
	SectionID int64     `json:"section_id"`
	Type      string    `json:"type"`
	Position  int64     `json:"position"`
	Props     Attrs     `json:"props"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageVersion is an immutable point-in-time snapshot of a page tree.
// Snapshot holds the serialized tree; list endpoints omit it.
type PageVersion struct {
	ID        int64          `json:"id"`
	PageID    int64          `json:"page_id"`
	Snapshot  string         `json:"snapshot,omitempty"`
	Comment   sql.NullString `json:"comment,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
