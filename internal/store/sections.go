// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
)

const sectionColumns = "id, page_id, type, position, settings, created_at, updated_at"

func scanSection(row interface{ Scan(...any) error }) (model.Section, error) {
	var s model.Section
	err := row.Scan(&s.ID, &s.PageID, &s.Type, &s.Position, &s.Settings, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateSectionParams contains the fields for creating a section.
type CreateSectionParams struct {
	PageID    int64
	Type      string
	Position  int64
	Settings  model.Attrs
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSection inserts a section and returns the stored row.
func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (model.Section, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO page_sections (page_id, type, position, settings, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.PageID, arg.Type, arg.Position, arg.Settings, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Section{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Section{}, err
	}
	return q.GetSection(ctx, id)
}

// GetSection returns a section by ID.
func (q *Queries) GetSection(ctx context.Context, id int64) (model.Section, error) {
	return scanSection(q.db.QueryRowContext(ctx,
		"SELECT "+sectionColumns+" FROM page_sections WHERE id = ?", id))
}

// ListSectionsByPage returns a page's sections in rank order with a
// stable ID tie-break.
func (q *Queries) ListSectionsByPage(ctx context.Context, pageID int64) ([]model.Section, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+sectionColumns+" FROM page_sections WHERE page_id = ? ORDER BY position ASC, id ASC",
		pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// UpdateSectionParams contains the fields for updating a section.
type UpdateSectionParams struct {
	ID        int64
	Type      string
	Settings  model.Attrs
	UpdatedAt time.Time
}

// UpdateSection updates a section's type and settings and returns the stored row.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (model.Section, error) {
	_, err := q.db.ExecContext(ctx,
		"UPDATE page_sections SET type = ?, settings = ?, updated_at = ? WHERE id = ?",
		arg.Type, arg.Settings, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Section{}, err
	}
	return q.GetSection(ctx, arg.ID)
}

// UpdateSectionPosition rewrites a single section's rank.
func (q *Queries) UpdateSectionPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE page_sections SET position = ? WHERE id = ?", position, id)
	return err
}

// MaxSectionPosition returns the highest rank on a page, 0 when empty.
func (q *Queries) MaxSectionPosition(ctx context.Context, pageID int64) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM page_sections WHERE page_id = ?",
		pageID).Scan(&max)
	return max, err
}

// DeleteSection deletes a section. Its components cascade.
func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM page_sections WHERE id = ?", id)
	return err
}

// DeleteSectionsByPage removes every section of a page. Used by
// snapshot restore before re-inserting the captured tree.
func (q *Queries) DeleteSectionsByPage(ctx context.Context, pageID int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM page_sections WHERE page_id = ?", pageID)
	return err
}
