// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
)

const componentColumns = "id, section_id, type, position, props, created_at, updated_at"

func scanComponent(row interface{ Scan(...any) error }) (model.Component, error) {
	var c model.Component
	err := row.Scan(&c.ID, &c.SectionID, &c.Type, &c.Position, &c.Props, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateComponentParams contains the fields for creating a component.
type CreateComponentParams struct {
	SectionID int64
	Type      string
	Position  int64
	Props     model.Attrs
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateComponent inserts a component and returns the stored row.
func (q *Queries) CreateComponent(ctx context.Context, arg CreateComponentParams) (model.Component, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO page_components (section_id, type, position, props, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.SectionID, arg.Type, arg.Position, arg.Props, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Component{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Component{}, err
	}
	return q.GetComponent(ctx, id)
}

// GetComponent returns a component by ID.
func (q *Queries) GetComponent(ctx context.Context, id int64) (model.Component, error) {
	return scanComponent(q.db.QueryRowContext(ctx,
		"SELECT "+componentColumns+" FROM page_components WHERE id = ?", id))
}

// ListComponentsBySection returns a section's components in rank order
// with a stable ID tie-break.
func (q *Queries) ListComponentsBySection(ctx context.Context, sectionID int64) ([]model.Component, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+componentColumns+" FROM page_components WHERE section_id = ? ORDER BY position ASC, id ASC",
		sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []model.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// ListComponentsBySections batch-loads components for several sections
// in one query, ordered by section then rank. Tree hydration uses this
// to avoid a query per section.
func (q *Queries) ListComponentsBySections(ctx context.Context, sectionIDs []int64) ([]model.Component, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(sectionIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(sectionIDs))
	for i, id := range sectionIDs {
		args[i] = id
	}

	rows, err := q.db.QueryContext(ctx,
		"SELECT "+componentColumns+" FROM page_components WHERE section_id IN ("+placeholders+
			") ORDER BY section_id ASC, position ASC, id ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []model.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// UpdateComponentParams contains the fields for updating a component.
type UpdateComponentParams struct {
	ID        int64
	Type      string
	Props     model.Attrs
	UpdatedAt time.Time
}

// UpdateComponent updates a component's type and props and returns the stored row.
func (q *Queries) UpdateComponent(ctx context.Context, arg UpdateComponentParams) (model.Component, error) {
	_, err := q.db.ExecContext(ctx,
		"UPDATE page_components SET type = ?, props = ?, updated_at = ? WHERE id = ?",
		arg.Type, arg.Props, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Component{}, err
	}
	return q.GetComponent(ctx, arg.ID)
}

// UpdateComponentPosition rewrites a single component's rank.
func (q *Queries) UpdateComponentPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE page_components SET position = ? WHERE id = ?", position, id)
	return err
}

// MaxComponentPosition returns the highest rank in a section, 0 when empty.
func (q *Queries) MaxComponentPosition(ctx context.Context, sectionID int64) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM page_components WHERE section_id = ?",
		sectionID).Scan(&max)
	return max, err
}

// DeleteComponent deletes a component.
func (q *Queries) DeleteComponent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM page_components WHERE id = ?", id)
	return err
}
