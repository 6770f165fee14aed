// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
)

const pageColumns = "id, title, slug, status, published_at, created_at, updated_at"

func scanPage(row interface{ Scan(...any) error }) (model.Page, error) {
	var p model.Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePageParams contains the fields for creating a page.
type CreatePageParams struct {
	Title       string
	Slug        string
	Status      string
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePage inserts a page and returns the stored row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO pages (title, slug, status, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Status, arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Page{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPage(ctx, id)
}

// GetPage returns a page by ID.
func (q *Queries) GetPage(ctx context.Context, id int64) (model.Page, error) {
	return scanPage(q.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE id = ?", id))
}

// GetPageBySlug returns a page by slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	return scanPage(q.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE slug = ?", slug))
}

// ListPages returns all pages, most recently updated first.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// UpdatePageParams contains the fields for updating a page.
type UpdatePageParams struct {
	ID          int64
	Title       string
	Slug        string
	Status      string
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdatePage updates a page and returns the stored row.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (model.Page, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE pages SET title = ?, slug = ?, status = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Slug, arg.Status, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPage(ctx, arg.ID)
}

// TouchPage bumps a page's updated_at. Structural edits to sections and
// components count as page edits.
func (q *Queries) TouchPage(ctx context.Context, id int64, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE pages SET updated_at = ? WHERE id = ?", updatedAt, id)
	return err
}

// DeletePage deletes a page. Sections, components and versions cascade.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	return err
}

// CountPagesBySlugParams filters the slug uniqueness check.
type CountPagesBySlugParams struct {
	Slug      string
	ExcludeID int64 // 0 means exclude nothing
}

// CountPagesBySlug counts pages holding a slug, optionally ignoring one page.
func (q *Queries) CountPagesBySlug(ctx context.Context, arg CountPagesBySlugParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pages WHERE slug = ? AND id != ?",
		arg.Slug, arg.ExcludeID).Scan(&count)
	return count, err
}
