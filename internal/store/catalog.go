// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
)

// CreateCatalogCategoryParams contains the fields for creating a catalog category.
type CreateCatalogCategoryParams struct {
	Name      string
	Slug      string
	CreatedAt time.Time
}

// CreateCatalogCategory inserts a category and returns the stored row.
func (q *Queries) CreateCatalogCategory(ctx context.Context, arg CreateCatalogCategoryParams) (model.CatalogCategory, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO catalog_categories (name, slug, created_at) VALUES (?, ?, ?)",
		arg.Name, arg.Slug, arg.CreatedAt)
	if err != nil {
		return model.CatalogCategory{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CatalogCategory{}, err
	}

	var c model.CatalogCategory
	err = q.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM catalog_categories WHERE id = ?",
		id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	return c, err
}

// CreateCatalogItemParams contains the fields for creating a catalog item.
type CreateCatalogItemParams struct {
	CategoryID int64
	Name       string
	Slug       string
	PriceCents int64
	ImageURL   string
	Active     bool
	CreatedAt  time.Time
}

// CreateCatalogItem inserts an item and returns its ID.
func (q *Queries) CreateCatalogItem(ctx context.Context, arg CreateCatalogItemParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO catalog_items (category_id, name, slug, price_cents, image_url, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.CategoryID, arg.Name, arg.Slug, arg.PriceCents, arg.ImageURL, arg.Active, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListCatalogItemsParams filters the catalog listing. CategorySlug
// empty means all categories.
type ListCatalogItemsParams struct {
	CategorySlug string
	Limit        int64
}

// ListCatalogItems returns active items, newest first, optionally
// filtered by category slug.
func (q *Queries) ListCatalogItems(ctx context.Context, arg ListCatalogItemsParams) ([]model.CatalogItem, error) {
	query := `SELECT i.id, i.category_id, i.name, i.slug, i.price_cents, i.image_url, i.active, i.created_at
		FROM catalog_items i
		JOIN catalog_categories c ON c.id = i.category_id
		WHERE i.active = 1`
	args := []any{}
	if arg.CategorySlug != "" {
		query += " AND c.slug = ?"
		args = append(args, arg.CategorySlug)
	}
	query += " ORDER BY i.created_at DESC, i.id DESC LIMIT ?"
	args = append(args, arg.Limit)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CatalogItem
	for rows.Next() {
		var it model.CatalogItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Slug, &it.PriceCents,
			&it.ImageURL, &it.Active, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountCatalogCategories returns the number of categories. Seeding uses
// it to run only against an empty table.
func (q *Queries) CountCatalogCategories(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_categories").Scan(&count)
	return count, err
}
