// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
)

// Catalog listing bounds.
const (
	CatalogDefaultLimit = 12
	CatalogMaxLimit     = 50
)

// Catalog serves catalog items to the public API and to the
// product-grid component renderer.
type Catalog struct {
	queries *store.Queries
}

// NewCatalog creates the catalog service.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{queries: store.New(db)}
}

// ListItems returns active items, optionally filtered by category slug.
// A non-positive limit falls back to the default; oversized limits clamp.
func (c *Catalog) ListItems(ctx context.Context, categorySlug string, limit int) ([]model.CatalogItem, error) {
	if limit <= 0 {
		limit = CatalogDefaultLimit
	}
	if limit > CatalogMaxLimit {
		limit = CatalogMaxLimit
	}

	items, err := c.queries.ListCatalogItems(ctx, store.ListCatalogItemsParams{
		CategorySlug: categorySlug,
		Limit:        int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("listing catalog items: %w", err)
	}
	if items == nil {
		items = []model.CatalogItem{}
	}
	return items, nil
}
