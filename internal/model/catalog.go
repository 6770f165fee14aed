// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// CatalogCategory groups catalog items, addressed by slug.
type CatalogCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogItem is a sellable item surfaced by the product-grid component.
// PriceCents avoids floating point money.
type CatalogItem struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	PriceCents int64     `json:"price_cents"`
	ImageURL   string    `json:"image_url"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}
