// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atelieraurora/aurora/internal/model"
)

// productGridDefaultLimit caps how many items a grid shows unless the
// component asks for more.
const productGridDefaultLimit = 4

// renderProductGrid is the only effectful renderer: it fetches catalog
// items with the request context. A cancelled context or a fetch error
// renders the grid's error state instead of failing the page.
func (r *Renderer) renderProductGrid(ctx context.Context, c model.Component) string {
	var sb strings.Builder
	sb.WriteString(`<div class="product-grid">`)
	if heading := c.Props.String("heading", ""); heading != "" {
		sb.WriteString(`<h2>` + esc(heading) + `</h2>`)
	}

	limit := c.Props.Int("limit", productGridDefaultLimit)
	if limit < 1 {
		limit = productGridDefaultLimit
	}

	items, err := r.fetchItems(ctx, c.Props.String("category", ""), limit)
	switch {
	case err != nil:
		slog.Warn("product grid fetch failed", "category", c.Props.String("category", ""), "error", err)
		sb.WriteString(`<p class="product-grid-error">Products are unavailable right now.</p>`)
	case len(items) == 0:
		sb.WriteString(`<p class="product-grid-empty">No products to show.</p>`)
	default:
		showPrices := c.Props.Bool("showPrices", true)
		sb.WriteString(`<ul class="product-grid-items">`)
		for _, item := range items {
			sb.WriteString(`<li class="product-card">`)
			if item.ImageURL != "" {
				sb.WriteString(`<img src="` + esc(item.ImageURL) + `" alt="` + esc(item.Name) + `">`)
			}
			sb.WriteString(`<span class="product-name">` + esc(item.Name) + `</span>`)
			if showPrices {
				sb.WriteString(fmt.Sprintf(`<span class="product-price">%d.%02d</span>`,
					item.PriceCents/100, item.PriceCents%100))
			}
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

// fetchItems guards against a missing catalog and checks the context
// both before and after the fetch so a cancelled request discards the
// result.
func (r *Renderer) fetchItems(ctx context.Context, category string, limit int) ([]model.CatalogItem, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("no catalog configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := r.catalog.ListItems(ctx, category, limit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
