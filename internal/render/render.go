// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render turns a hydrated page tree into HTML. Sections map to
// layout wrappers, components to renderers looked up by type in a
// registry. Unknown component types render nothing so newer content
// degrades gracefully on older deployments.
package render

import (
	"context"
	"html/template"
	"strings"

	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/service"
)

// CatalogFetcher supplies items to product-grid components. The page
// service's catalog implements it; tests plug in fakes.
type CatalogFetcher interface {
	ListItems(ctx context.Context, categorySlug string, limit int) ([]model.CatalogItem, error)
}

// componentRenderer produces HTML for one component. Implementations
// must escape everything they interpolate.
type componentRenderer func(ctx context.Context, c model.Component) string

// Renderer renders page trees. Safe for concurrent use; the registry is
// fixed after construction.
type Renderer struct {
	registry map[string]componentRenderer
	catalog  CatalogFetcher
}

// New creates a Renderer with the built-in component set registered.
// catalog may be nil: product-grid then renders its error state.
func New(catalog CatalogFetcher) *Renderer {
	r := &Renderer{catalog: catalog}
	r.registry = map[string]componentRenderer{
		"text":         renderText,
		"heading":      renderHeading,
		"image":        renderImage,
		"button":       renderButton,
		"spacer":       renderSpacer,
		"rich-text":    renderRichText,
		"video":        renderVideo,
		"hero-cta":     renderHeroCTA,
		"product-grid": r.renderProductGrid,
	}
	return r
}

// RenderPage renders a full page tree. Sections appear in tree order;
// the tree is already sorted, no re-sorting happens here.
func (r *Renderer) RenderPage(ctx context.Context, tree service.PageTree) template.HTML {
	var sb strings.Builder
	sb.WriteString(`<main class="page page-` + template.HTMLEscapeString(tree.Page.Slug) + `">`)
	for _, node := range tree.Sections {
		r.renderSection(ctx, &sb, node)
	}
	sb.WriteString(`</main>`)
	return template.HTML(sb.String())
}

// RenderComponent renders a single component, or an empty string for
// unregistered types.
func (r *Renderer) RenderComponent(ctx context.Context, c model.Component) string {
	fn, ok := r.registry[c.Type]
	if !ok {
		return ""
	}
	return fn(ctx, c)
}
