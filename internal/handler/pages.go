// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelieraurora/aurora/internal/cache"
	"github.com/atelieraurora/aurora/internal/render"
	"github.com/atelieraurora/aurora/internal/service"
)

// PublicPages serves rendered HTML for published pages, fronted by the
// page cache.
type PublicPages struct {
	pages     *service.Pages
	renderer  *render.Renderer
	pageCache *cache.PageCache // optional, nil disables caching
}

// NewPublicPages creates the public HTML handler. pageCache may be nil.
func NewPublicPages(pages *service.Pages, renderer *render.Renderer, pageCache *cache.PageCache) *PublicPages {
	return &PublicPages{
		pages:     pages,
		renderer:  renderer,
		pageCache: pageCache,
	}
}

// ServePage renders a published page by slug. Cached HTML is served
// as-is; misses render and fill the cache.
func (p *PublicPages) ServePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if p.pageCache != nil {
		if html, ok := p.pageCache.GetHTML(r.Context(), slug); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(html))
			return
		}
	}

	tree, err := p.pages.GetTreeBySlug(r.Context(), slug, false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("rendering page failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html := string(p.renderer.RenderPage(r.Context(), tree))
	if p.pageCache != nil && r.Context().Err() == nil {
		p.pageCache.SetHTML(r.Context(), slug, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
