// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/atelieraurora/aurora/internal/service"
)

// Layout kinds. Any unrecognized section type falls back to stack.
const (
	LayoutHero  = "hero"
	LayoutGrid  = "grid"
	LayoutStack = "stack"
)

// layoutKind resolves a section to its layout. The generic "container"
// type defers to its settings; everything unknown stacks.
func layoutKind(node service.SectionNode) string {
	t := node.Type
	if t == "container" {
		t = node.Settings.String("layout", LayoutStack)
	}
	switch t {
	case LayoutHero, LayoutGrid, LayoutStack:
		return t
	default:
		return LayoutStack
	}
}

// renderSection wraps a section's components in its layout markup.
func (r *Renderer) renderSection(ctx context.Context, sb *strings.Builder, node service.SectionNode) {
	kind := layoutKind(node)

	classes := []string{"section", "section-" + kind}
	if node.Settings.Bool("fullWidth", false) {
		classes = append(classes, "section-full")
	}
	if align := node.Settings.String("align", ""); align == "left" || align == "center" || align == "right" {
		classes = append(classes, "align-"+align)
	}

	var styles []string
	if bg := node.Settings.String("backgroundColor", ""); bg != "" {
		styles = append(styles, "background-color:"+template.HTMLEscapeString(bg))
	}
	if img := node.Settings.String("backgroundImage", ""); img != "" {
		styles = append(styles, "background-image:url('"+template.HTMLEscapeString(img)+"')")
	}
	if pt := node.Settings.String("paddingTop", ""); pt != "" {
		styles = append(styles, "padding-top:"+template.HTMLEscapeString(pt))
	}
	if pb := node.Settings.String("paddingBottom", ""); pb != "" {
		styles = append(styles, "padding-bottom:"+template.HTMLEscapeString(pb))
	}
	if kind == LayoutGrid {
		columns := node.Settings.Int("columns", 3)
		if columns < 1 {
			columns = 1
		}
		styles = append(styles, fmt.Sprintf("grid-template-columns:repeat(%d, 1fr)", columns))
	}

	sb.WriteString(`<section class="` + strings.Join(classes, " ") + `"`)
	if len(styles) > 0 {
		sb.WriteString(` style="` + strings.Join(styles, ";") + `"`)
	}
	sb.WriteString(`>`)

	// A background image gets a dimming overlay when requested, with
	// the content lifted above it.
	overlay := node.Settings.String("backgroundImage", "") != "" && node.Settings.Bool("overlay", false)
	if overlay {
		sb.WriteString(`<div class="section-overlay"></div>`)
	}

	sb.WriteString(`<div class="section-content">`)
	for _, c := range node.Components {
		sb.WriteString(r.RenderComponent(ctx, c))
	}
	sb.WriteString(`</div></section>`)
}
