// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/atelieraurora/aurora/internal/model"
)

// richTextPolicy sanitizes author-supplied HTML. UGCPolicy keeps basic
// formatting and links but strips scripts and event handlers.
var richTextPolicy = bluemonday.UGCPolicy()

// youtubeURL matches URLs that should be embedded as an iframe rather
// than a native video element.
var youtubeURL = regexp.MustCompile(`youtube|youtu\.be`)

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func renderText(_ context.Context, c model.Component) string {
	return `<p>` + esc(c.Props.String("text", "")) + `</p>`
}

func renderHeading(_ context.Context, c model.Component) string {
	level := c.Props.Int("level", 2)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf(`<h%d>%s</h%d>`, level, esc(c.Props.String("text", "")), level)
}

func renderImage(_ context.Context, c model.Component) string {
	src := c.Props.String("src", "")
	if src == "" {
		return ""
	}
	return `<img src="` + esc(src) + `" alt="` + esc(c.Props.String("alt", "")) + `">`
}

func renderButton(_ context.Context, c model.Component) string {
	label := c.Props.String("label", "Learn more")
	variant := c.Props.String("variant", "primary")
	if variant != "primary" && variant != "ghost" {
		variant = "primary"
	}
	return `<a class="btn btn-` + variant + `" href="` + esc(c.Props.String("to", "#")) + `">` + esc(label) + `</a>`
}

func renderSpacer(_ context.Context, c model.Component) string {
	return `<div class="spacer" style="height:` + esc(c.Props.String("size", "1rem")) + `"></div>`
}

func renderRichText(_ context.Context, c model.Component) string {
	html := c.Props.String("html", "")
	if html == "" {
		return ""
	}
	return `<div class="rich-text">` + richTextPolicy.Sanitize(html) + `</div>`
}

func renderVideo(_ context.Context, c model.Component) string {
	src := c.Props.String("src", "")
	if src == "" {
		return ""
	}
	if youtubeURL.MatchString(src) {
		return `<iframe class="video-embed" src="` + esc(src) + `" allowfullscreen loading="lazy"></iframe>`
	}
	return `<video class="video-native" src="` + esc(src) + `" controls></video>`
}

func renderHeroCTA(ctx context.Context, c model.Component) string {
	out := `<div class="hero-cta">`
	if title := c.Props.String("title", ""); title != "" {
		out += `<h1>` + esc(title) + `</h1>`
	}
	if subtitle := c.Props.String("subtitle", ""); subtitle != "" {
		out += `<p class="hero-subtitle">` + esc(subtitle) + `</p>`
	}

	if actions, ok := c.Props["actions"].([]any); ok && len(actions) > 0 {
		out += `<div class="hero-actions">`
		for _, raw := range actions {
			action, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out += renderButton(ctx, model.Component{Type: "button", Props: model.Attrs(action)})
		}
		out += `</div>`
	}
	return out + `</div>`
}
