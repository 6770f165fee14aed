// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugRegex matches runs of non-alphanumeric characters; each run
// becomes a single hyphen so punctuation keeps word boundaries.
var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a string to a URL-friendly slug.
// It converts to lowercase, removes accents, and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = slugRegex.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// SlugifyWithFallback slugifies s and, when nothing slug-worthy remains
// (e.g. a title of only punctuation), falls back to a time-based slug so
// the caller always gets a non-empty value.
func SlugifyWithFallback(s string) string {
	if slug := Slugify(s); slug != "" {
		return slug
	}
	return fmt.Sprintf("page-%d", time.Now().Unix())
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
