// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Snapshot is a detached value copy of a page tree as captured into a
// PageVersion. It carries no row IDs: restoring re-inserts everything
// with fresh identifiers.
type Snapshot struct {
	Title    string            `json:"title"`
	Slug     string            `json:"slug"`
	Status   string            `json:"status"`
	Sections []SnapshotSection `json:"sections"`
}

// SnapshotSection mirrors a Section inside a Snapshot.
type SnapshotSection struct {
	Type       string              `json:"type"`
	Position   int64               `json:"position"`
	Settings   Attrs               `json:"settings"`
	Components []SnapshotComponent `json:"components"`
}

// SnapshotComponent mirrors a Component inside a Snapshot.
type SnapshotComponent struct {
	Type     string `json:"type"`
	Position int64  `json:"position"`
	Props    Attrs  `json:"props"`
}
