// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/atelieraurora/aurora/internal/model"
)

// CreatePageVersionParams contains the fields for creating a page version.
type CreatePageVersionParams struct {
	PageID    int64
	Snapshot  string
	Comment   sql.NullString
	CreatedAt time.Time
}

// CreatePageVersion inserts a version row and returns the stored row.
func (q *Queries) CreatePageVersion(ctx context.Context, arg CreatePageVersionParams) (model.PageVersion, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO page_versions (page_id, snapshot, comment, created_at)
		 VALUES (?, ?, ?, ?)`,
		arg.PageID, arg.Snapshot, arg.Comment, arg.CreatedAt)
	if err != nil {
		return model.PageVersion{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PageVersion{}, err
	}
	return q.GetPageVersion(ctx, id)
}

// GetPageVersion returns a version by ID, snapshot included.
func (q *Queries) GetPageVersion(ctx context.Context, id int64) (model.PageVersion, error) {
	var v model.PageVersion
	err := q.db.QueryRowContext(ctx,
		"SELECT id, page_id, snapshot, comment, created_at FROM page_versions WHERE id = ?",
		id).Scan(&v.ID, &v.PageID, &v.Snapshot, &v.Comment, &v.CreatedAt)
	return v, err
}

// ListPageVersionsByPage returns a page's versions newest first. The
// snapshot body is deliberately not selected: it can be large and list
// views only need the metadata.
func (q *Queries) ListPageVersionsByPage(ctx context.Context, pageID int64) ([]model.PageVersion, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, page_id, comment, created_at FROM page_versions
		 WHERE page_id = ? ORDER BY created_at DESC, id DESC`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []model.PageVersion
	for rows.Next() {
		var v model.PageVersion
		if err := rows.Scan(&v.ID, &v.PageID, &v.Comment, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// DeletePageVersion deletes a version row.
func (q *Queries) DeletePageVersion(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM page_versions WHERE id = ?", id)
	return err
}
