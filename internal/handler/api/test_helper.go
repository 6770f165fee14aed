// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/atelieraurora/aurora/internal/auth"
	"github.com/atelieraurora/aurora/internal/middleware"
	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/service"
)

const testJWTSecret = "test-secret-at-least-32-characters-long"

// testDB creates an in-memory SQLite database with the full schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'draft',
			published_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 1,
			settings TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_components (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			section_id INTEGER NOT NULL REFERENCES page_sections(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 1,
			props TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE page_versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			snapshot TEXT NOT NULL,
			comment TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'editor',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE catalog_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE catalog_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL REFERENCES catalog_categories(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			price_cents INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testSetup creates a test database and a fully wired Handler.
func testSetup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()
	db := testDB(t)
	pages := service.NewPages(db, nil)
	catalog := service.NewCatalog(db)
	issuer := auth.NewTokenIssuer(testJWTSecret, time.Hour)
	return db, NewHandler(db, pages, catalog, issuer)
}

// createTestUser inserts a user with a real password hash and returns it.
func createTestUser(t *testing.T, db *sql.DB, email, password, role string) model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	res, err := db.Exec(
		"INSERT INTO users (email, name, password_hash, role) VALUES (?, ?, ?, ?)",
		email, "Test User", hash, role)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get user id: %v", err)
	}

	return model.User{ID: id, Email: email, Name: "Test User", PasswordHash: hash, Role: role}
}

// createTestPage creates a page through the service and returns its tree.
func createTestPage(t *testing.T, h *Handler, title string) service.PageTree {
	t.Helper()
	tree, err := h.pages.CreatePage(context.Background(), service.CreatePageInput{Title: title})
	if err != nil {
		t.Fatalf("failed to create test page: %v", err)
	}
	return tree
}

// addTestSection adds a section to a page and returns the refreshed tree.
func addTestSection(t *testing.T, h *Handler, pageID int64, sectionType string) service.PageTree {
	t.Helper()
	tree, err := h.pages.AddSection(context.Background(), pageID, service.AddSectionInput{Type: sectionType})
	if err != nil {
		t.Fatalf("failed to add test section: %v", err)
	}
	return tree
}

// addTestComponent adds a component to a section and returns the refreshed tree.
func addTestComponent(t *testing.T, h *Handler, pageID, sectionID int64, componentType string) service.PageTree {
	t.Helper()
	tree, err := h.pages.AddComponent(context.Background(), pageID, sectionID, service.AddComponentInput{
		Type:  componentType,
		Props: model.Attrs{"text": componentType},
	})
	if err != nil {
		t.Fatalf("failed to add test component: %v", err)
	}
	return tree
}

// requestWithURLParams attaches chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithUser attaches an authenticated user to a request's context.
func requestWithUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, user))
}

// newJSONRequest creates a request with a JSON-encoded body.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// newGetRequest creates a GET request.
func newGetRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

// newDeleteRequest creates a DELETE request.
func newDeleteRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodDelete, target, nil)
}

// dataResponse mirrors the API envelope for single-object responses.
type dataResponse[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData decodes a response body into the envelope's data field.
func unmarshalData[T any](t *testing.T, body []byte) T {
	t.Helper()

	var resp dataResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v\nbody: %s", err, body)
	}
	return resp.Data
}

// unmarshalError decodes an error response body.
func unmarshalError(t *testing.T, body []byte) ErrorDetail {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v\nbody: %s", err, body)
	}
	return resp.Error
}

// executeHandler runs a handler function and returns the recorder.
func executeHandler(handlerFunc http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handlerFunc(w, r)
	return w
}
