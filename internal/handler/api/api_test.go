// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d\nbody: %s", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteValidationError(w, map[string]string{"title": "Title is required"})

	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	resp := assertErrorResponse(t, w, "validation_error")
	if resp.Error.Details["title"] != "Title is required" {
		t.Errorf("expected title detail, got %v", resp.Error.Details)
	}
}

func TestWriteConflict(t *testing.T) {
	w := httptest.NewRecorder()

	WriteConflict(w, "Slug already in use", map[string]string{"slug": "Slug already in use"})

	assertStatusCode(t, w, http.StatusConflict)
	assertErrorResponse(t, w, "conflict")
}

func TestWriteNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	WriteNoContent(w)

	assertStatusCode(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", w.Body.String())
	}
}

func TestStatus(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(h.Status, newGetRequest("/api/v1/status"))

	assertStatusCode(t, w, http.StatusOK)
	status := unmarshalData[StatusResponse](t, w.Body.Bytes())
	if status.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", status.Status)
	}
	if status.Version != "v1" {
		t.Errorf("expected version 'v1', got %s", status.Version)
	}
}

func TestRequireID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid id", "42", true},
		{"zero", "0", false},
		{"negative", "-1", false},
		{"not a number", "abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := requestWithURLParams(newGetRequest("/"), map[string]string{"id": tt.value})
			w := httptest.NewRecorder()

			id, ok := requireID(w, r, "id")
			if ok != tt.valid {
				t.Errorf("requireID(%q) ok = %v, want %v", tt.value, ok, tt.valid)
			}
			if tt.valid && id != 42 {
				t.Errorf("requireID(%q) = %d, want 42", tt.value, id)
			}
			if !tt.valid {
				assertStatusCode(t, w, http.StatusBadRequest)
			}
		})
	}
}
