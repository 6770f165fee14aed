// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for page authoring, versions,
// catalog and authentication.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atelieraurora/aurora/internal/auth"
	"github.com/atelieraurora/aurora/internal/handler"
	"github.com/atelieraurora/aurora/internal/service"
	"github.com/atelieraurora/aurora/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	pages   *service.Pages
	catalog *service.Catalog
	issuer  *auth.TokenIssuer
	queries *store.Queries
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, pages *service.Pages, catalog *service.Catalog, issuer *auth.TokenIssuer) *Handler {
	return &Handler{
		pages:   pages,
		catalog: catalog,
		issuer:  issuer,
		queries: store.New(db),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusConflict, "conflict", message, details)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// writeServiceError maps service-layer errors onto the API error
// taxonomy: validation 422, slug conflicts 409, missing or out-of-scope
// entities 404, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		WriteValidationError(w, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		WriteConflict(w, "Slug already in use", map[string]string{"slug": "Slug already in use"})
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, "Not found")
	default:
		slog.Error("api request failed", "error", err)
		WriteInternalError(w, "Internal error")
	}
}

// decodeJSON decodes a request body, writing a 400 on malformed input.
// Returns false when a response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// requireID parses the named URL parameter, writing a 400 on bad input.
func requireID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := handler.ParseInt64Param(r, name)
	if err != nil {
		WriteBadRequest(w, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return id, true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}
