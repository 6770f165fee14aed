// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/atelieraurora/aurora/internal/auth"
	"github.com/atelieraurora/aurora/internal/model"
	"github.com/atelieraurora/aurora/internal/store"
)

// ContextKey is the type for context keys set by this package.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// validateToken parses the Authorization header, verifies the bearer
// token and loads the user behind it. If required is true and
// validation fails, an error response is written; the second return
// value reports whether that happened.
func validateToken(w http.ResponseWriter, r *http.Request, issuer *auth.TokenIssuer, queries *store.Queries, required bool) (*model.User, bool) {
	fail := func(status int, code, message string) (*model.User, bool) {
		if required {
			WriteAPIError(w, status, code, message, nil)
			return nil, true
		}
		return nil, false
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return fail(http.StatusUnauthorized, "unauthorized", "Missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return fail(http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>")
	}

	claims, err := issuer.Verify(parts[1])
	if err != nil {
		return fail(http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return fail(http.StatusUnauthorized, "unauthorized", "Invalid token subject")
	}

	user, err := queries.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(http.StatusUnauthorized, "unauthorized", "Unknown user")
		}
		slog.Error("failed to load user for token", "error", err)
		return fail(http.StatusInternalServerError, "internal_error", "Failed to validate token")
	}

	return &user, false
}

// Auth creates middleware that requires a valid bearer token and puts
// the authenticated user on the request context.
func Auth(issuer *auth.TokenIssuer, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, errorWritten := validateToken(w, r, issuer, queries, true)
			if errorWritten {
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth creates middleware that attaches the user when a valid
// bearer token is present but lets anonymous requests through.
func OptionalAuth(issuer *auth.TokenIssuer, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := validateToken(w, r, issuer, queries, false)
			if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser returns the authenticated user from the request context, or
// nil for anonymous requests.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return user
}
