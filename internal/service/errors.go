// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements page composition: tree assembly, sibling
// reordering, version snapshots and the orchestration behind the
// authoring API. Handlers translate the sentinel errors declared here
// into HTTP responses.
package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by service operations.
var (
	// ErrNotFound covers missing entities and parent-scope mismatches:
	// an existing child addressed through the wrong parent is treated
	// as absent.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when a page slug is already in use.
	ErrSlugTaken = errors.New("slug already in use")
)

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidationError creates a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError unwraps err into a *ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
