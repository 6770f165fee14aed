// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// Health reports service liveness and database reachability.
type Health struct {
	db      *sql.DB
	started time.Time
}

// NewHealth creates the health handler.
func NewHealth(db *sql.DB) *Health {
	return &Health{db: db, started: time.Now()}
}

// ServeHTTP implements the /health endpoint.
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type healthResponse struct {
		Status   string `json:"status"`
		Uptime   string `json:"uptime"`
		Database string `json:"database"`
	}

	resp := healthResponse{
		Status:   "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Database: "ok",
	}
	status := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
