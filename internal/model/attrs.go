// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Attrs is an open JSON object persisted as serialized TEXT. Section
// settings and component props use it so unknown keys survive round trips.
type Attrs map[string]any

// Value implements driver.Valuer. A nil map serializes as an empty object.
func (a Attrs) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshaling attrs: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for TEXT/BLOB columns.
func (a *Attrs) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Attrs{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scanning attrs: unsupported type %T", src)
	}
	if len(data) == 0 {
		*a = Attrs{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// String returns a key's value as a string, or fallback when absent or
// not a string.
func (a Attrs) String(key, fallback string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns a key's value as an int, accepting JSON numbers and
// numeric strings, or fallback when absent or unparsable.
func (a Attrs) Int(key string, fallback int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

// Bool returns a key's value as a bool, or fallback when absent.
func (a Attrs) Bool(key string, fallback bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return fallback
}
