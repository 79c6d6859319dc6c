// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event levels for the admin event log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories for the admin event log.
const (
	EventCategoryAuth   = "auth"
	EventCategoryBlog   = "blog"
	EventCategoryUser   = "user"
	EventCategoryRole   = "role"
	EventCategorySystem = "system"
)

// Event is a persisted log record shown on the admin dashboard. WARN and
// ERROR slog records are stored here automatically; handlers may also log
// notable domain actions.
type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id,omitempty"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}
