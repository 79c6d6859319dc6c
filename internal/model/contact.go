// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   sql.NullString `json:"subject,omitempty"`
	Message   string         `json:"message"`
	IsRead    bool           `json:"is_read"`
	Country   sql.NullString `json:"country,omitempty"`
	UserAgent sql.NullString `json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
