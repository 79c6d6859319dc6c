// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// User represents an admin back-office user. Role is the name of the role
// referenced by RoleID; MenuAccess is denormalized from the role when the
// user is loaded for a session.
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // Never expose in JSON
	FullName     string         `json:"full_name"`
	Phone        sql.NullString `json:"phone,omitempty"`
	Company      sql.NullString `json:"company,omitempty"`
	RoleID       int64          `json:"-"`
	Role         string         `json:"role"`
	MenuAccess   MenuAccess     `json:"menu_access,omitempty"`
	IsActive     bool           `json:"is_active"`
	LastLoginAt  sql.NullTime   `json:"last_login,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccess reports whether the user's role grants the given admin menu.
// Missing authorization data denies access.
func (u *User) CanAccess(key MenuKey) bool {
	return u.MenuAccess.Allows(key)
}
