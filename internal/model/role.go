// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// System role names. Protected roles cannot be renamed or deleted.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// protectedRoles is the set of role names whose identity and existence
// cannot be altered through the admin surface.
var protectedRoles = map[string]bool{
	RoleAdmin:     true,
	RoleModerator: true,
}

// IsProtectedRole reports whether a role name is system-protected.
func IsProtectedRole(name string) bool {
	return protectedRoles[name]
}

// Role is a named bundle of menu-access permissions assignable to users.
type Role struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	MenuAccess  MenuAccess `json:"menu_access"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsProtected reports whether the role is system-protected.
func (r *Role) IsProtected() bool {
	return IsProtectedRole(r.Name)
}
