// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Role, User, Post and Consultation structures.
package model

import "encoding/json"

// MenuKey identifies one admin feature area. It is used both as a key in a
// role's menu-access mapping and as the gating attribute of a navigation item.
type MenuKey string

// The closed set of admin menu keys. Adding an admin feature means adding
// its key here; role storage and the admin shell both consume this list.
const (
	MenuDashboard     MenuKey = "dashboard"
	MenuBlog          MenuKey = "blog"
	MenuConsultations MenuKey = "consultations"
	MenuUsers         MenuKey = "users"
	MenuRoles         MenuKey = "roles"
)

// AllMenuKeys returns the canonical menu-key enumeration in display order.
func AllMenuKeys() []MenuKey {
	return []MenuKey{MenuDashboard, MenuBlog, MenuConsultations, MenuUsers, MenuRoles}
}

// IsValidMenuKey reports whether key belongs to the canonical enumeration.
func IsValidMenuKey(key MenuKey) bool {
	for _, k := range AllMenuKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Decision is the tri-state result of a menu capability check.
type Decision int

// Capability check outcomes. Unknown means no authorization data was
// available for the key; callers must treat it as a denial.
const (
	DecisionUnknown Decision = iota
	DecisionDenied
	DecisionGranted
)

// MenuAccess maps menu keys to grant flags. A nil map means no authorization
// data at all; Decide reports Unknown for every key in that case.
type MenuAccess map[MenuKey]bool

// ParseMenuAccess deserializes the stored JSON representation of a role's
// menu access. Missing keys default to false, unknown keys are dropped, and
// malformed input yields a mapping with every key denied.
func ParseMenuAccess(raw string) MenuAccess {
	access := make(MenuAccess, len(AllMenuKeys()))
	for _, key := range AllMenuKeys() {
		access[key] = false
	}
	if raw == "" {
		return access
	}

	var decoded map[string]bool
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return access
	}
	for k, v := range decoded {
		key := MenuKey(k)
		if IsValidMenuKey(key) {
			access[key] = v
		}
	}
	return access
}

// Normalize returns a copy of the mapping that contains an entry for every
// canonical key (missing keys become false) and no unknown keys.
func (a MenuAccess) Normalize() MenuAccess {
	out := make(MenuAccess, len(AllMenuKeys()))
	for _, key := range AllMenuKeys() {
		out[key] = a[key]
	}
	return out
}

// Decide returns the capability decision for a menu key.
func (a MenuAccess) Decide(key MenuKey) Decision {
	if a == nil {
		return DecisionUnknown
	}
	granted, ok := a[key]
	if !ok {
		return DecisionUnknown
	}
	if granted {
		return DecisionGranted
	}
	return DecisionDenied
}

// Allows reports whether the key is explicitly granted. Absent authorization
// data denies access.
func (a MenuAccess) Allows(key MenuKey) bool {
	return a.Decide(key) == DecisionGranted
}

// CountGranted returns the number of granted menus, for display
// (e.g. "3 / 5 menus").
func (a MenuAccess) CountGranted() int {
	n := 0
	for _, key := range AllMenuKeys() {
		if a[key] {
			n++
		}
	}
	return n
}

// JSON serializes the mapping for storage. The result always contains every
// canonical key.
func (a MenuAccess) JSON() string {
	normalized := a.Normalize()
	raw, err := json.Marshal(normalized)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
