// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseMenuAccessCompletesMissingKeys(t *testing.T) {
	access := ParseMenuAccess(`{"blog":true,"users":true}`)

	for _, key := range AllMenuKeys() {
		if _, ok := access[key]; !ok {
			t.Errorf("key %q missing from reconstructed mapping", key)
		}
	}
	if !access[MenuBlog] || !access[MenuUsers] {
		t.Error("explicitly granted keys should remain granted")
	}
	if access[MenuDashboard] || access[MenuConsultations] || access[MenuRoles] {
		t.Error("omitted keys must default to false")
	}
}

func TestParseMenuAccessDropsUnknownKeys(t *testing.T) {
	access := ParseMenuAccess(`{"blog":true,"reports":true}`)

	if _, ok := access[MenuKey("reports")]; ok {
		t.Error("unknown keys must be ignored")
	}
	if !access[MenuBlog] {
		t.Error("known keys must survive")
	}
}

func TestParseMenuAccessMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "not-json"},
		{"wrong shape", `["blog"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := ParseMenuAccess(tt.raw)
			if len(access) != len(AllMenuKeys()) {
				t.Fatalf("expected %d keys, got %d", len(AllMenuKeys()), len(access))
			}
			for key, granted := range access {
				if granted {
					t.Errorf("malformed data must deny every key, %q was granted", key)
				}
			}
		})
	}
}

func TestDecideTriState(t *testing.T) {
	access := MenuAccess{MenuBlog: true, MenuUsers: false}

	if got := access.Decide(MenuBlog); got != DecisionGranted {
		t.Errorf("Decide(blog) = %v, want granted", got)
	}
	if got := access.Decide(MenuUsers); got != DecisionDenied {
		t.Errorf("Decide(users) = %v, want denied", got)
	}
	if got := access.Decide(MenuRoles); got != DecisionUnknown {
		t.Errorf("Decide(roles) = %v, want unknown", got)
	}

	var missing MenuAccess
	if got := missing.Decide(MenuBlog); got != DecisionUnknown {
		t.Errorf("nil mapping Decide = %v, want unknown", got)
	}
}

func TestAllowsFailsClosed(t *testing.T) {
	// Absent authorization data must deny, not grant.
	var missing MenuAccess
	for _, key := range AllMenuKeys() {
		if missing.Allows(key) {
			t.Errorf("nil mapping must deny %q", key)
		}
	}

	partial := MenuAccess{MenuBlog: true}
	if !partial.Allows(MenuBlog) {
		t.Error("explicit grant must allow")
	}
	if partial.Allows(MenuRoles) {
		t.Error("unknown key must deny")
	}
}

func TestCountGranted(t *testing.T) {
	access := ParseMenuAccess(`{"dashboard":true,"blog":true,"consultations":true}`)
	if got := access.CountGranted(); got != 3 {
		t.Errorf("CountGranted() = %d, want 3", got)
	}
	if got := (MenuAccess{}).CountGranted(); got != 0 {
		t.Errorf("empty CountGranted() = %d, want 0", got)
	}
}

func TestMenuAccessJSONRoundTrip(t *testing.T) {
	access := MenuAccess{MenuBlog: true}
	parsed := ParseMenuAccess(access.JSON())

	if !parsed[MenuBlog] {
		t.Error("grant lost in round trip")
	}
	if len(parsed) != len(AllMenuKeys()) {
		t.Errorf("round trip produced %d keys, want %d", len(parsed), len(AllMenuKeys()))
	}
}

func TestIsProtectedRole(t *testing.T) {
	for _, name := range []string{RoleAdmin, RoleModerator} {
		if !IsProtectedRole(name) {
			t.Errorf("%q should be protected", name)
		}
	}
	for _, name := range []string{RoleUser, "editor", ""} {
		if IsProtectedRole(name) {
			t.Errorf("%q should not be protected", name)
		}
	}
}
