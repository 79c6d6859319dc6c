// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

func TestCreateRoleRequiresName(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.CreateRole(w, jsonRequest(t, "POST", "/api/admin/roles", 0, map[string]any{
		"name": "   ",
	}, admin))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, false, resp["success"])
	fields := resp["fields"].(map[string]any)
	assert.Contains(t, fields, "name")
}

func TestCreateRoleDuplicateNameConflicts(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.CreateRole(w, jsonRequest(t, "POST", "/api/admin/roles", 0, map[string]any{
		"name": "moderator",
	}, admin))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateRoleDropsUnknownMenuKeys(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.CreateRole(w, jsonRequest(t, "POST", "/api/admin/roles", 0, map[string]any{
		"name": "editor",
		"menu_access": map[string]bool{
			"blog":     true,
			"settings": true, // not a real menu
		},
	}, admin))
	require.Equal(t, http.StatusCreated, w.Code)

	role, err := queries.GetRoleByName(context.Background(), "editor")
	require.NoError(t, err)
	assert.True(t, role.MenuAccess.Allows(model.MenuBlog))
	// Every canonical key is present; the unknown key is gone.
	assert.Len(t, role.MenuAccess, len(model.AllMenuKeys()))
}

func TestUpdateRoleOmittedFieldsKeepValues(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	ctx := context.Background()

	role, err := queries.CreateRole(ctx, store.CreateRoleParams{
		Name: "editor", Description: "draft wranglers", IsActive: false,
		MenuAccess: model.MenuAccess{model.MenuBlog: true},
	})
	require.NoError(t, err)

	// A body carrying only a description must not touch the name, the
	// active flag or the menu grants.
	w := httptest.NewRecorder()
	h.UpdateRole(w, jsonRequest(t, "PUT", "/api/admin/roles/9", role.ID, map[string]any{
		"description": "blog editors",
	}, admin))
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := queries.GetRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", updated.Name)
	assert.Equal(t, "blog editors", updated.Description)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.MenuAccess.Allows(model.MenuBlog))
}

func TestUpdateRoleBlankNameRejected(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	ctx := context.Background()

	role, err := queries.CreateRole(ctx, store.CreateRoleParams{
		Name: "editor", IsActive: true,
		MenuAccess: model.MenuAccess{model.MenuBlog: true},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.UpdateRole(w, jsonRequest(t, "PUT", "/api/admin/roles/9", role.ID, map[string]any{
		"name": "   ",
	}, admin))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	unchanged, err := queries.GetRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", unchanged.Name)
}

func TestProtectedRoleCannotBeRenamed(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	role, err := queries.GetRoleByName(context.Background(), model.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.UpdateRole(w, jsonRequest(t, "PUT", "/api/admin/roles/1", role.ID, map[string]any{
		"name": "superuser",
	}, admin))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoleCannotBeDeleted(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	role, err := queries.GetRoleByName(context.Background(), model.RoleModerator)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.DeleteRole(w, jsonRequest(t, "DELETE", "/api/admin/roles/2", role.ID, nil, admin))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRoleWithUsersConflicts(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	ctx := context.Background()

	role, err := queries.CreateRole(ctx, store.CreateRoleParams{
		Name: "analyst", IsActive: true,
		MenuAccess: model.MenuAccess{model.MenuDashboard: true},
	})
	require.NoError(t, err)

	_, err = queries.CreateUser(ctx, store.CreateUserParams{
		Email: "analyst@sahablabs.example", PasswordHash: "x",
		FullName: "Analyst", RoleID: role.ID, IsActive: true,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.DeleteRole(w, jsonRequest(t, "DELETE", "/api/admin/roles/9", role.ID, nil, admin))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Still there.
	_, err = queries.GetRole(ctx, role.ID)
	assert.NoError(t, err)
}
