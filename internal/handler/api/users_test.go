// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/auth"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

func TestCreateUserValidation(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.CreateUser(w, jsonRequest(t, "POST", "/api/admin/users", 0, map[string]any{
		"email":    "not-an-email",
		"password": "short",
	}, admin))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	fields := resp["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "role_id")
	// The top-level error is the first violated rule.
	assert.Equal(t, fields["email"], resp["error"])
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	role, err := queries.GetRoleByName(context.Background(), model.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.CreateUser(w, jsonRequest(t, "POST", "/api/admin/users", 0, map[string]any{
		"email":     store.DefaultAdminEmail,
		"password":  "password123",
		"full_name": "Duplicate",
		"role_id":   role.ID,
	}, admin))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUserRejectsInactiveRole(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	ctx := context.Background()

	dormant, err := queries.CreateRole(ctx, store.CreateRoleParams{
		Name: "dormant", IsActive: false,
		MenuAccess: model.MenuAccess{model.MenuDashboard: true},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.CreateUser(w, jsonRequest(t, "POST", "/api/admin/users", 0, map[string]any{
		"email":     "new@sahablabs.example",
		"password":  "password123",
		"full_name": "New User",
		"role_id":   dormant.ID,
	}, admin))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateUserOmittedIsActiveKeepsDeactivation(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	ctx := context.Background()

	role, err := queries.GetRoleByName(ctx, model.RoleUser)
	require.NoError(t, err)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email: "dormant@sahablabs.example", PasswordHash: "x",
		FullName: "Dormant User", RoleID: role.ID, IsActive: false,
	})
	require.NoError(t, err)

	// A profile edit without is_active must not reactivate the account.
	w := httptest.NewRecorder()
	h.UpdateUser(w, jsonRequest(t, "PUT", "/api/admin/users/9", user.ID, map[string]any{
		"email":     user.Email,
		"full_name": "Dormant Renamed",
		"role_id":   role.ID,
	}, admin))
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err := queries.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dormant Renamed", reloaded.FullName)
	assert.False(t, reloaded.IsActive)
}

func TestResetPasswordValidatesBeforeWriting(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	originalHash := admin.PasswordHash

	// Too short.
	w := httptest.NewRecorder()
	h.ResetUserPassword(w, jsonRequest(t, "POST", "/reset", admin.ID, map[string]any{
		"password": "short", "confirm_password": "short",
	}, admin))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Mismatched confirmation.
	w = httptest.NewRecorder()
	h.ResetUserPassword(w, jsonRequest(t, "POST", "/reset", admin.ID, map[string]any{
		"password": "password123", "confirm_password": "password124",
	}, admin))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Hash untouched after both failures.
	reloaded, err := queries.GetUser(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, reloaded.PasswordHash)

	// Valid reset goes through.
	w = httptest.NewRecorder()
	h.ResetUserPassword(w, jsonRequest(t, "POST", "/reset", admin.ID, map[string]any{
		"password": "password123", "confirm_password": "password123",
	}, admin))
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err = queries.GetUser(context.Background(), admin.ID)
	require.NoError(t, err)
	ok, err := auth.CheckPassword("password123", reloaded.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteUserSelfRejected(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.DeleteUser(w, jsonRequest(t, "DELETE", "/api/admin/users/1", admin.ID, nil, admin))

	assert.Equal(t, http.StatusConflict, w.Code)

	_, err := queries.GetUser(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestExportUsersCSV(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)

	w := httptest.NewRecorder()
	h.ExportUsers(w, jsonRequest(t, "GET", "/api/admin/users/export", 0, nil, admin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "users_")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"), "export must carry a UTF-8 BOM")
	assert.Contains(t, body, `"`+store.DefaultAdminEmail+`"`)
}
