// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahablabs/sahab-go/internal/model"
)

func requestWithUser(t *testing.T, path string, user *model.User) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		ctx := context.WithValue(r.Context(), ContextKeyUser, *user)
		r = r.WithContext(ctx)
	}
	return r
}

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestRequireMenuGrantsExplicitAccess(t *testing.T) {
	next, called := okHandler()
	handler := RequireMenu(model.MenuBlog)(next)

	user := &model.User{
		ID:   1,
		Role: "editor",
		MenuAccess: model.MenuAccess{
			model.MenuBlog: true,
		},
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithUser(t, "/api/admin/blog", user))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMenuDeniesExplicitDenial(t *testing.T) {
	next, called := okHandler()
	handler := RequireMenu(model.MenuUsers)(next)

	user := &model.User{
		ID:   1,
		Role: "editor",
		MenuAccess: model.MenuAccess{
			model.MenuBlog:  true,
			model.MenuUsers: false,
		},
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithUser(t, "/api/admin/users", user))

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestRequireMenuFailsClosedOnMissingData(t *testing.T) {
	next, called := okHandler()
	handler := RequireMenu(model.MenuRoles)(next)

	// No authorization data at all: unknown decision must deny.
	user := &model.User{ID: 1, Role: "editor", MenuAccess: nil}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithUser(t, "/api/admin/roles", user))

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireMenuWithoutUserRedirectsHTML(t *testing.T) {
	next, called := okHandler()
	handler := RequireMenu(model.MenuDashboard)(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithUser(t, "/admin", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestRequireMenuWithoutUserJSON401(t *testing.T) {
	next, _ := okHandler()
	handler := RequireMenu(model.MenuDashboard)(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithUser(t, "/api/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUser(r))
	assert.EqualValues(t, 0, GetUserID(r))
}
