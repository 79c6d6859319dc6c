// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// menu-based authorization and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/session"
	"github.com/sahablabs/sahab-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser carries the authenticated user.
const ContextKeyUser ContextKey = "user"

// Auth requires a logged-in session. HTML requests are redirected to the
// login page; API requests get a JSON 401.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser loads the session user, with role name and menu access joined
// in, into the request context. Stale sessions (deleted or deactivated
// users) are destroyed. Must run after Auth.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUser(r.Context(), userID)
			if err != nil || !user.IsActive {
				_ = sm.Destroy(r.Context())
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMenu gates a route on one admin menu capability. The decision is
// tri-state; anything other than an explicit grant is a denial, so a role
// with missing or malformed authorization data cannot reach the route.
func RequireMenu(key model.MenuKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				unauthorized(w, r)
				return
			}

			if decision := user.MenuAccess.Decide(key); decision != model.DecisionGranted {
				slog.Warn("menu access denied",
					"category", model.EventCategoryAuth,
					"menu", string(key),
					"user_id", user.ID,
					"user_role", user.Role,
					"method", r.Method,
					"path", r.URL.Path,
				)
				forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"authentication required"}`))
		return
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
		return
	}
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// GetUser retrieves the current user from the request context, or nil.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID, or 0 when unauthenticated.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// globalSessionManager is set by SetSessionManager and used by GetAdminLang.
var globalSessionManager *scs.SessionManager

// SetSessionManager sets the session manager used for admin language
// lookups. Call once during application startup.
func SetSessionManager(sm *scs.SessionManager) {
	globalSessionManager = sm
}

// GetAdminLang returns the admin UI language: the session preference if
// set, otherwise the best Accept-Language match.
func GetAdminLang(r *http.Request) string {
	if globalSessionManager != nil {
		if lang := globalSessionManager.GetString(r.Context(), session.KeyAdminLang); lang != "" && i18n.IsSupported(lang) {
			return lang
		}
	}
	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		return i18n.MatchLanguage(acceptLang)
	}
	return i18n.DefaultLanguage()
}
