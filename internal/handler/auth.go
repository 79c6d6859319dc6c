// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTML handlers for the public site and the
// admin back office.
package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/sahablabs/sahab-go/internal/auth"
	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/render"
	"github.com/sahablabs/sahab-go/internal/session"
	"github.com/sahablabs/sahab-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the admin login page. Authenticated users are
// redirected straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID); userID > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: i18n.T(lang, "auth.login"),
		Lang:  lang,
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetAdminLang(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.invalid_form_data"))
		return
	}

	email := formString(r, "email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.email_password_required"))
		return
	}

	clientIP := middleware.ClientIP(r)

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		slog.Warn("login attempt on locked account",
			"category", model.EventCategoryAuth, "email", email, "ip", clientIP)
		flashError(w, r, h.renderer, redirectLogin,
			i18n.T(lang, "auth.account_locked", formatDuration(remaining)))
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: user not found",
				"category", model.EventCategoryAuth, "email", email, "ip", clientIP)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failures for unknown emails too, to block enumeration.
		h.recordFailure(w, r, lang, email)
		return
	}

	if !user.IsActive {
		// Rejected before the password check so a disabled account behaves
		// identically for right and wrong passwords.
		slog.Warn("login attempt for inactive user",
			"category", model.EventCategoryAuth, "user_id", user.ID, "ip", clientIP)
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.invalid_credentials"))
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.invalid_credentials"))
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password",
			"category", model.EventCategoryAuth, "user_id", user.ID, "ip", clientIP)
		h.recordFailure(w, r, lang, email)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
		// Not fatal for the login itself.
	}

	// Regenerate the session ID to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, redirectAdmin, i18n.T(lang, "auth.welcome_back", user.FullName))
}

// recordFailure registers a failed attempt and answers with the matching
// flash message: lockout notice or a generic invalid-credentials error.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, lang, email string) {
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		flashError(w, r, h.renderer, redirectLogin,
			i18n.T(lang, "auth.too_many_attempts", formatDuration(lockDuration)))
		return
	}
	flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.invalid_credentials"))
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}
	if userID > 0 {
		slog.Info("user logged out", "user_id", userID)
	}

	lang := middleware.GetAdminLang(r)
	flashAndRedirect(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.logged_out"), "info")
}

// SetLanguage stores the admin UI language preference in the session.
// POST /admin/language
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if lang := formString(r, "lang"); i18n.IsSupported(lang) {
		h.sessionManager.Put(r.Context(), session.KeyAdminLang, lang)
	}

	redirect := r.FormValue("redirect")
	if redirect == "" || redirect[0] != '/' {
		redirect = redirectAdmin
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// formatDuration formats a lockout duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
