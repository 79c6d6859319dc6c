// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/sahablabs/sahab-go/internal/auth"
	"github.com/sahablabs/sahab-go/internal/export"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

// ListUsers returns a filtered page of users. Role, status and search
// filters are applied in the database query.
// GET /api/admin/users?role=&status=&search=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := store.ListUsersParams{
		RoleName: r.URL.Query().Get("role"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
	}

	total, err := h.queries.CountUsers(r.Context(), params)
	if err != nil {
		slog.Error("failed to count users", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	pagination := buildPagination(parsePage(r), parsePerPage(r), total)
	params.Limit = int64(pagination.PerPage)
	params.Offset = pagination.offset()

	users, err := h.queries.ListUsers(r.Context(), params)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeList(w, users, pagination)
}

// userRequest is the create/update payload. Password is only read on create.
type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	RoleID   int64  `json:"role_id"`
	IsActive *bool  `json:"is_active"`
}

// isActiveOr resolves the is_active flag: an omitted field keeps the
// caller's fallback (true on create, the stored value on update).
func (req *userRequest) isActiveOr(fallback bool) bool {
	if req.IsActive == nil {
		return fallback
	}
	return *req.IsActive
}

func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func optString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func (h *Handler) validateUserRequest(req *userRequest, requirePassword bool) *fieldErrors {
	errs := newFieldErrors()
	if !validEmail(req.Email) {
		errs.add("email", "A valid email address is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		errs.add("full_name", "Full name is required")
	}
	if requirePassword && len(req.Password) < auth.MinPasswordLength {
		errs.add("password", "Password must be at least 8 characters")
	}
	if req.RoleID < 1 {
		errs.add("role_id", "A role is required")
	}
	return errs
}

// roleAssignable checks the target role exists and is active. Inactive
// roles are kept out of new assignments without revoking existing ones.
func (h *Handler) roleAssignable(w http.ResponseWriter, r *http.Request, roleID, currentRoleID int64) bool {
	role, err := h.queries.GetRole(r.Context(), roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeValidationError(w, "Unknown role", map[string]string{"role_id": "Unknown role"})
		} else {
			slog.Error("failed to get role", "error", err, "role_id", roleID)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return false
	}
	if !role.IsActive && roleID != currentRoleID {
		writeValidationError(w, "Role is inactive", map[string]string{"role_id": "Role is inactive"})
		return false
	}
	return true
}

// CreateUser creates a user.
// POST /api/admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if errs := h.validateUserRequest(&req, true); errs.write(w) {
		return
	}
	if !h.roleAssignable(w, r, req.RoleID, 0) {
		return
	}

	taken, err := h.queries.UserEmailExists(r.Context(), req.Email, 0)
	if err != nil {
		slog.Error("failed to check user email", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "email already in use")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        optString(req.Phone),
		Company:      optString(req.Company),
		RoleID:       req.RoleID,
		IsActive:     req.isActiveOr(true),
	})
	if err != nil {
		slog.Error("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("user created", "category", model.EventCategoryUser,
		"new_user_id", user.ID, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusCreated, user)
}

// UpdateUser updates a user's profile fields. An omitted is_active flag
// keeps the stored value, so a partial body cannot reactivate a
// deactivated account.
// PUT /api/admin/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if errs := h.validateUserRequest(&req, false); errs.write(w) {
		return
	}

	current, err := h.queries.GetUser(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "user")
		return
	}
	if !h.roleAssignable(w, r, req.RoleID, current.RoleID) {
		return
	}

	taken, err := h.queries.UserEmailExists(r.Context(), req.Email, id)
	if err != nil {
		slog.Error("failed to check user email", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "email already in use")
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:       id,
		Email:    req.Email,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    optString(req.Phone),
		Company:  optString(req.Company),
		RoleID:   req.RoleID,
		IsActive: req.isActiveOr(current.IsActive),
	})
	if err != nil {
		notFoundOrInternal(w, err, "user")
		return
	}

	slog.Info("user updated", "category", model.EventCategoryUser,
		"updated_user_id", user.ID, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusOK, user)
}

// resetPasswordRequest is the password reset payload.
type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetUserPassword replaces a user's password. Nothing is written unless
// both the length and the confirmation checks pass.
// POST /api/admin/users/{id}/reset-password
func (h *Handler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	errs := newFieldErrors()
	if len(req.Password) < auth.MinPasswordLength {
		errs.add("password", "Password must be at least 8 characters")
	}
	if req.Password != req.ConfirmPassword {
		errs.add("confirm_password", "Passwords do not match")
	}
	if errs.write(w) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), id, hash); err != nil {
		notFoundOrInternal(w, err, "user")
		return
	}

	slog.Info("user password reset", "category", model.EventCategoryUser,
		"target_user_id", id, "user_id", middleware.GetUserID(r))
	writeOK(w)
}

// DeleteUser deletes a user. Self-deletion is rejected.
// DELETE /api/admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if id == middleware.GetUserID(r) {
		writeError(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "user")
		return
	}

	slog.Info("user deleted", "category", model.EventCategoryUser,
		"deleted_user_id", id, "user_id", middleware.GetUserID(r))
	writeOK(w)
}

var userExportColumns = []string{
	"id", "email", "full_name", "phone", "company", "role", "is_active",
	"last_login", "created_at",
}

var userExportHeaders = []string{
	"ID", "Email", "Full Name", "Phone", "Company", "Role", "Active",
	"Last Login", "Created",
}

// ExportUsers streams the current filter set as CSV.
// GET /api/admin/users/export
func (h *Handler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	params := store.ListUsersParams{
		RoleName: r.URL.Query().Get("role"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		Limit:    int64(1<<63 - 1),
	}

	users, err := h.queries.ListUsers(r.Context(), params)
	if err != nil {
		slog.Error("failed to export users", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	rows := make([]export.Row, 0, len(users))
	for _, u := range users {
		var lastLogin any
		if u.LastLoginAt.Valid {
			lastLogin = u.LastLoginAt.Time
		}
		rows = append(rows, export.Row{
			"id":         u.ID,
			"email":      u.Email,
			"full_name":  u.FullName,
			"phone":      u.Phone.String,
			"company":    u.Company.String,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"last_login": lastLogin,
			"created_at": u.CreatedAt,
		})
	}

	lang := middleware.GetAdminLang(r)
	body := export.CSV(lang, userExportColumns, userExportHeaders, rows)
	filename := export.Filename("users", time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}
