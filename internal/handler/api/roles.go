// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

// ListRoles returns all roles.
// GET /api/admin/roles
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.queries.ListRoles(r.Context())
	if err != nil {
		slog.Error("failed to list roles", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeData(w, http.StatusOK, roles)
}

// roleRequest is the create payload.
type roleRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
	MenuAccess  map[string]bool `json:"menu_access"`
}

// menuAccessFromMap maps a request menu_access object onto the canonical
// key set, dropping unknown keys.
func menuAccessFromMap(m map[string]bool) model.MenuAccess {
	access := make(model.MenuAccess)
	for k, v := range m {
		key := model.MenuKey(k)
		if model.IsValidMenuKey(key) {
			access[key] = v
		}
	}
	return access.Normalize()
}

func (req *roleRequest) menuAccess() model.MenuAccess {
	return menuAccessFromMap(req.MenuAccess)
}

func (req *roleRequest) isActive() bool {
	if req.IsActive == nil {
		return true
	}
	return *req.IsActive
}

// roleUpdateRequest is the update payload. Omitted fields keep their
// stored values.
type roleUpdateRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
	MenuAccess  map[string]bool `json:"menu_access"`
}

// CreateRole creates a role.
// POST /api/admin/roles
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	errs := newFieldErrors()
	if req.Name == "" {
		errs.add("name", "Name is required")
	}
	if errs.write(w) {
		return
	}

	taken, err := h.queries.RoleNameExists(r.Context(), req.Name, 0)
	if err != nil {
		slog.Error("failed to check role name", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "role name already exists")
		return
	}

	role, err := h.queries.CreateRole(r.Context(), store.CreateRoleParams{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    req.isActive(),
		MenuAccess:  req.menuAccess(),
	})
	if err != nil {
		slog.Error("failed to create role", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("role created", "category", model.EventCategoryRole,
		"role_id", role.ID, "name", role.Name, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusCreated, role)
}

// UpdateRole applies a partial update: fields missing from the body keep
// their stored values. Protected roles cannot be renamed.
// PUT /api/admin/roles/{id}
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req roleUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	current, err := h.queries.GetRole(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "role")
		return
	}

	name := current.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}

	errs := newFieldErrors()
	if name == "" {
		errs.add("name", "Name is required")
	}
	if errs.write(w) {
		return
	}

	if current.IsProtected() && name != current.Name {
		writeError(w, http.StatusForbidden, "protected roles cannot be renamed")
		return
	}

	if name != current.Name {
		taken, err := h.queries.RoleNameExists(r.Context(), name, id)
		if err != nil {
			slog.Error("failed to check role name", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "role name already exists")
			return
		}
	}

	description := current.Description
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}
	isActive := current.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	menuAccess := current.MenuAccess
	if req.MenuAccess != nil {
		menuAccess = menuAccessFromMap(req.MenuAccess)
	}

	role, err := h.queries.UpdateRole(r.Context(), store.UpdateRoleParams{
		ID:          id,
		Name:        name,
		Description: description,
		IsActive:    isActive,
		MenuAccess:  menuAccess,
	})
	if err != nil {
		notFoundOrInternal(w, err, "role")
		return
	}

	slog.Info("role updated", "category", model.EventCategoryRole,
		"role_id", role.ID, "name", role.Name, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusOK, role)
}

// DeleteRole deletes a role. Protected roles and roles that still have
// users assigned cannot be deleted.
// DELETE /api/admin/roles/{id}
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	role, err := h.queries.GetRole(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "role")
		return
	}

	if role.IsProtected() {
		writeError(w, http.StatusForbidden, "protected roles cannot be deleted")
		return
	}

	count, err := h.queries.CountUsersWithRole(r.Context(), id)
	if err != nil {
		slog.Error("failed to count users with role", "error", err, "role_id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if count > 0 {
		writeError(w, http.StatusConflict, "role still has users assigned")
		return
	}

	if err := h.queries.DeleteRole(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "role")
		return
	}

	slog.Info("role deleted", "category", model.EventCategoryRole,
		"role_id", id, "name", role.Name, "user_id", middleware.GetUserID(r))
	writeOK(w)
}
