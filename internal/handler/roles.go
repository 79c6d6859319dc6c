// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/render"
	"github.com/sahablabs/sahab-go/internal/store"
)

// RoleHandler serves the admin role screens.
type RoleHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(db *sql.DB, renderer *render.Renderer) *RoleHandler {
	return &RoleHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// RoleListItem is one row of the role listing: the role plus how many
// users hold it.
type RoleListItem struct {
	Role      model.Role
	UserCount int64
}

// RoleListData holds the role listing screen data.
type RoleListData struct {
	Roles     []RoleListItem
	MenuCount int
}

// List renders the role listing with per-role user counts.
// GET /admin/roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.queries.ListRoles(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list roles", "error", err)
		return
	}

	items := make([]RoleListItem, 0, len(roles))
	for _, role := range roles {
		count, err := h.queries.CountUsersWithRole(r.Context(), role.ID)
		if err != nil {
			slog.Error("failed to count users with role", "error", err, "role_id", role.ID)
		}
		items = append(items, RoleListItem{Role: role, UserCount: count})
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/roles", render.TemplateData{
		Title: i18n.T(lang, "admin.roles"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: RoleListData{
			Roles:     items,
			MenuCount: len(model.AllMenuKeys()),
		},
	}); err != nil {
		logAndInternalError(w, "rendering role list", "error", err)
	}
}

// RoleFormData holds the role editor screen data.
type RoleFormData struct {
	Role     *model.Role
	MenuKeys []model.MenuKey
}

// NewForm renders the empty role editor.
// GET /admin/roles/new
func (h *RoleHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the role editor for an existing role.
// GET /admin/roles/{id}/edit
func (h *RoleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminRoles, "Invalid role ID")
		return
	}

	role, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminRoles, "role", id,
		func(id int64) (model.Role, error) { return h.queries.GetRole(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &role)
}

func (h *RoleHandler) renderForm(w http.ResponseWriter, r *http.Request, role *model.Role) {
	lang := middleware.GetAdminLang(r)
	title := i18n.T(lang, "admin.role_new")
	if role != nil {
		title = i18n.T(lang, "admin.role_edit")
	}

	if err := h.renderer.Render(w, r, "admin/role_form", render.TemplateData{
		Title: title,
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: RoleFormData{
			Role:     role,
			MenuKeys: model.AllMenuKeys(),
		},
	}); err != nil {
		logAndInternalError(w, "rendering role form", "error", err)
	}
}
