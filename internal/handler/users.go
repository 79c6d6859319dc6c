// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/render"
	"github.com/sahablabs/sahab-go/internal/store"
)

// UserHandler serves the admin user screens.
type UserHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *sql.DB, renderer *render.Renderer) *UserHandler {
	return &UserHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// UserListData holds the user listing screen data.
type UserListData struct {
	Users      []model.User
	Roles      []model.Role
	Pagination Pagination
	Role       string
	Status     string
	Search     string
}

// List renders the admin user listing. Role, status and search filters are
// applied in the database query, never on the rendered page.
// GET /admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)

	params := store.ListUsersParams{
		RoleName: r.URL.Query().Get("role"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
	}

	total, err := h.queries.CountUsers(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	pagination := BuildPagination(page, int(total), perPage, redirectAdminUsers, r.URL.Query())
	params.Limit = int64(perPage)
	params.Offset = pagination.Offset()

	users, err := h.queries.ListUsers(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	roles, err := h.queries.ListRoles(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list roles", "error", err)
		return
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/users", render.TemplateData{
		Title: i18n.T(lang, "admin.users"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: UserListData{
			Users:      users,
			Roles:      roles,
			Pagination: pagination,
			Role:       params.RoleName,
			Status:     params.Status,
			Search:     params.Search,
		},
	}); err != nil {
		logAndInternalError(w, "rendering user list", "error", err)
	}
}

// UserFormData holds the user editor screen data.
type UserFormData struct {
	EditUser *model.User
	Roles    []model.Role
}

// NewForm renders the empty user editor.
// GET /admin/users/new
func (h *UserHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the user editor for an existing user.
// GET /admin/users/{id}/edit
func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}

	user, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUser(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &user)
}

func (h *UserHandler) renderForm(w http.ResponseWriter, r *http.Request, editUser *model.User) {
	roles, err := h.queries.ListRoles(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list roles", "error", err)
		return
	}

	// Inactive roles stay out of the assignment picker, but an already
	// assigned inactive role still shows on its user.
	assignable := roles[:0:0]
	for _, role := range roles {
		if role.IsActive || (editUser != nil && editUser.RoleID == role.ID) {
			assignable = append(assignable, role)
		}
	}

	lang := middleware.GetAdminLang(r)
	title := i18n.T(lang, "admin.user_new")
	if editUser != nil {
		title = i18n.T(lang, "admin.user_edit")
	}

	if err := h.renderer.Render(w, r, "admin/user_form", render.TemplateData{
		Title: title,
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: UserFormData{
			EditUser: editUser,
			Roles:    assignable,
		},
	}); err != nil {
		logAndInternalError(w, "rendering user form", "error", err)
	}
}
