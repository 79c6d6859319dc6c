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

// BlogHandler serves the admin blog screens. Mutations go through the
// JSON API; these handlers only render.
type BlogHandler struct {
	queries   *store.Queries
	renderer  *render.Renderer
	aiEnabled bool
}

// NewBlogHandler creates a new BlogHandler. aiEnabled controls whether the
// editor shows the machine-translation affordance.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer, aiEnabled bool) *BlogHandler {
	return &BlogHandler{
		queries:   store.New(db),
		renderer:  renderer,
		aiEnabled: aiEnabled,
	}
}

// BlogListData holds the blog listing screen data.
type BlogListData struct {
	Posts      []model.Post
	Categories []string
	Pagination Pagination
	Status     string
	Category   string
	Search     string
	Statuses   []string
}

// List renders the admin blog listing with status/category/search filters.
// GET /admin/blog
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)

	params := store.ListPostsParams{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	total, err := h.queries.CountPosts(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	pagination := BuildPagination(page, int(total), perPage, redirectAdminBlog, r.URL.Query())
	params.Limit = int64(perPage)
	params.Offset = pagination.Offset()

	posts, err := h.queries.ListPosts(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/blog", render.TemplateData{
		Title: i18n.T(lang, "admin.blog"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: BlogListData{
			Posts:      posts,
			Categories: categories,
			Pagination: pagination,
			Status:     params.Status,
			Category:   params.Category,
			Search:     params.Search,
			Statuses:   model.ValidPostStatuses,
		},
	}); err != nil {
		logAndInternalError(w, "rendering blog list", "error", err)
	}
}

// BlogFormData holds the blog editor screen data.
type BlogFormData struct {
	Post       *model.Post
	Categories []string
	Statuses   []string
	AIEnabled  bool
}

// NewForm renders the empty blog editor.
// GET /admin/blog/new
func (h *BlogHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the blog editor for an existing post.
// GET /admin/blog/{id}/edit
func (h *BlogHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminBlog, "Invalid post ID")
		return
	}

	post, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminBlog, "post", id,
		func(id int64) (model.Post, error) { return h.queries.GetPost(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &post)
}

func (h *BlogHandler) renderForm(w http.ResponseWriter, r *http.Request, post *model.Post) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}

	lang := middleware.GetAdminLang(r)
	title := i18n.T(lang, "admin.blog_new")
	if post != nil {
		title = i18n.T(lang, "admin.blog_edit")
	}

	if err := h.renderer.Render(w, r, "admin/blog_form", render.TemplateData{
		Title: title,
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: BlogFormData{
			Post:       post,
			Categories: categories,
			Statuses:   model.ValidPostStatuses,
			AIEnabled:  h.aiEnabled,
		},
	}); err != nil {
		logAndInternalError(w, "rendering blog form", "error", err)
	}
}
