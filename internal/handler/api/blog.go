// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
	"github.com/sahablabs/sahab-go/internal/util"
)

// ListPosts returns a filtered page of posts.
// GET /api/admin/blog?status=&category=&search=
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := store.ListPostsParams{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	total, err := h.queries.CountPosts(r.Context(), params)
	if err != nil {
		slog.Error("failed to count posts", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	pagination := buildPagination(parsePage(r), parsePerPage(r), total)
	params.Limit = int64(pagination.PerPage)
	params.Offset = pagination.offset()

	posts, err := h.queries.ListPosts(r.Context(), params)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeList(w, posts, pagination)
}

// GetPost returns one post.
// GET /api/admin/blog/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	post, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "post")
		return
	}
	writeData(w, http.StatusOK, post)
}

// postRequest is the create/update payload. Slug is honored on create only.
type postRequest struct {
	Title         string   `json:"title"`
	TitleAr       string   `json:"title_ar"`
	Slug          string   `json:"slug"`
	Content       string   `json:"content"`
	ContentAr     string   `json:"content_ar"`
	Excerpt       string   `json:"excerpt"`
	ExcerptAr     string   `json:"excerpt_ar"`
	FeaturedImage string   `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
}

func (req *postRequest) validate() *fieldErrors {
	errs := newFieldErrors()
	if strings.TrimSpace(req.Title) == "" {
		errs.add("title", "Title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		errs.add("content", "Content is required")
	}
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}
	if !model.IsValidPostStatus(req.Status) {
		errs.add("status", "Unknown status")
	}
	return errs
}

// CreatePost creates a post. The slug derives from the English title unless
// an explicit valid slug is supplied; either way uniqueness is enforced by
// numeric suffixing. Publishing stamps published_at.
// POST /api/admin/blog
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); errs.write(w) {
		return
	}

	base := strings.TrimSpace(req.Slug)
	if base == "" {
		base = util.Slugify(req.Title)
	} else if !util.IsValidSlug(base) {
		writeValidationError(w, "Invalid slug format",
			map[string]string{"slug": "Invalid slug format (use lowercase letters, numbers, and hyphens)"})
		return
	}
	if base == "" {
		writeValidationError(w, "Title does not produce a usable slug",
			map[string]string{"slug": "Title does not produce a usable slug"})
		return
	}

	slug, err := h.queries.EnsureUniqueSlug(r.Context(), base)
	if err != nil {
		slog.Error("failed to derive unique slug", "error", err, "base", base)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var publishedAt sql.NullTime
	if req.Status == model.PostStatusPublished {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:         strings.TrimSpace(req.Title),
		TitleAr:       strings.TrimSpace(req.TitleAr),
		Slug:          slug,
		Content:       req.Content,
		ContentAr:     req.ContentAr,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		ExcerptAr:     strings.TrimSpace(req.ExcerptAr),
		FeaturedImage: optString(req.FeaturedImage),
		Category:      optString(req.Category),
		Tags:          req.Tags,
		Status:        req.Status,
		AuthorID:      sql.NullInt64{Int64: middleware.GetUserID(r), Valid: middleware.GetUserID(r) > 0},
		PublishedAt:   publishedAt,
	})
	if err != nil {
		slog.Error("failed to create post", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("post created", "category", model.EventCategoryBlog,
		"post_id", post.ID, "slug", post.Slug, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusCreated, post)
}

// UpdatePost updates a post. The slug is immutable; published_at is stamped
// on the first transition to published and kept on later edits.
// PUT /api/admin/blog/{id}
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); errs.write(w) {
		return
	}

	current, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "post")
		return
	}

	publishedAt := current.PublishedAt
	if req.Status == model.PostStatusPublished && !publishedAt.Valid {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:            id,
		Title:         strings.TrimSpace(req.Title),
		TitleAr:       strings.TrimSpace(req.TitleAr),
		Content:       req.Content,
		ContentAr:     req.ContentAr,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		ExcerptAr:     strings.TrimSpace(req.ExcerptAr),
		FeaturedImage: optString(req.FeaturedImage),
		Category:      optString(req.Category),
		Tags:          req.Tags,
		Status:        req.Status,
		PublishedAt:   publishedAt,
	})
	if err != nil {
		notFoundOrInternal(w, err, "post")
		return
	}

	slog.Info("post updated", "category", model.EventCategoryBlog,
		"post_id", post.ID, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusOK, post)
}

// DeletePost deletes a post.
// DELETE /api/admin/blog/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "post")
		return
	}

	slog.Info("post deleted", "category", model.EventCategoryBlog,
		"post_id", id, "user_id", middleware.GetUserID(r))
	writeOK(w)
}

// translateResponse carries the machine-translated Arabic fields back to
// the editor; nothing is saved until the editor submits the form.
type translateResponse struct {
	TitleAr   string `json:"title_ar"`
	ExcerptAr string `json:"excerpt_ar"`
	ContentAr string `json:"content_ar"`
}

// TranslatePost machine-translates a post's English fields to Arabic.
// POST /api/admin/blog/{id}/translate
func (h *Handler) TranslatePost(w http.ResponseWriter, r *http.Request) {
	if h.translator == nil {
		writeError(w, http.StatusServiceUnavailable, "translation is not configured")
		return
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	post, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err, "post")
		return
	}

	titleAr, excerptAr, contentAr, err := h.translator.TranslatePost(
		r.Context(), post.Title, post.Excerpt, post.Content)
	if err != nil {
		slog.Error("translation failed", "error", err, "post_id", id)
		writeError(w, http.StatusBadGateway, "translation failed")
		return
	}

	writeData(w, http.StatusOK, translateResponse{
		TitleAr:   titleAr,
		ExcerptAr: excerptAr,
		ContentAr: contentAr,
	})
}
