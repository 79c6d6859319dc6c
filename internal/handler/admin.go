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

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardData holds the dashboard statistics.
type DashboardData struct {
	PostCount           int64
	PublishedPostCount  int64
	ConsultationCount   int64
	ConsultationsByStat map[string]int64
	UnreadContactCount  int64
	UserCount           int64
	RecentEvents        []model.Event
}

// Dashboard renders the admin dashboard with content statistics and the
// recent event log.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := DashboardData{}

	var err error
	if data.PostCount, err = h.queries.CountPosts(ctx, store.ListPostsParams{}); err != nil {
		slog.Error("failed to count posts", "error", err)
	}
	if data.PublishedPostCount, err = h.queries.CountPosts(ctx, store.ListPostsParams{
		Status: model.PostStatusPublished,
	}); err != nil {
		slog.Error("failed to count published posts", "error", err)
	}
	if data.ConsultationCount, err = h.queries.CountConsultations(ctx, store.ListConsultationsParams{}); err != nil {
		slog.Error("failed to count consultations", "error", err)
	}
	if data.ConsultationsByStat, err = h.queries.CountConsultationsByStatus(ctx); err != nil {
		slog.Error("failed to count consultations by status", "error", err)
	}
	if data.UnreadContactCount, err = h.queries.CountContactMessages(ctx, true); err != nil {
		slog.Error("failed to count unread contact messages", "error", err)
	}
	if data.UserCount, err = h.queries.CountUsers(ctx, store.ListUsersParams{}); err != nil {
		slog.Error("failed to count users", "error", err)
	}
	if data.RecentEvents, err = h.queries.ListRecentEvents(ctx, 10); err != nil {
		slog.Error("failed to list recent events", "error", err)
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: i18n.T(lang, "admin.dashboard"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}
