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
	"github.com/sahablabs/sahab-go/internal/util"
)

// ContactHandler serves the admin contact message screens.
type ContactHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB, renderer *render.Renderer) *ContactHandler {
	return &ContactHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ContactRow is one listing row with the condensed user-agent summary.
type ContactRow struct {
	model.ContactMessage
	UASummary string
}

// ContactListData holds the contact message listing screen data.
type ContactListData struct {
	Messages    []ContactRow
	Pagination  Pagination
	UnreadOnly  bool
	UnreadCount int64
}

// List renders the contact message listing, newest first.
// GET /admin/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)
	unreadOnly := r.URL.Query().Get("unread") == "1"

	total, err := h.queries.CountContactMessages(r.Context(), unreadOnly)
	if err != nil {
		logAndInternalError(w, "failed to count contact messages", "error", err)
		return
	}

	pagination := BuildPagination(page, int(total), perPage, redirectAdminContacts, r.URL.Query())

	messages, err := h.queries.ListContactMessages(r.Context(), store.ListContactMessagesParams{
		Unread: unreadOnly,
		Limit:  int64(perPage),
		Offset: pagination.Offset(),
	})
	if err != nil {
		logAndInternalError(w, "failed to list contact messages", "error", err)
		return
	}

	rows := make([]ContactRow, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, ContactRow{
			ContactMessage: m,
			UASummary:      util.SummarizeUserAgent(m.UserAgent.String),
		})
	}

	unreadCount, err := h.queries.CountContactMessages(r.Context(), true)
	if err != nil {
		logAndInternalError(w, "failed to count unread messages", "error", err)
		return
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/contacts", render.TemplateData{
		Title: i18n.T(lang, "admin.contacts"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: ContactListData{
			Messages:    rows,
			Pagination:  pagination,
			UnreadOnly:  unreadOnly,
			UnreadCount: unreadCount,
		},
	}); err != nil {
		logAndInternalError(w, "rendering contact list", "error", err)
	}
}
