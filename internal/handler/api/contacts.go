// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sahablabs/sahab-go/internal/export"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

// ListContactMessages returns a page of contact messages, newest first.
// GET /api/admin/contacts?unread=1
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "1"

	total, err := h.queries.CountContactMessages(r.Context(), unreadOnly)
	if err != nil {
		slog.Error("failed to count contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	pagination := buildPagination(parsePage(r), parsePerPage(r), total)

	messages, err := h.queries.ListContactMessages(r.Context(), store.ListContactMessagesParams{
		Unread: unreadOnly,
		Limit:  int64(pagination.PerPage),
		Offset: pagination.offset(),
	})
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeList(w, messages, pagination)
}

// MarkContactMessageRead flags a message as read.
// PATCH /api/admin/contacts/{id}
func (h *Handler) MarkContactMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.MarkContactMessageRead(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "message")
		return
	}
	writeOK(w)
}

// DeleteContactMessage deletes a contact message.
// DELETE /api/admin/contacts/{id}
func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "message")
		return
	}

	slog.Info("contact message deleted", "category", model.EventCategorySystem,
		"message_id", id, "user_id", middleware.GetUserID(r))
	writeOK(w)
}

var contactExportColumns = []string{
	"id", "name", "email", "subject", "message", "is_read", "country", "created_at",
}

var contactExportHeaders = []string{
	"ID", "Name", "Email", "Subject", "Message", "Read", "Country", "Created",
}

// ExportContactMessages streams all contact messages as CSV.
// GET /api/admin/contacts/export
func (h *Handler) ExportContactMessages(w http.ResponseWriter, r *http.Request) {
	// No upper bound: exports bypass pagination.
	messages, err := h.queries.ListContactMessages(r.Context(), store.ListContactMessagesParams{
		Limit:  int64(1<<63 - 1),
		Offset: 0,
	})
	if err != nil {
		slog.Error("failed to export contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	rows := make([]export.Row, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, export.Row{
			"id":         m.ID,
			"name":       m.Name,
			"email":      m.Email,
			"subject":    m.Subject.String,
			"message":    m.Message,
			"is_read":    m.IsRead,
			"country":    m.Country.String,
			"created_at": m.CreatedAt,
		})
	}

	lang := middleware.GetAdminLang(r)
	body := export.CSV(lang, contactExportColumns, contactExportHeaders, rows)
	filename := export.Filename("contacts", time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}
