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

// ConsultationHandler serves the admin consultation screens.
type ConsultationHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(db *sql.DB, renderer *render.Renderer) *ConsultationHandler {
	return &ConsultationHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ConsultationRow is one listing row: the consultation plus the condensed
// user-agent summary for display.
type ConsultationRow struct {
	model.Consultation
	UASummary string
}

// ConsultationListData holds the consultation listing screen data.
type ConsultationListData struct {
	Consultations []ConsultationRow
	Pagination    Pagination
	Status        string
	Search        string
	Statuses      []string
	StatusCounts  map[string]int64
}

// List renders the consultation listing with status and search filters.
// GET /admin/consultations
func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)

	params := store.ListConsultationsParams{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	// Legacy status aliases in bookmarked filter URLs keep working.
	if params.Status != "" {
		if canonical, ok := model.NormalizeConsultationStatus(params.Status); ok {
			params.Status = canonical
		}
	}

	total, err := h.queries.CountConsultations(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to count consultations", "error", err)
		return
	}

	pagination := BuildPagination(page, int(total), perPage, redirectAdminConsultations, r.URL.Query())
	params.Limit = int64(perPage)
	params.Offset = pagination.Offset()

	consultations, err := h.queries.ListConsultations(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "failed to list consultations", "error", err)
		return
	}

	rows := make([]ConsultationRow, 0, len(consultations))
	for _, c := range consultations {
		rows = append(rows, ConsultationRow{
			Consultation: c,
			UASummary:    util.SummarizeUserAgent(c.UserAgent.String),
		})
	}

	counts, err := h.queries.CountConsultationsByStatus(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count consultations by status", "error", err)
		return
	}

	lang := middleware.GetAdminLang(r)
	if err := h.renderer.Render(w, r, "admin/consultations", render.TemplateData{
		Title: i18n.T(lang, "admin.consultations"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data: ConsultationListData{
			Consultations: rows,
			Pagination:    pagination,
			Status:        params.Status,
			Search:        params.Search,
			Statuses:      model.ValidConsultationStatuses,
			StatusCounts:  counts,
		},
	}); err != nil {
		logAndInternalError(w, "rendering consultation list", "error", err)
	}
}
