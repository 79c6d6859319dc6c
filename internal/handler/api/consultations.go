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

// consultationListParams builds store filters from the query string,
// normalizing legacy status aliases.
func consultationListParams(r *http.Request) store.ListConsultationsParams {
	params := store.ListConsultationsParams{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if params.Status != "" {
		if canonical, ok := model.NormalizeConsultationStatus(params.Status); ok {
			params.Status = canonical
		}
	}
	return params
}

// ListConsultations returns a filtered page of consultation requests.
// GET /api/admin/consultations?status=&search=
func (h *Handler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	params := consultationListParams(r)

	total, err := h.queries.CountConsultations(r.Context(), params)
	if err != nil {
		slog.Error("failed to count consultations", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	pagination := buildPagination(parsePage(r), parsePerPage(r), total)
	params.Limit = int64(pagination.PerPage)
	params.Offset = pagination.offset()

	consultations, err := h.queries.ListConsultations(r.Context(), params)
	if err != nil {
		slog.Error("failed to list consultations", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeList(w, consultations, pagination)
}

// consultationStatusRequest is the PATCH payload.
type consultationStatusRequest struct {
	Status string `json:"status"`
}

// UpdateConsultationStatus changes a consultation's status. Legacy aliases
// ("new", "in_progress") are accepted and stored canonically.
// PATCH /api/admin/consultations/{id}
func (h *Handler) UpdateConsultationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req consultationStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, ok := model.NormalizeConsultationStatus(req.Status)
	if !ok {
		writeValidationError(w, "Unknown status", map[string]string{"status": "Unknown status"})
		return
	}

	if err := h.queries.UpdateConsultationStatus(r.Context(), id, status); err != nil {
		notFoundOrInternal(w, err, "consultation")
		return
	}

	slog.Info("consultation status updated", "category", model.EventCategorySystem,
		"consultation_id", id, "status", status, "user_id", middleware.GetUserID(r))
	writeData(w, http.StatusOK, map[string]any{"id": id, "status": status})
}

// DeleteConsultation deletes a consultation request.
// DELETE /api/admin/consultations/{id}
func (h *Handler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteConsultation(r.Context(), id); err != nil {
		notFoundOrInternal(w, err, "consultation")
		return
	}

	slog.Info("consultation deleted", "category", model.EventCategorySystem,
		"consultation_id", id, "user_id", middleware.GetUserID(r))
	writeOK(w)
}

// consultationExportColumns are the CSV columns in output order.
var consultationExportColumns = []string{
	"id", "contact_person", "company_name", "email", "phone", "service_type",
	"budget", "description", "preferred_date", "status", "country", "created_at",
}

var consultationExportHeaders = []string{
	"ID", "Contact Person", "Company", "Email", "Phone", "Service",
	"Budget", "Description", "Preferred Date", "Status", "Country", "Created",
}

// ExportConsultations streams the current filter set as CSV. The export
// ignores pagination and includes every matching row; date columns follow
// the admin locale.
// GET /api/admin/consultations/export
func (h *Handler) ExportConsultations(w http.ResponseWriter, r *http.Request) {
	params := consultationListParams(r)

	consultations, err := h.queries.ListAllConsultations(r.Context(), params)
	if err != nil {
		slog.Error("failed to export consultations", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	rows := make([]export.Row, 0, len(consultations))
	for _, c := range consultations {
		var preferred any
		if c.PreferredDate.Valid {
			preferred = c.PreferredDate.Time
		}
		rows = append(rows, export.Row{
			"id":             c.ID,
			"contact_person": c.ContactPerson,
			"company_name":   c.CompanyName.String,
			"email":          c.Email,
			"phone":          c.Phone.String,
			"service_type":   c.ServiceType.String,
			"budget":         c.Budget.String,
			"description":    c.Description,
			"preferred_date": preferred,
			"status":         c.Status,
			"country":        c.Country.String,
			"created_at":     c.CreatedAt,
		})
	}

	lang := middleware.GetAdminLang(r)
	body := export.CSV(lang, consultationExportColumns, consultationExportHeaders, rows)
	filename := export.Filename("consultations", time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}
