// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

func seedConsultation(t *testing.T, queries *store.Queries) model.Consultation {
	t.Helper()
	c, err := queries.CreateConsultation(context.Background(), store.CreateConsultationParams{
		ContactPerson: "Dana Haddad",
		Email:         "dana@example.com",
		Description:   "Need a security assessment",
	})
	require.NoError(t, err)
	return c
}

func TestUpdateConsultationStatusAcceptsAliases(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	c := seedConsultation(t, queries)

	// Legacy alias "in_progress" stores as the canonical "scheduled".
	w := httptest.NewRecorder()
	h.UpdateConsultationStatus(w, jsonRequest(t, "PATCH", "/api/admin/consultations/1", c.ID,
		map[string]any{"status": "in_progress"}, admin))
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err := queries.GetConsultation(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationScheduled, reloaded.Status)
}

func TestUpdateConsultationStatusRejectsUnknown(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	c := seedConsultation(t, queries)

	w := httptest.NewRecorder()
	h.UpdateConsultationStatus(w, jsonRequest(t, "PATCH", "/api/admin/consultations/1", c.ID,
		map[string]any{"status": "done"}, admin))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	reloaded, err := queries.GetConsultation(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationPending, reloaded.Status)
}

func TestDeleteConsultation(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	c := seedConsultation(t, queries)

	w := httptest.NewRecorder()
	h.DeleteConsultation(w, jsonRequest(t, "DELETE", "/api/admin/consultations/1", c.ID, nil, admin))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.DeleteConsultation(w, jsonRequest(t, "DELETE", "/api/admin/consultations/1", c.ID, nil, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportConsultationsCSV(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	seedConsultation(t, queries)

	w := httptest.NewRecorder()
	h.ExportConsultations(w, jsonRequest(t, "GET", "/api/admin/consultations/export", 0, nil, admin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "consultations_")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, `"Dana Haddad"`)
	// Every field is quoted, including the header row.
	firstLine, _, _ := strings.Cut(strings.TrimPrefix(body, "\xEF\xBB\xBF"), "\r\n")
	assert.True(t, strings.HasPrefix(firstLine, `"`))
	assert.True(t, strings.HasSuffix(firstLine, `"`))
}

func TestListConsultationsFiltersAliasStatus(t *testing.T) {
	h, queries := newTestHandler(t)
	admin := adminUser(t, queries)
	c := seedConsultation(t, queries)
	require.NoError(t, queries.UpdateConsultationStatus(context.Background(), c.ID, model.ConsultationScheduled))

	// Filtering by the legacy alias finds the canonical status.
	w := httptest.NewRecorder()
	h.ListConsultations(w, jsonRequest(t, "GET", "/api/admin/consultations?status=in_progress", 0, nil, admin))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].([]any)
	require.Len(t, data, 1)
}
