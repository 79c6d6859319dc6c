// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON admin API. All mutating admin operations
// go through these handlers; the HTML screens only render.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/sahablabs/sahab-go/internal/ai"
	"github.com/sahablabs/sahab-go/internal/imaging"
	"github.com/sahablabs/sahab-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db             *sql.DB
	queries        *store.Queries
	sessionManager *scs.SessionManager
	translator     *ai.Translator // nil when translation is not configured
	processor      *imaging.Processor
}

// NewHandler creates a new API handler. translator may be nil.
func NewHandler(db *sql.DB, sm *scs.SessionManager, translator *ai.Translator, processor *imaging.Processor) *Handler {
	return &Handler{
		db:             db,
		queries:        store.New(db),
		sessionManager: sm,
		translator:     translator,
		processor:      processor,
	}
}

// defaultPerPage is the API page size when none is requested.
const defaultPerPage = 20

// perPageOptions are the accepted API page sizes.
var perPageOptions = []int{10, 20, 50, 100}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePerPage(r *http.Request) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil {
		return defaultPerPage
	}
	for _, option := range perPageOptions {
		if perPage == option {
			return perPage
		}
	}
	return defaultPerPage
}

func buildPagination(page, perPage int, total int64) Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

func (p Pagination) offset() int64 {
	return int64((p.Page - 1) * p.PerPage)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeData writes a successful response.
func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{"success": true, "data": data})
}

// writeList writes a successful list response with pagination metadata.
func writeList(w http.ResponseWriter, data any, pagination Pagination) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

// writeOK writes a bare success response for mutations with no payload.
func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"success": false, "error": message})
}

// writeValidationError writes a 422 with the field-keyed error map; first
// is the first violated rule, surfaced as the top-level error.
func writeValidationError(w http.ResponseWriter, first string, fields map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"success": false,
		"error":   first,
		"fields":  fields,
	})
}

// fieldErrors accumulates validation failures in check order.
type fieldErrors struct {
	fields map[string]string
	first  string
}

func newFieldErrors() *fieldErrors {
	return &fieldErrors{fields: make(map[string]string)}
}

func (e *fieldErrors) add(field, message string) {
	if _, exists := e.fields[field]; exists {
		return
	}
	e.fields[field] = message
	if e.first == "" {
		e.first = message
	}
}

func (e *fieldErrors) ok() bool { return len(e.fields) == 0 }

// write reports the collected errors; returns true if any were written.
func (e *fieldErrors) write(w http.ResponseWriter) bool {
	if e.ok() {
		return false
	}
	writeValidationError(w, e.first, e.fields)
	return true
}

// idParam parses the {id} route parameter, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid ID")
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// notFoundOrInternal maps sql.ErrNoRows to 404 and everything else to 500.
func notFoundOrInternal(w http.ResponseWriter, err error, entityName string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, entityName+" not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
