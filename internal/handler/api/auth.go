// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/sahablabs/sahab-go/internal/middleware"
)

// Logout destroys the session.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if userID > 0 {
		slog.Info("user logged out", "user_id", userID)
	}
	writeOK(w)
}
