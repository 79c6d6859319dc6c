// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/sahablabs/sahab-go/internal/imaging"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
)

// Upload accepts one multipart image upload under the "file" field and
// returns the stored URLs. The image is re-encoded, which strips EXIF
// metadata, and a thumbnail is generated alongside.
// POST /api/admin/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing "file" field`)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.processor.Process(file)
	if err != nil {
		slog.Warn("rejected upload", "category", model.EventCategoryBlog,
			"error", err, "filename", header.Filename, "user_id", middleware.GetUserID(r))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.Info("image uploaded", "category", model.EventCategoryBlog,
		"url", result.URL, "size", result.Size, "user_id", middleware.GetUserID(r))

	writeData(w, http.StatusCreated, map[string]any{
		"url":       result.URL,
		"thumb_url": result.ThumbURL,
		"width":     result.Width,
		"height":    result.Height,
		"mime_type": result.MimeType,
		"size":      result.Size,
	})
}
