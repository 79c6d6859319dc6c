// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// ValidPostStatuses contains all valid blog post statuses.
var ValidPostStatuses = []string{PostStatusDraft, PostStatusPublished, PostStatusArchived}

// IsValidPostStatus reports whether status is a known post status.
func IsValidPostStatus(status string) bool {
	for _, s := range ValidPostStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Post is a bilingual blog post. English fields are canonical; the slug is
// derived from the English title at creation time and never re-derived.
// Content is stored as markdown and rendered to sanitized HTML on the
// public site.
type Post struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	TitleAr       string         `json:"title_ar"`
	Slug          string         `json:"slug"`
	Content       string         `json:"content"`
	ContentAr     string         `json:"content_ar"`
	Excerpt       string         `json:"excerpt"`
	ExcerptAr     string         `json:"excerpt_ar"`
	FeaturedImage sql.NullString `json:"featured_image,omitempty"`
	Category      sql.NullString `json:"category,omitempty"`
	Tags          []string       `json:"tags"`
	Status        string         `json:"status"`
	Views         int64          `json:"views"`
	AuthorName    string         `json:"author_name"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	PublishedAt   sql.NullTime   `json:"published_at,omitempty"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// TitleFor returns the post title for the given language, falling back to
// English when the Arabic variant is empty.
func (p *Post) TitleFor(lang string) string {
	if lang == "ar" && p.TitleAr != "" {
		return p.TitleAr
	}
	return p.Title
}

// ContentFor returns the post body for the given language, falling back to
// English when the Arabic variant is empty.
func (p *Post) ContentFor(lang string) string {
	if lang == "ar" && p.ContentAr != "" {
		return p.ContentAr
	}
	return p.Content
}

// ExcerptFor returns the post summary for the given language, falling back
// to English when the Arabic variant is empty.
func (p *Post) ExcerptFor(lang string) string {
	if lang == "ar" && p.ExcerptAr != "" {
		return p.ExcerptAr
	}
	return p.Excerpt
}

// ParseTags deserializes the stored JSON tag list, preserving order.
// Malformed data yields an empty list.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

// TagsJSON serializes a tag list for storage.
func TagsJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
