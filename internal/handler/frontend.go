// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sahablabs/sahab-go/internal/cache"
	"github.com/sahablabs/sahab-go/internal/geoip"
	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/render"
	"github.com/sahablabs/sahab-go/internal/service"
	"github.com/sahablabs/sahab-go/internal/store"
)

// publicPerPage is the public blog page size.
const publicPerPage = 9

// FrontendHandler serves the public marketing site.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    cache.Cache
	cacheTTL time.Duration
	geo      *geoip.Lookup
	views    *service.ViewCounter
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, c cache.Cache, cacheTTL time.Duration, geo *geoip.Lookup, views *service.ViewCounter) *FrontendHandler {
	return &FrontendHandler{
		queries:  store.New(db),
		renderer: renderer,
		cache:    c,
		cacheTTL: cacheTTL,
		geo:      geo,
		views:    views,
	}
}

// pageLang resolves the display language: the /{lang} URL prefix when
// present and supported, otherwise the Accept-Language best match.
func pageLang(r *http.Request) string {
	if lang := chi.URLParam(r, "lang"); lang != "" && i18n.IsSupported(lang) {
		return lang
	}
	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		return i18n.MatchLanguage(acceptLang)
	}
	return i18n.DefaultLanguage()
}

// langPrefix returns the URL prefix for in-site links on language-prefixed
// pages, e.g. "/ar".
func langPrefix(r *http.Request) string {
	if lang := chi.URLParam(r, "lang"); lang != "" && i18n.IsSupported(lang) {
		return "/" + lang
	}
	return ""
}

func (h *FrontendHandler) renderPage(w http.ResponseWriter, r *http.Request, page, titleKey string, data any) {
	lang := pageLang(r)
	if err := h.renderer.Render(w, r, "frontend/"+page, render.TemplateData{
		Title: i18n.T(lang, titleKey),
		Lang:  lang,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering "+page, "error", err)
	}
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := pageLang(r)

	// The landing page teases the three latest published posts.
	posts, err := h.cachedPublishedPosts(r.Context(), 3, 0)
	if err != nil {
		slog.Error("failed to load recent posts for home page", "error", err)
	}

	h.renderPage(w, r, "home", "home.hero.title", struct {
		Posts      []model.Post
		LangPrefix string
		Lang       string
	}{posts, langPrefix(r), lang})
}

// Services renders the services overview.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "services", "nav.services", struct {
		ServiceTypes []string
		LangPrefix   string
	}{model.ServiceTypes, langPrefix(r)})
}

// About renders the about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "about", "about.title", struct{ LangPrefix string }{langPrefix(r)})
}

// BlogIndexData holds the public blog listing data.
type BlogIndexData struct {
	Posts      []model.Post
	Pagination Pagination
	LangPrefix string
	Lang       string
}

// BlogIndex renders the public blog listing: published posts only, cached.
func (h *FrontendHandler) BlogIndex(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	total, err := h.queries.CountPosts(r.Context(), store.ListPostsParams{
		Status: model.PostStatusPublished,
	})
	if err != nil {
		logAndInternalError(w, "failed to count published posts", "error", err)
		return
	}

	pagination := BuildPagination(page, int(total), publicPerPage, langPrefix(r)+RouteBlog, r.URL.Query())

	posts, err := h.cachedPublishedPosts(r.Context(), publicPerPage, pagination.Offset())
	if err != nil {
		logAndInternalError(w, "failed to list published posts", "error", err)
		return
	}

	h.renderPage(w, r, "blog", "nav.blog", BlogIndexData{
		Posts:      posts,
		Pagination: pagination,
		LangPrefix: langPrefix(r),
		Lang:       pageLang(r),
	})
}

// cachedPublishedPosts serves the published-post listing through the cache.
// Entries expire on TTL rather than explicit invalidation, so an edit can
// take up to the TTL to appear publicly.
func (h *FrontendHandler) cachedPublishedPosts(ctx context.Context, limit, offset int64) ([]model.Post, error) {
	key := fmt.Sprintf("blog:published:%d:%d", limit, offset)
	return cache.GetOrFillJSON(ctx, h.cache, key, h.cacheTTL, func(ctx context.Context) ([]model.Post, error) {
		return h.queries.ListPublishedPosts(ctx, limit, offset)
	})
}

// BlogPostData holds the public post page data.
type BlogPostData struct {
	Post       model.Post
	LangPrefix string
	Lang       string
}

// BlogPost renders one published post and buffers a view count.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get post", "error", err, "slug", slug)
		return
	}
	if !post.IsPublished() {
		http.NotFound(w, r)
		return
	}

	h.views.Record(post.ID)

	lang := pageLang(r)
	if err := h.renderer.Render(w, r, "frontend/blog_post", render.TemplateData{
		Title: post.TitleFor(lang),
		Lang:  lang,
		Data: BlogPostData{
			Post:       post,
			LangPrefix: langPrefix(r),
			Lang:       lang,
		},
	}); err != nil {
		logAndInternalError(w, "rendering post", "error", err, "slug", slug)
	}
}

// ContactDetails holds the directly-reachable contact channels shown on the
// contact page. Values come from the settings table so they can be changed
// without a deploy.
type ContactDetails struct {
	Email   string
	Phone   string
	Address string
}

func (h *FrontendHandler) contactDetails(ctx context.Context) ContactDetails {
	details := ContactDetails{}
	for _, s := range []struct {
		key      string
		fallback string
		dst      *string
	}{
		{"contact_email", "hello@sahablabs.example", &details.Email},
		{"contact_phone", "", &details.Phone},
		{"contact_address", "", &details.Address},
	} {
		value, err := h.queries.GetSetting(ctx, s.key, s.fallback)
		if err != nil {
			slog.Error("failed to load setting", "key", s.key, "error", err)
			value = s.fallback
		}
		*s.dst = value
	}
	return details
}

// ContactForm renders the contact page.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "contact", "contact.title", struct {
		Details    ContactDetails
		LangPrefix string
	}{h.contactDetails(r.Context()), langPrefix(r)})
}

// ContactSubmit handles the public contact form.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	lang := pageLang(r)
	formURL := langPrefix(r) + RouteContact

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid"))
		return
	}

	name := formString(r, "name")
	email := formString(r, "email")
	message := formString(r, "message")

	if name == "" || message == "" {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.required"))
		return
	}
	if !validEmail(email) {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid_email"))
		return
	}

	_, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:      name,
		Email:     email,
		Subject:   optString(r.FormValue("subject")),
		Message:   message,
		Country:   optString(h.geo.Country(middleware.ClientIP(r))),
		UserAgent: optString(r.UserAgent()),
	})
	if err != nil {
		slog.Error("failed to store contact message", "error", err)
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.error"))
		return
	}

	flashSuccess(w, r, h.renderer, formURL, i18n.T(lang, "contact.success"))
}

// ConsultationForm renders the consultation-request page.
func (h *FrontendHandler) ConsultationForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "consultation", "consultation.title", struct {
		ServiceTypes []string
		LangPrefix   string
	}{model.ServiceTypes, langPrefix(r)})
}

// ConsultationSubmit handles the public consultation-request form.
func (h *FrontendHandler) ConsultationSubmit(w http.ResponseWriter, r *http.Request) {
	lang := pageLang(r)
	formURL := langPrefix(r) + RouteConsultation

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid"))
		return
	}

	contactPerson := formString(r, "contact_person")
	email := formString(r, "email")
	description := formString(r, "description")

	if contactPerson == "" || description == "" {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.required"))
		return
	}
	if !validEmail(email) {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid_email"))
		return
	}

	serviceType := formString(r, "service_type")
	if serviceType != "" && !model.IsValidServiceType(serviceType) {
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid"))
		return
	}

	var preferredDate sql.NullTime
	if raw := formString(r, "preferred_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.invalid"))
			return
		}
		preferredDate = sql.NullTime{Time: parsed, Valid: true}
	}

	_, err := h.queries.CreateConsultation(r.Context(), store.CreateConsultationParams{
		ContactPerson: contactPerson,
		CompanyName:   optString(r.FormValue("company_name")),
		Email:         email,
		Phone:         optString(r.FormValue("phone")),
		ServiceType:   optString(serviceType),
		Budget:        optString(r.FormValue("budget")),
		Description:   description,
		PreferredDate: preferredDate,
		Country:       optString(h.geo.Country(middleware.ClientIP(r))),
		UserAgent:     optString(r.UserAgent()),
	})
	if err != nil {
		slog.Error("failed to store consultation request", "error", err)
		flashError(w, r, h.renderer, formURL, i18n.T(lang, "form.error"))
		return
	}

	flashSuccess(w, r, h.renderer, formURL, i18n.T(lang, "consultation.success"))
}

// validEmail accepts addr-spec addresses without a display name.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
