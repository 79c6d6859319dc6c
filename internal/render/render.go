// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses and executes HTML templates for the public site
// and the admin back office.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/session"
)

// Renderer holds parsed templates keyed by page name.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a Renderer with all templates parsed.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// parseTemplates parses the template groups: frontend pages use the site
// layout, admin pages the admin layout, auth pages the base layout alone.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := listTemplates(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	groups := []struct {
		dir     string
		layouts []string
	}{
		{"frontend", []string{"layouts/base.html", "layouts/site.html"}},
		{"admin", []string{"layouts/base.html", "layouts/admin.html"}},
		{"auth", []string{"layouts/base.html"}},
	}

	for _, group := range groups {
		pages, err := listTemplates(templatesFS, group.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", group.dir, err)
		}
		for _, page := range pages {
			name := group.dir + "/" + strings.TrimSuffix(filepath.Base(page), ".html")

			files := append([]string{}, group.layouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	return nil
}

func listTemplates(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Missing group directories are fine.
		return files, nil
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": i18n.T,
		"dir": func(lang string) string {
			return i18n.Dir(lang)
		},
		"isRTL": i18n.IsRTL,
		"formatDate": func(lang string, t time.Time) string {
			if lang == "ar" {
				return t.Format("02/01/2006")
			}
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(lang string, t time.Time) string {
			if lang == "ar" {
				return t.Format("02/01/2006 15:04")
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"markdown": Markdown,
		"truncate": func(s string, length int) string {
			runes := []rune(s)
			if len(runes) <= length {
				return s
			}
			return string(runes[:length]) + "..."
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		"menuAllowed": func(user *model.User, key string) bool {
			return user != nil && user.CanAccess(model.MenuKey(key))
		},
		"menuKeys": func() []model.MenuKey {
			return model.AllMenuKeys()
		},
	}
}

// TemplateData holds data passed to every template.
type TemplateData struct {
	Title       string
	Lang        string
	Dir         string
	User        *model.User
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
}

// Render executes the named template into a buffer first, so template
// errors become a 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	if data.Lang == "" {
		data.Lang = i18n.DefaultLanguage()
	}
	data.Dir = i18n.Dir(data.Lang)

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), session.KeyFlash); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), session.KeyFlashKind)
			if data.FlashType == "" {
				data.FlashType = "info"
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// SetFlash stores a one-shot flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, kind string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), session.KeyFlash, message)
		r.sessionManager.Put(req.Context(), session.KeyFlashKind, kind)
	}
}
