// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/sahablabs/sahab-go/internal/ai"
	"github.com/sahablabs/sahab-go/internal/cache"
	"github.com/sahablabs/sahab-go/internal/config"
	"github.com/sahablabs/sahab-go/internal/geoip"
	"github.com/sahablabs/sahab-go/internal/handler"
	"github.com/sahablabs/sahab-go/internal/handler/api"
	"github.com/sahablabs/sahab-go/internal/i18n"
	"github.com/sahablabs/sahab-go/internal/imaging"
	"github.com/sahablabs/sahab-go/internal/logging"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/render"
	"github.com/sahablabs/sahab-go/internal/scheduler"
	"github.com/sahablabs/sahab-go/internal/service"
	"github.com/sahablabs/sahab-go/internal/session"
	"github.com/sahablabs/sahab-go/internal/store"
	"github.com/sahablabs/sahab-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Sahab Labs website and back office\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_DB_PATH          SQLite database path (default: ./data/sahab.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_GEOIP_DB_PATH    GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAHAB_OPENAI_API_KEY   Enables AI-assisted translation (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("sahab %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data and upload directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade logger to also persist WARN and ERROR records to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if err := store.SeedDemo(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	middleware.SetSessionManager(sessionManager)

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	var appCache cache.Cache
	if cfg.UseRedisCache() {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.CachePrefix, cacheTTL)
		if err != nil {
			slog.Warn("Redis unavailable, using memory cache", "error", err)
			appCache = cache.NewMemoryCache(cfg.CacheMaxSize, cacheTTL)
		} else {
			slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
			appCache = redisCache
		}
	} else {
		slog.Info("cache initialized", "backend", "memory", "max_size", cfg.CacheMaxSize)
		appCache = cache.NewMemoryCache(cfg.CacheMaxSize, cacheTTL)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		// A broken GeoIP database only costs country enrichment.
		slog.Warn("GeoIP lookups disabled", "error", err)
	} else if geo.Enabled() {
		slog.Info("GeoIP lookups enabled", "path", cfg.GeoIPDBPath)
	}
	defer func() {
		_ = geo.Close()
	}()

	var translator *ai.Translator
	if cfg.AIEnabled() {
		translator = ai.NewTranslator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("AI translation enabled", "model", cfg.OpenAIModel)
	}

	processor := imaging.NewProcessor(cfg.UploadsDir)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	views := service.NewViewCounter(store.New(db))

	sched := scheduler.New(db, views, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, renderer)
	blogHandler := handler.NewBlogHandler(db, renderer, cfg.AIEnabled())
	userHandler := handler.NewUserHandler(db, renderer)
	roleHandler := handler.NewRoleHandler(db, renderer)
	consultationHandler := handler.NewConsultationHandler(db, renderer)
	contactHandler := handler.NewContactHandler(db, renderer)
	frontendHandler := handler.NewFrontendHandler(db, renderer, appCache, cacheTTL, geo, views)
	apiHandler := api.NewHandler(db, sessionManager, translator, processor)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	// Public site: default language plus /{lang} prefixed routes.
	registerPublic := func(r chi.Router) {
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteServices, frontendHandler.Services)
		r.Get(handler.RouteAbout, frontendHandler.About)
		r.Get(handler.RouteBlog, frontendHandler.BlogIndex)
		r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.BlogPost)
		r.Get(handler.RouteContact, frontendHandler.ContactForm)
		r.With(middleware.PublicFormRateLimit(1, 5)).Post(handler.RouteContact, frontendHandler.ContactSubmit)
		r.Get(handler.RouteConsultation, frontendHandler.ConsultationForm)
		r.With(middleware.PublicFormRateLimit(1, 5)).Post(handler.RouteConsultation, frontendHandler.ConsultationSubmit)
	}
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		registerPublic(r)
		r.Route("/{lang:[a-z]{2}}", func(r chi.Router) {
			registerPublic(r)
		})
	})

	// Admin HTML: login is public, everything else requires a session and a
	// menu grant for the area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))

			r.Post(handler.RouteLanguage, authHandler.SetLanguage)

			// The dashboard is the post-login landing page: any
			// authenticated user can reach it regardless of menu grants.
			r.Get(handler.RouteRoot, adminHandler.Dashboard)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuBlog))
				r.Get(handler.RouteBlog, blogHandler.List)
				r.Get(handler.RouteBlog+handler.RouteSuffixNew, blogHandler.NewForm)
				r.Get(handler.RouteBlogID+handler.RouteSuffixEdit, blogHandler.EditForm)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuConsultations))
				r.Get(handler.RouteConsultations, consultationHandler.List)
				r.Get(handler.RouteContacts, contactHandler.List)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuUsers))
				r.Get(handler.RouteUsers, userHandler.List)
				r.Get(handler.RouteUsers+handler.RouteSuffixNew, userHandler.NewForm)
				r.Get(handler.RouteUsersID+handler.RouteSuffixEdit, userHandler.EditForm)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuRoles))
				r.Get(handler.RouteRoles, roleHandler.List)
				r.Get(handler.RouteRoles+handler.RouteSuffixNew, roleHandler.NewForm)
				r.Get(handler.RouteRolesID+handler.RouteSuffixEdit, roleHandler.EditForm)
			})
		})
	})

	// Admin JSON API: same session and menu gating as the HTML screens.
	r.Route("/api", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Post("/auth"+handler.RouteLogout, apiHandler.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuBlog))
				r.Get(handler.RouteBlog, apiHandler.ListPosts)
				r.Post(handler.RouteBlog, apiHandler.CreatePost)
				r.Get(handler.RouteBlogID, apiHandler.GetPost)
				r.Put(handler.RouteBlogID, apiHandler.UpdatePost)
				r.Delete(handler.RouteBlogID, apiHandler.DeletePost)
				r.Post(handler.RouteBlogID+handler.RouteSuffixTranslate, apiHandler.TranslatePost)
				r.Post(handler.RouteUpload, apiHandler.Upload)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuConsultations))
				r.Get(handler.RouteConsultations, apiHandler.ListConsultations)
				r.Get(handler.RouteConsultations+handler.RouteSuffixExport, apiHandler.ExportConsultations)
				r.Patch(handler.RouteConsultationsID, apiHandler.UpdateConsultationStatus)
				r.Delete(handler.RouteConsultationsID, apiHandler.DeleteConsultation)
				r.Get(handler.RouteContacts, apiHandler.ListContactMessages)
				r.Get(handler.RouteContacts+handler.RouteSuffixExport, apiHandler.ExportContactMessages)
				r.Patch(handler.RouteContactsID, apiHandler.MarkContactMessageRead)
				r.Delete(handler.RouteContactsID, apiHandler.DeleteContactMessage)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuUsers))
				r.Get(handler.RouteUsers, apiHandler.ListUsers)
				r.Post(handler.RouteUsers, apiHandler.CreateUser)
				r.Get(handler.RouteUsers+handler.RouteSuffixExport, apiHandler.ExportUsers)
				r.Put(handler.RouteUsersID, apiHandler.UpdateUser)
				r.Delete(handler.RouteUsersID, apiHandler.DeleteUser)
				r.Post(handler.RouteUsersID+handler.RouteSuffixResetPassword, apiHandler.ResetUserPassword)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMenu(model.MenuRoles))
				r.Get(handler.RouteRoles, apiHandler.ListRoles)
				r.Post(handler.RouteRoles, apiHandler.CreateRole)
				r.Put(handler.RouteRolesID, apiHandler.UpdateRole)
				r.Delete(handler.RouteRolesID, apiHandler.DeleteRole)
			})
		})
	})

	// Static assets: embedded, cached for a year. Uploads: filesystem, a week.
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", middleware.StaticCache(31536000)(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))
	r.Handle("/uploads/*", middleware.StaticCache(604800)(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
