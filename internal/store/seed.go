// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahablabs/sahab-go/internal/auth"
	"github.com/sahablabs/sahab-go/internal/model"
)

// Default admin credentials, for first startup only. Change the password
// immediately after the first login.
const (
	DefaultAdminEmail    = "admin@sahablabs.example"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the system roles and the initial admin user if they do not
// exist yet. It is idempotent and safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedRoles(ctx, queries); err != nil {
		return err
	}
	return seedAdminUser(ctx, queries)
}

func seedRoles(ctx context.Context, queries *Queries) error {
	fullAccess := model.MenuAccess{}
	for _, key := range model.AllMenuKeys() {
		fullAccess[key] = true
	}

	defaults := []CreateRoleParams{
		{
			Name:        model.RoleAdmin,
			Description: "Full access to every admin area",
			IsActive:    true,
			MenuAccess:  fullAccess,
		},
		{
			Name:        model.RoleModerator,
			Description: "Content and inbound request management",
			IsActive:    true,
			MenuAccess: model.MenuAccess{
				model.MenuDashboard:     true,
				model.MenuBlog:          true,
				model.MenuConsultations: true,
			},
		},
		{
			Name:        model.RoleUser,
			Description: "Dashboard access only",
			IsActive:    true,
			MenuAccess: model.MenuAccess{
				model.MenuDashboard: true,
			},
		},
	}

	for _, params := range defaults {
		_, err := queries.GetRoleByName(ctx, params.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking role %s: %w", params.Name, err)
		}
		if _, err := queries.CreateRole(ctx, params); err != nil {
			return fmt.Errorf("creating role %s: %w", params.Name, err)
		}
		slog.Info("created role", "name", params.Name)
	}

	return nil
}

// SeedDemo inserts a few published demo posts when enabled and the blog is
// still empty. Disabled or non-empty databases are left untouched.
func SeedDemo(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}
	queries := New(db)

	total, err := queries.CountPosts(ctx, ListPostsParams{})
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if total > 0 {
		return nil
	}

	admin, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		return fmt.Errorf("loading admin user for demo content: %w", err)
	}

	now := time.Now()
	demo := []CreatePostParams{
		{
			Title:     "Five Questions to Ask Before Your Next Security Assessment",
			TitleAr:   "خمسة أسئلة قبل تقييمك الأمني القادم",
			Slug:      "five-questions-security-assessment",
			Excerpt:   "What to clarify with any vendor before signing the engagement letter.",
			ExcerptAr: "ما الذي يجب توضيحه مع أي مزوّد قبل توقيع العقد.",
			Content: "Scoping an assessment well matters more than the tooling. " +
				"Start with the asset inventory, agree on rules of engagement, and " +
				"insist on a retest window in the contract.",
			ContentAr: "تحديد نطاق التقييم بشكل جيد أهم من الأدوات المستخدمة.",
			Category:  sql.NullString{String: "security", Valid: true},
			Tags:      []string{"assessment", "consulting"},
			Status:    model.PostStatusPublished,
			AuthorID:  sql.NullInt64{Int64: admin.ID, Valid: true},
		},
		{
			Title:     "When an ML Pilot Is Ready for Production",
			TitleAr:   "متى يكون نموذج تعلم الآلة جاهزاً للإنتاج",
			Slug:      "ml-pilot-production-readiness",
			Excerpt:   "A short checklist we use with clients moving models out of the lab.",
			ExcerptAr: "قائمة قصيرة نستخدمها مع العملاء لنقل النماذج خارج المختبر.",
			Content: "Accuracy on a holdout set is table stakes. Production readiness " +
				"is about monitoring, rollback, and knowing who owns the model when " +
				"it drifts.",
			ContentAr: "الدقة على بيانات الاختبار ليست كافية، فالجاهزية للإنتاج تتعلق بالمراقبة والتراجع.",
			Category:  sql.NullString{String: "ai", Valid: true},
			Tags:      []string{"ml", "operations"},
			Status:    model.PostStatusPublished,
			AuthorID:  sql.NullInt64{Int64: admin.ID, Valid: true},
		},
	}

	for _, params := range demo {
		params.PublishedAt = sql.NullTime{Time: now, Valid: true}
		if _, err := queries.CreatePost(ctx, params); err != nil {
			return fmt.Errorf("creating demo post %s: %w", params.Slug, err)
		}
	}
	slog.Info("seeded demo content", "posts", len(demo))
	return nil
}

func seedAdminUser(ctx context.Context, queries *Queries) error {
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	adminRole, err := queries.GetRoleByName(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("loading admin role: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		FullName:     DefaultAdminName,
		RoleID:       adminRole.ID,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}
