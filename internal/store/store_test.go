// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/model"
)

func testDB(t *testing.T) (*sql.DB, *Queries) {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(context.Background(), db))

	return db, New(db)
}

func TestSeedIsIdempotent(t *testing.T) {
	db, queries := testDB(t)
	ctx := context.Background()

	// Second run must not duplicate roles or the admin user.
	require.NoError(t, Seed(ctx, db))

	roles, err := queries.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	admin, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.CanAccess(model.MenuRoles))
}

func TestRoleCRUD(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	created, err := queries.CreateRole(ctx, CreateRoleParams{
		Name:        "editor",
		Description: "Blog editors",
		IsActive:    true,
		MenuAccess: model.MenuAccess{
			model.MenuDashboard: true,
			model.MenuBlog:      true,
		},
	})
	require.NoError(t, err)
	assert.True(t, created.MenuAccess.Allows(model.MenuBlog))
	assert.False(t, created.MenuAccess.Allows(model.MenuUsers))

	updated, err := queries.UpdateRole(ctx, UpdateRoleParams{
		ID:          created.ID,
		Name:        "editor",
		Description: "Blog editors",
		IsActive:    true,
		MenuAccess:  model.MenuAccess{model.MenuDashboard: true},
	})
	require.NoError(t, err)
	assert.False(t, updated.MenuAccess.Allows(model.MenuBlog))

	require.NoError(t, queries.DeleteRole(ctx, created.ID))

	_, err = queries.GetRole(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListUsersSearchTreatsWildcardsLiterally(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	role, err := queries.GetRoleByName(ctx, model.RoleUser)
	require.NoError(t, err)

	_, err = queries.CreateUser(ctx, CreateUserParams{
		Email: "percent@sahablabs.example", PasswordHash: "x",
		FullName: "Save 100% Now", RoleID: role.ID, IsActive: true,
	})
	require.NoError(t, err)
	_, err = queries.CreateUser(ctx, CreateUserParams{
		Email: "plain@sahablabs.example", PasswordHash: "x",
		FullName: "Plain Name", RoleID: role.ID, IsActive: true,
	})
	require.NoError(t, err)

	// "100%" means the literal string, not "100 followed by anything".
	users, err := queries.ListUsers(ctx, ListUsersParams{Search: "100%", Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Save 100% Now", users[0].FullName)

	// A bare "%" only matches rows actually containing one.
	count, err := queries.CountUsers(ctx, ListUsersParams{Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// "_" is a literal as well, not a single-character wildcard.
	users, err = queries.ListUsers(ctx, ListUsersParams{Search: "_", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDeleteRoleWithUsersFails(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	role, err := queries.GetRoleByName(ctx, model.RoleUser)
	require.NoError(t, err)

	_, err = queries.CreateUser(ctx, CreateUserParams{
		Email:        "someone@example.com",
		PasswordHash: "x",
		FullName:     "Someone",
		RoleID:       role.ID,
		IsActive:     true,
	})
	require.NoError(t, err)

	// users.role_id is ON DELETE RESTRICT
	err = queries.DeleteRole(ctx, role.ID)
	require.Error(t, err)

	count, err := queries.CountUsersWithRole(ctx, role.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListUsersFilters(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	userRole, err := queries.GetRoleByName(ctx, model.RoleUser)
	require.NoError(t, err)
	modRole, err := queries.GetRoleByName(ctx, model.RoleModerator)
	require.NoError(t, err)

	for _, u := range []CreateUserParams{
		{Email: "alice@example.com", PasswordHash: "x", FullName: "Alice Ahmed", RoleID: userRole.ID, IsActive: true},
		{Email: "bob@example.com", PasswordHash: "x", FullName: "Bob Baker", RoleID: modRole.ID, IsActive: false},
	} {
		_, err := queries.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	byRole, err := queries.ListUsers(ctx, ListUsersParams{RoleName: model.RoleModerator, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byRole, 1)
	assert.Equal(t, "bob@example.com", byRole[0].Email)

	inactive, err := queries.ListUsers(ctx, ListUsersParams{Status: "inactive", Limit: 10})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "bob@example.com", inactive[0].Email)

	// Case-insensitive search over name and email.
	found, err := queries.ListUsers(ctx, ListUsersParams{Search: "ALICE", Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice@example.com", found[0].Email)

	count, err := queries.CountUsers(ctx, ListUsersParams{Status: "active"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count) // seeded admin + alice
}

func TestEnsureUniqueSlug(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	slug, err := queries.EnsureUniqueSlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)

	_, err = queries.CreatePost(ctx, CreatePostParams{
		Title:  "Hello World",
		Slug:   "hello-world",
		Status: model.PostStatusDraft,
	})
	require.NoError(t, err)

	slug, err = queries.EnsureUniqueSlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", slug)
}

func TestPostViewsAndPublishedListing(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	draft, err := queries.CreatePost(ctx, CreatePostParams{
		Title: "Draft", Slug: "draft", Status: model.PostStatusDraft,
	})
	require.NoError(t, err)

	published, err := queries.CreatePost(ctx, CreatePostParams{
		Title: "Live", Slug: "live", Status: model.PostStatusPublished,
	})
	require.NoError(t, err)

	listed, err := queries.ListPublishedPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, published.ID, listed[0].ID)
	assert.NotEqual(t, draft.ID, listed[0].ID)

	require.NoError(t, queries.AddPostViews(ctx, published.ID, 5))
	got, err := queries.GetPost(ctx, published.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Views)
}

func TestConsultationLifecycle(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	created, err := queries.CreateConsultation(ctx, CreateConsultationParams{
		ContactPerson: "Dana",
		Email:         "dana@example.com",
		Description:   "Need a security assessment",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationPending, created.Status)

	require.NoError(t, queries.UpdateConsultationStatus(ctx, created.ID, model.ConsultationScheduled))

	counts, err := queries.CountConsultationsByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[model.ConsultationScheduled])

	require.NoError(t, queries.DeleteConsultation(ctx, created.ID))
	assert.ErrorIs(t, queries.DeleteConsultation(ctx, created.ID), sql.ErrNoRows)
}

func TestContactMessages(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	msg, err := queries.CreateContactMessage(ctx, CreateContactMessageParams{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Hello there",
	})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)

	unread, err := queries.CountContactMessages(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, queries.MarkContactMessageRead(ctx, msg.ID))

	unread, err = queries.CountContactMessages(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)
}

func TestSettings(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	value, err := queries.GetSetting(ctx, "site_title", "Sahab Labs")
	require.NoError(t, err)
	assert.Equal(t, "Sahab Labs", value)

	require.NoError(t, queries.SetSetting(ctx, "site_title", "Custom"))
	require.NoError(t, queries.SetSetting(ctx, "site_title", "Custom 2"))

	value, err = queries.GetSetting(ctx, "site_title", "Sahab Labs")
	require.NoError(t, err)
	assert.Equal(t, "Custom 2", value)
}

func TestUserEmailExists(t *testing.T) {
	_, queries := testDB(t)
	ctx := context.Background()

	exists, err := queries.UserEmailExists(ctx, DefaultAdminEmail, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	admin, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)

	exists, err = queries.UserEmailExists(ctx, DefaultAdminEmail, admin.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
