// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sahablabs/sahab-go/internal/model"
)

const userColumns = `u.id, u.email, u.password_hash, u.full_name, u.phone, u.company,
	u.role_id, r.name, r.menu_access, u.is_active, u.last_login_at, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var rawAccess string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Company,
		&u.RoleID, &u.Role, &rawAccess, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.MenuAccess = model.ParseMenuAccess(rawAccess)
	return u, nil
}

// GetUser fetches a user by ID, with the role name and menu access joined in.
func (q *Queries) GetUser(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail fetches a user by email address.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE u.email = ?`, email)
	return scanUser(row)
}

// ListUsersParams holds filtering and pagination parameters for ListUsers.
// Empty filter fields match everything. Search matches name and email,
// case-insensitively.
type ListUsersParams struct {
	RoleName string
	Status   string // "active", "inactive" or ""
	Search   string
	Limit    int64
	Offset   int64
}

func buildUserFilter(arg ListUsersParams) (string, []any) {
	var conds []string
	var args []any

	if arg.RoleName != "" {
		conds = append(conds, "r.name = ?")
		args = append(args, arg.RoleName)
	}
	switch arg.Status {
	case "active":
		conds = append(conds, "u.is_active = 1")
	case "inactive":
		conds = append(conds, "u.is_active = 0")
	}
	if arg.Search != "" {
		conds = append(conds, `(u.full_name LIKE ? ESCAPE '\' OR u.email LIKE ? ESCAPE '\')`)
		pattern := likePattern(arg.Search)
		args = append(args, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListUsers returns a filtered, paginated page of users.
func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]model.User, error) {
	where, args := buildUserFilter(arg)
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users u JOIN roles r ON r.id = u.role_id`+where+`
		ORDER BY u.created_at DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the number of users matching the same filters as ListUsers.
func (q *Queries) CountUsers(ctx context.Context, arg ListUsersParams) (int64, error) {
	where, args := buildUserFilter(arg)
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id"+where, args...).Scan(&count)
	return count, err
}

// CreateUserParams holds parameters for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	FullName     string
	Phone        sql.NullString
	Company      sql.NullString
	RoleID       int64
	IsActive     bool
}

// CreateUser inserts a new user and returns it with role data joined.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, full_name, phone, company, role_id, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING id`,
		arg.Email, arg.PasswordHash, arg.FullName, arg.Phone, arg.Company, arg.RoleID, arg.IsActive).Scan(&id)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUser(ctx, id)
}

// UpdateUserParams holds parameters for UpdateUser. The password hash is
// updated separately via UpdateUserPassword.
type UpdateUserParams struct {
	ID       int64
	Email    string
	FullName string
	Phone    sql.NullString
	Company  sql.NullString
	RoleID   int64
	IsActive bool
}

// UpdateUser updates user profile fields and returns the updated row.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, full_name = ?, phone = ?, company = ?, role_id = ?, is_active = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		arg.Email, arg.FullName, arg.Phone, arg.Company, arg.RoleID, arg.IsActive, arg.ID)
	if err != nil {
		return model.User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.User{}, err
	}
	if n == 0 {
		return model.User{}, sql.ErrNoRows
	}
	return q.GetUser(ctx, arg.ID)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateUserLastLogin records a successful login timestamp.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

// DeleteUser removes a user.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UserEmailExists reports whether an email is already taken by another user.
func (q *Queries) UserEmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email = ? AND id != ?", email, excludeID).Scan(&count)
	return count > 0, err
}
