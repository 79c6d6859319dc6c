// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sahablabs/sahab-go/internal/model"
)

const roleColumns = "id, name, description, is_active, menu_access, created_at, updated_at"

func scanRole(row interface{ Scan(...any) error }) (model.Role, error) {
	var r model.Role
	var rawAccess string
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.IsActive, &rawAccess, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.Role{}, err
	}
	r.MenuAccess = model.ParseMenuAccess(rawAccess)
	return r, nil
}

// GetRole fetches a role by ID.
func (q *Queries) GetRole(ctx context.Context, id int64) (model.Role, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+roleColumns+" FROM roles WHERE id = ?", id)
	return scanRole(row)
}

// GetRoleByName fetches a role by its unique name.
func (q *Queries) GetRoleByName(ctx context.Context, name string) (model.Role, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+roleColumns+" FROM roles WHERE name = ?", name)
	return scanRole(row)
}

// ListRoles returns all roles ordered by name.
func (q *Queries) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT "+roleColumns+" FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CreateRoleParams holds parameters for CreateRole.
type CreateRoleParams struct {
	Name        string
	Description string
	IsActive    bool
	MenuAccess  model.MenuAccess
}

// CreateRole inserts a new role and returns it.
func (q *Queries) CreateRole(ctx context.Context, arg CreateRoleParams) (model.Role, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO roles (name, description, is_active, menu_access, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING `+roleColumns,
		arg.Name, arg.Description, arg.IsActive, arg.MenuAccess.JSON())
	return scanRole(row)
}

// UpdateRoleParams holds parameters for UpdateRole.
type UpdateRoleParams struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	MenuAccess  model.MenuAccess
}

// UpdateRole updates a role and returns the updated row.
func (q *Queries) UpdateRole(ctx context.Context, arg UpdateRoleParams) (model.Role, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE roles
		SET name = ?, description = ?, is_active = ?, menu_access = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+roleColumns,
		arg.Name, arg.Description, arg.IsActive, arg.MenuAccess.JSON(), arg.ID)
	return scanRole(row)
}

// DeleteRole removes a role. The users.role_id foreign key is declared
// ON DELETE RESTRICT, so deleting a role that still has users fails.
func (q *Queries) DeleteRole(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM roles WHERE id = ?", id)
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

// CountUsersWithRole returns the number of users assigned to the role.
func (q *Queries) CountUsersWithRole(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role_id = ?", roleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users with role %d: %w", roleID, err)
	}
	return count, nil
}

// RoleNameExists reports whether a role name is already taken by another role.
func (q *Queries) RoleNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM roles WHERE name = ? AND id != ?", name, excludeID).Scan(&count)
	return count > 0, err
}
