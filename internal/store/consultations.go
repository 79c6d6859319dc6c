// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sahablabs/sahab-go/internal/model"
)

const consultationColumns = `id, contact_person, company_name, email, phone, service_type,
	budget, description, preferred_date, status, country, user_agent, created_at, updated_at`

func scanConsultation(row interface{ Scan(...any) error }) (model.Consultation, error) {
	var c model.Consultation
	err := row.Scan(&c.ID, &c.ContactPerson, &c.CompanyName, &c.Email, &c.Phone, &c.ServiceType,
		&c.Budget, &c.Description, &c.PreferredDate, &c.Status, &c.Country, &c.UserAgent,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Consultation{}, err
	}
	return c, nil
}

// GetConsultation fetches a consultation request by ID.
func (q *Queries) GetConsultation(ctx context.Context, id int64) (model.Consultation, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+consultationColumns+" FROM consultations WHERE id = ?", id)
	return scanConsultation(row)
}

// ListConsultationsParams holds filtering and pagination parameters.
type ListConsultationsParams struct {
	Status string
	Search string
	Limit  int64
	Offset int64
}

func buildConsultationFilter(arg ListConsultationsParams) (string, []any) {
	var conds []string
	var args []any

	if arg.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, arg.Status)
	}
	if arg.Search != "" {
		conds = append(conds, `(contact_person LIKE ? ESCAPE '\'
			OR email LIKE ? ESCAPE '\'
			OR company_name LIKE ? ESCAPE '\')`)
		pattern := likePattern(arg.Search)
		args = append(args, pattern, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListConsultations returns a filtered, paginated page of consultation
// requests, newest first.
func (q *Queries) ListConsultations(ctx context.Context, arg ListConsultationsParams) ([]model.Consultation, error) {
	where, args := buildConsultationFilter(arg)
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+consultationColumns+` FROM consultations`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountConsultations returns the number of consultations matching the filters.
func (q *Queries) CountConsultations(ctx context.Context, arg ListConsultationsParams) (int64, error) {
	where, args := buildConsultationFilter(arg)
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM consultations"+where, args...).Scan(&count)
	return count, err
}

// ListAllConsultations returns every consultation matching the filters,
// for CSV export.
func (q *Queries) ListAllConsultations(ctx context.Context, arg ListConsultationsParams) ([]model.Consultation, error) {
	where, args := buildConsultationFilter(arg)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+consultationColumns+` FROM consultations`+where+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CreateConsultationParams holds parameters for CreateConsultation.
type CreateConsultationParams struct {
	ContactPerson string
	CompanyName   sql.NullString
	Email         string
	Phone         sql.NullString
	ServiceType   sql.NullString
	Budget        sql.NullString
	Description   string
	PreferredDate sql.NullTime
	Country       sql.NullString
	UserAgent     sql.NullString
}

// CreateConsultation inserts a new consultation request with pending status.
func (q *Queries) CreateConsultation(ctx context.Context, arg CreateConsultationParams) (model.Consultation, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO consultations (contact_person, company_name, email, phone, service_type,
			budget, description, preferred_date, status, country, user_agent, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING id`,
		arg.ContactPerson, arg.CompanyName, arg.Email, arg.Phone, arg.ServiceType,
		arg.Budget, arg.Description, arg.PreferredDate, model.ConsultationPending,
		arg.Country, arg.UserAgent).Scan(&id)
	if err != nil {
		return model.Consultation{}, err
	}
	return q.GetConsultation(ctx, id)
}

// UpdateConsultationStatus sets a consultation's status. The caller must
// pass a canonical status (see model.NormalizeConsultationStatus).
func (q *Queries) UpdateConsultationStatus(ctx context.Context, id int64, status string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE consultations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id)
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

// DeleteConsultation removes a consultation request.
func (q *Queries) DeleteConsultation(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM consultations WHERE id = ?", id)
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

// CountConsultationsByStatus returns per-status counts for the dashboard.
func (q *Queries) CountConsultationsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM consultations GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
