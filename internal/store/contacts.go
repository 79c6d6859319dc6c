// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/sahablabs/sahab-go/internal/model"
)

const contactColumns = "id, name, email, subject, message, is_read, country, user_agent, created_at"

func scanContact(row interface{ Scan(...any) error }) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead,
		&m.Country, &m.UserAgent, &m.CreatedAt)
	if err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}

// GetContactMessage fetches a contact message by ID.
func (q *Queries) GetContactMessage(ctx context.Context, id int64) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages WHERE id = ?", id)
	return scanContact(row)
}

// ListContactMessagesParams holds filtering and pagination parameters.
type ListContactMessagesParams struct {
	Unread bool // only unread messages
	Limit  int64
	Offset int64
}

// ListContactMessages returns a paginated page of contact messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]model.ContactMessage, error) {
	where := ""
	if arg.Unread {
		where = " WHERE is_read = 0"
	}

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+contactColumns+` FROM contact_messages`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountContactMessages returns the number of messages matching the filter.
func (q *Queries) CountContactMessages(ctx context.Context, unread bool) (int64, error) {
	where := ""
	if unread {
		where = " WHERE is_read = 0"
	}
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages"+where).Scan(&count)
	return count, err
}

// CreateContactMessageParams holds parameters for CreateContactMessage.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Subject   sql.NullString
	Message   string
	Country   sql.NullString
	UserAgent sql.NullString
}

// CreateContactMessage inserts a new contact message.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, country, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		arg.Name, arg.Email, arg.Subject, arg.Message, arg.Country, arg.UserAgent).Scan(&id)
	if err != nil {
		return model.ContactMessage{}, err
	}
	return q.GetContactMessage(ctx, id)
}

// MarkContactMessageRead flags a message as read.
func (q *Queries) MarkContactMessageRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE contact_messages SET is_read = 1 WHERE id = ?", id)
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

// DeleteContactMessage removes a contact message.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
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
