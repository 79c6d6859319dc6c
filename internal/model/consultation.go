// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Consultation statuses. This is the canonical vocabulary; the legacy
// aliases "new" and "in_progress" that appeared in one admin view are
// accepted on input and normalized (see NormalizeConsultationStatus).
const (
	ConsultationPending   = "pending"
	ConsultationScheduled = "scheduled"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

// ValidConsultationStatuses contains the canonical consultation statuses.
var ValidConsultationStatuses = []string{
	ConsultationPending,
	ConsultationScheduled,
	ConsultationCompleted,
	ConsultationCancelled,
}

// consultationAliases maps drifted status names onto the canonical set.
var consultationAliases = map[string]string{
	"new":         ConsultationPending,
	"in_progress": ConsultationScheduled,
}

// NormalizeConsultationStatus maps an incoming status onto the canonical
// vocabulary. Returns the canonical status and true, or "" and false for
// unrecognized input.
func NormalizeConsultationStatus(status string) (string, bool) {
	if alias, ok := consultationAliases[status]; ok {
		return alias, true
	}
	for _, s := range ValidConsultationStatuses {
		if s == status {
			return s, true
		}
	}
	return "", false
}

// ServiceTypes enumerates the consulting offerings a request can target.
var ServiceTypes = []string{
	"security-assessment",
	"penetration-testing",
	"incident-response",
	"ai-strategy",
	"ml-deployment",
	"compliance",
	"training",
	"other",
}

// IsValidServiceType reports whether t is a known service type.
func IsValidServiceType(t string) bool {
	for _, s := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Consultation is a consultation request submitted through the public site.
// Country and UserAgent are derived from the submitting request when GeoIP
// is configured; they exist for admin display only.
type Consultation struct {
	ID            int64          `json:"id"`
	ContactPerson string         `json:"contact_person"`
	CompanyName   sql.NullString `json:"company_name,omitempty"`
	Email         string         `json:"email"`
	Phone         sql.NullString `json:"phone,omitempty"`
	ServiceType   sql.NullString `json:"service_type,omitempty"`
	Budget        sql.NullString `json:"budget,omitempty"`
	Description   string         `json:"description"`
	PreferredDate sql.NullTime   `json:"preferred_date,omitempty"`
	Status        string         `json:"status"`
	Country       sql.NullString `json:"country,omitempty"`
	UserAgent     sql.NullString `json:"user_agent,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
