// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package export renders admin data sets as downloadable CSV files.
package export

import (
	"fmt"
	"strings"
	"time"
)

// utf8BOM makes spreadsheet applications detect UTF-8, which matters for
// Arabic text in exported fields.
const utf8BOM = "\xEF\xBB\xBF"

// Row is one exported record: column key to raw value.
type Row map[string]any

// dateLayouts per interface language.
var dateLayouts = map[string]string{
	"en": "Jan 2, 2006 3:04 PM",
	"ar": "02/01/2006 15:04",
}

// CSV builds a CSV document from the given column keys and rows. Values in
// date-like columns are formatted for the given language; every field is
// quoted, with embedded quotes doubled per RFC 4180.
func CSV(lang string, columns []string, headers []string, rows []Row) string {
	var sb strings.Builder
	sb.WriteString(utf8BOM)

	writeRecord(&sb, headers)
	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = formatValue(lang, col, row[col])
		}
		writeRecord(&sb, fields)
	}

	return sb.String()
}

func writeRecord(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteString("\r\n")
}

// isDateColumn reports whether a column key holds a timestamp. Keys
// containing "date", "_at" or "login" are treated as dates.
func isDateColumn(key string) bool {
	return strings.Contains(key, "date") ||
		strings.Contains(key, "_at") ||
		strings.Contains(key, "login")
}

func formatValue(lang, key string, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return FormatDate(lang, v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return FormatDate(lang, *v)
	case string:
		if v != "" && isDateColumn(key) {
			if parsed, err := time.Parse(time.RFC3339, v); err == nil {
				return FormatDate(lang, parsed)
			}
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatDate renders a timestamp in the export format for the language.
func FormatDate(lang string, t time.Time) string {
	layout, ok := dateLayouts[lang]
	if !ok {
		layout = dateLayouts["en"]
	}
	return t.Format(layout)
}

// Filename builds a download filename like "consultations_2026-09-01.csv".
func Filename(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", name, now.Format("2006-01-02"))
}
