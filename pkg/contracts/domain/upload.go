package domain

import (
	"strings"
	"time"
)

// DatasetKind is the detected type of an uploaded tabular file.
type DatasetKind string

const (
	DatasetDaily   DatasetKind = "Daily"
	DatasetEvents  DatasetKind = "Events"
	DatasetUnknown DatasetKind = "Unknown"
)

// Table is an uploaded tabular file parsed into named columns. Cell values
// stay as raw strings until coercion into typed records; a missing cell is
// an empty string.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the index of the named column (case-insensitive
// exact match), or -1 when the table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value of the named column in the given row, or ""
// when the column is absent or the row is short.
func (t *Table) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// ProcessedFile summarizes one successfully ingested upload.
type ProcessedFile struct {
	Name         string      `json:"name"`
	Kind         DatasetKind `json:"kind"`
	AutoDetected bool        `json:"auto_detected,omitempty"`
	Rows         int         `json:"rows"`
	Columns      int         `json:"columns"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// RejectedFile records one upload that failed ingestion, with the
// user-facing reason. Other files in the same batch are unaffected.
type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadStatus reports the accumulated upload collection.
type UploadStatus struct {
	Files        []ProcessedFile `json:"files"`
	DailyTables  int             `json:"daily_tables"`
	EventTables  int             `json:"event_tables"`
	LastUploadAt *time.Time      `json:"last_upload_at,omitempty"`
}
