package dataprocessing

import (
	"sort"
	"time"
)

// Dated is implemented by records keyed by calendar date.
type Dated interface {
	DateKey() time.Time
}

// MergeByDate combines the baseline with uploaded tables. Tables
// concatenate in upload order after the base, then deduplicate by date
// with the last occurrence winning, so uploads override base data and
// later uploads override earlier ones. The result is sorted ascending
// by date.
//
// With no uploads the base is returned unchanged, duplicates and all:
// dedup only applies once uploaded data enters the picture.
func MergeByDate[T Dated](base []T, uploads [][]T) []T {
	if len(uploads) == 0 {
		return base
	}

	combined := make([]T, 0, len(base))
	combined = append(combined, base...)
	for _, upload := range uploads {
		combined = append(combined, upload...)
	}

	// Last occurrence wins; a later index always replaces an earlier one.
	latest := make(map[string]T, len(combined))
	order := make([]string, 0, len(combined))
	for _, record := range combined {
		key := record.DateKey().Format("2006-01-02")
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = record
	}

	merged := make([]T, 0, len(order))
	for _, key := range order {
		merged = append(merged, latest[key])
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].DateKey().Before(merged[j].DateKey())
	})

	return merged
}
