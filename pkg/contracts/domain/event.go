package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the ordinal risk classification of a logged event.
// The ordering is Low < Medium < High < Critical and sorting on severity
// must use SortOrdinal, never the lexicographic string order.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// AllSeverities lists every valid severity from lowest to highest.
func AllSeverities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Valid reports whether s is one of the four closed enum values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// SortOrdinal returns the explicit ordinal used for severity sorting:
// Low=1, Medium=2, High=3, Critical=4.
func (s Severity) SortOrdinal() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// ParseSeverity parses a severity label case-insensitively.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	return "", fmt.Errorf("unrecognized severity %q", value)
}

// EventRecord represents a logged incident day with its failure rate and
// promotional context.
type EventRecord struct {
	Date              time.Time `json:"date" validate:"required"`
	DayOfWeek         string    `json:"day_of_week"`
	FailedMetrics     string    `json:"failed_metrics"` // "k/n" form, e.g. "6/8"
	FailurePercentage float64   `json:"failure_percentage" validate:"min=0,max=100"`
	Promotion         string    `json:"promotion"` // label or "No promotion"
	Severity          Severity  `json:"severity" validate:"required,oneof=Critical High Medium Low"`
}

// DateKey returns the record's merge key.
func (r EventRecord) DateKey() time.Time {
	return r.Date
}

// EventSortKey selects the column an event view is ordered by.
type EventSortKey string

const (
	EventSortDate       EventSortKey = "date"
	EventSortFailurePct EventSortKey = "failure_percentage"
	EventSortSeverity   EventSortKey = "severity"
)

// Valid reports whether k names a sortable event column.
func (k EventSortKey) Valid() bool {
	switch k {
	case EventSortDate, EventSortFailurePct, EventSortSeverity:
		return true
	}
	return false
}

// EventsSummary represents aggregate statistics over a filtered event view.
type EventsSummary struct {
	Events            int     `json:"events"`
	AverageFailurePct float64 `json:"average_failure_pct"`
	CriticalCount     int     `json:"critical_count"`
	HighRiskDays      int     `json:"high_risk_days"` // failure percentage >= 70
	PromotionDays     int     `json:"promotion_days"` // promotion matching OFF/Sale/Special
}

// WeekdayFailure is the mean failure percentage of events falling on one
// day of the week, for the Monday..Sunday breakdown.
type WeekdayFailure struct {
	DayOfWeek         string  `json:"day_of_week"`
	AverageFailurePct float64 `json:"average_failure_pct"`
	Events            int     `json:"events"`
}
