// Package api contains API contract definitions for the customer
// satisfaction analytics service. Version v1 represents the current
// stable API version.
package api

// DateRangeRequest represents an optional inclusive date range in
// requests. Filtering only activates when both bounds are present; a
// single bound yields a warning and no filtering.
type DateRangeRequest struct {
	From string `json:"from" query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// Bounded reports whether both bounds are set.
func (r DateRangeRequest) Bounded() bool {
	return r.From != "" && r.To != ""
}

// Partial reports whether exactly one bound is set.
func (r DateRangeRequest) Partial() bool {
	return (r.From != "") != (r.To != "")
}

// DailyViewRequest represents a request for the daily timeline view.
type DailyViewRequest struct {
	DateRangeRequest
	Month string `json:"month" query:"month"` // optional "January 2006" label
}

// EventsViewRequest represents a request for the events view.
type EventsViewRequest struct {
	DateRangeRequest
	MinFailurePct float64  `json:"min_failure_pct" query:"min_failure_pct" validate:"min=0,max=100"`
	Promotion     string   `json:"promotion" query:"promotion"`
	Severities    []string `json:"severities" query:"severities" validate:"omitempty,dive,oneof=Critical High Medium Low"`
	SortBy        string   `json:"sort_by" query:"sort_by" validate:"omitempty,oneof=date failure_percentage severity"`
	Order         string   `json:"order" query:"order" validate:"omitempty,oneof=asc desc"`
}

// MonthlyComparisonRequest represents a request for the monthly
// comparison view of one metric.
type MonthlyComparisonRequest struct {
	Metric  string   `json:"metric" param:"metric" validate:"required"`
	Periods []string `json:"periods" query:"periods"` // subset of period names, empty = all
}

// ExportRequest represents a CSV export request.
type ExportRequest struct {
	Dataset string `json:"dataset" param:"dataset" validate:"required,oneof=daily events risk"`
}
