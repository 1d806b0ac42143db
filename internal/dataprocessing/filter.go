package dataprocessing

import (
	"errors"
	"sort"
	"strings"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// ErrInvalidDateRange is returned when a range filter's start falls after
// its end. Bounds are never silently swapped.
var ErrInvalidDateRange = errors.New("start date must be before or equal to end date")

// DateRange is an optional inclusive range filter. Filtering only
// activates when both bounds are set; a single bound is a warning state
// and the view stays unfiltered.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Active reports whether both bounds are present.
func (r DateRange) Active() bool {
	return r.Start != nil && r.End != nil
}

// Partial reports whether exactly one bound is present.
func (r DateRange) Partial() bool {
	return (r.Start != nil) != (r.End != nil)
}

// Validate rejects an active range whose start falls after its end.
func (r DateRange) Validate() error {
	if r.Active() && r.Start.After(*r.End) {
		return ErrInvalidDateRange
	}
	return nil
}

// FilterByDateRange keeps the records falling inside the inclusive
// range. An inactive or partial range returns the input unchanged; an
// inverted range is a validation error, never a silent swap.
func FilterByDateRange[T Dated](records []T, r DateRange) ([]T, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if !r.Active() {
		return records, nil
	}

	filtered := make([]T, 0, len(records))
	for _, record := range records {
		date := record.DateKey()
		if date.Before(*r.Start) || date.After(*r.End) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

// FilterDailyByMonth keeps the daily records whose month label matches.
// An empty label means no month filtering.
func FilterDailyByMonth(records []domain.DailyRecord, month string) []domain.DailyRecord {
	if month == "" {
		return records
	}

	filtered := make([]domain.DailyRecord, 0, len(records))
	for _, record := range records {
		if record.Month == month {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// EventFilter selects events by minimum failure percentage, optional
// exact promotion label, and severity membership.
type EventFilter struct {
	MinFailurePct float64
	Promotion     string // empty = all promotions
	Severities    map[domain.Severity]bool
}

// FilterEvents applies the filter. An empty severity set keeps nothing;
// "show all severities" is expressed by including every value, not by
// leaving the set empty.
func FilterEvents(events []domain.EventRecord, filter EventFilter) []domain.EventRecord {
	filtered := make([]domain.EventRecord, 0, len(events))
	for _, event := range events {
		if event.FailurePercentage < filter.MinFailurePct {
			continue
		}
		if filter.Promotion != "" && event.Promotion != filter.Promotion {
			continue
		}
		if !filter.Severities[event.Severity] {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

// SortEvents orders events by the given key. Severity ordering uses the
// explicit Low=1..Critical=4 ordinals. Sorting is stable so equal keys
// keep their filtered order.
func SortEvents(events []domain.EventRecord, key domain.EventSortKey, ascending bool) []domain.EventRecord {
	sorted := make([]domain.EventRecord, len(events))
	copy(sorted, events)

	less := func(a, b domain.EventRecord) bool {
		switch key {
		case domain.EventSortFailurePct:
			return a.FailurePercentage < b.FailurePercentage
		case domain.EventSortSeverity:
			return a.Severity.SortOrdinal() < b.Severity.SortOrdinal()
		default:
			return a.Date.Before(b.Date)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})

	return sorted
}

// promotionSignals marks an event day as promotion-driven when its label
// carries a sale indicator.
var promotionSignals = []string{"off", "sale", "special"}

// IsPromotionDay reports whether the promotion label indicates an active
// sale (used by the events summary, not by filtering).
func IsPromotionDay(promotion string) bool {
	lower := strings.ToLower(promotion)
	for _, signal := range promotionSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}
