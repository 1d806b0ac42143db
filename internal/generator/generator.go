// Package generator produces the baseline synthetic satisfaction dataset.
// Output is deterministic for a given seed and date range, and memoized so
// repeated reads never recompute the same series.
package generator

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// Promotion is a named promotional period that lifts daily scores while
// it runs. Overlapping promotions are additive.
type Promotion struct {
	Name  string
	Start time.Time
	End   time.Time // inclusive
	Bonus float64
}

// SpecialEvent is a one-day score penalty (maintenance, renovation).
type SpecialEvent struct {
	Name    string
	Date    time.Time
	Penalty float64
}

// Config holds the generator parameters. The zero value is not usable;
// use DefaultConfig for the standard reporting window.
type Config struct {
	Seed       int64
	Start      time.Time
	End        time.Time // inclusive
	BaseMean   float64
	BaseStdDev float64
}

// DefaultConfig returns the standard May 30 - Sep 30 2025 window with the
// canonical seed.
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		Start:      time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		BaseMean:   8.5,
		BaseStdDev: 1.2,
	}
}

const weekendPenalty = 0.3

// defaultPromotions returns the promotional calendar for the reporting
// window.
func defaultPromotions() []Promotion {
	return []Promotion{
		{
			Name:  "Father Day Special 15% OFF",
			Start: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			Bonus: 1.5,
		},
		{
			Name:  "Back to School Furniture",
			Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC),
			Bonus: 1.2,
		},
		{
			Name:  "Fall Collection Launch",
			Start: time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC),
			Bonus: 1.8,
		},
	}
}

// defaultSpecialEvents returns the one-day penalties in the reporting
// window.
func defaultSpecialEvents() []SpecialEvent {
	return []SpecialEvent{
		{Name: "System maintenance", Date: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), Penalty: 2.5},
		{Name: "Store renovation", Date: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), Penalty: 1.8},
	}
}

// Generator produces baseline daily records and the curated event log.
type Generator struct {
	logger        *slog.Logger
	promotions    []Promotion
	specialEvents []SpecialEvent

	mu    sync.Mutex
	daily map[string][]domain.DailyRecord
}

// New creates a generator with the default promotional calendar.
func New(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger:        logger.With(slog.String("component", "generator")),
		promotions:    defaultPromotions(),
		specialEvents: defaultSpecialEvents(),
		daily:         make(map[string][]domain.DailyRecord),
	}
}

// Daily returns one DailyRecord per calendar day in [cfg.Start, cfg.End].
// The series is memoized per (seed, range) so identical requests reuse the
// computed slice. Callers must not mutate the returned slice.
func (g *Generator) Daily(cfg Config) []domain.DailyRecord {
	key := fmt.Sprintf("%d|%s|%s", cfg.Seed, cfg.Start.Format("2006-01-02"), cfg.End.Format("2006-01-02"))

	g.mu.Lock()
	defer g.mu.Unlock()

	if cached, ok := g.daily[key]; ok {
		return cached
	}

	records := g.generateDaily(cfg)
	g.daily[key] = records

	g.logger.Info("baseline daily series generated",
		slog.Int64("seed", cfg.Seed),
		slog.String("start", cfg.Start.Format("2006-01-02")),
		slog.String("end", cfg.End.Format("2006-01-02")),
		slog.Int("days", len(records)))

	return records
}

func (g *Generator) generateDaily(cfg Config) []domain.DailyRecord {
	rng := rand.New(rand.NewSource(cfg.Seed))

	var records []domain.DailyRecord
	for date := cfg.Start; !date.After(cfg.End); date = date.AddDate(0, 0, 1) {
		score := rng.NormFloat64()*cfg.BaseStdDev + cfg.BaseMean

		// Adjustments apply in a fixed order: weekend penalty, promotion
		// bonuses, then one-day special events.
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			score -= weekendPenalty
		}
		for _, p := range g.promotions {
			if !date.Before(p.Start) && !date.After(p.End) {
				score += p.Bonus
			}
		}
		for _, ev := range g.specialEvents {
			if sameDay(date, ev.Date) {
				score -= ev.Penalty
			}
		}

		score = clamp(score, 0, 10)
		score = math.Round(score*10) / 10

		records = append(records, domain.NewDailyRecord(date, score))
	}
	return records
}

// Events returns the curated baseline event log. The slice is rebuilt on
// every call so callers may append to it freely.
func (g *Generator) Events() []domain.EventRecord {
	return []domain.EventRecord{
		{Date: day(2025, 8, 11), DayOfWeek: "Tuesday", FailedMetrics: "7/8", FailurePercentage: 87.5, Promotion: "Without promo", Severity: domain.SeverityCritical},
		{Date: day(2025, 8, 13), DayOfWeek: "Saturday", FailedMetrics: "6/8", FailurePercentage: 75.0, Promotion: "No promotion", Severity: domain.SeverityHigh},
		{Date: day(2025, 6, 29), DayOfWeek: "Monday", FailedMetrics: "6/8", FailurePercentage: 75.0, Promotion: "4th of July Event 7% OFF", Severity: domain.SeverityHigh},
		{Date: day(2025, 8, 7), DayOfWeek: "Sunday", FailedMetrics: "4/8", FailurePercentage: 50.0, Promotion: "No promotion", Severity: domain.SeverityMedium},
		{Date: day(2025, 8, 25), DayOfWeek: "Thursday", FailedMetrics: "4/8", FailurePercentage: 50.0, Promotion: "Without promo", Severity: domain.SeverityMedium},
		{Date: day(2025, 9, 22), DayOfWeek: "Tuesday", FailedMetrics: "4/8", FailurePercentage: 50.0, Promotion: "Without promo", Severity: domain.SeverityMedium},
		{Date: day(2025, 7, 14), DayOfWeek: "Tuesday", FailedMetrics: "3/8", FailurePercentage: 37.5, Promotion: "Anniversary Sale Kick Off", Severity: domain.SeverityLow},
		{Date: day(2025, 7, 8), DayOfWeek: "Wednesday", FailedMetrics: "3/8", FailurePercentage: 37.5, Promotion: "No promotion", Severity: domain.SeverityLow},
		{Date: day(2025, 8, 2), DayOfWeek: "Sunday", FailedMetrics: "3/8", FailurePercentage: 37.5, Promotion: "No promotion", Severity: domain.SeverityLow},
		{Date: day(2025, 8, 13), DayOfWeek: "Thursday", FailedMetrics: "3/8", FailurePercentage: 37.5, Promotion: "No promotion", Severity: domain.SeverityLow},
		{Date: day(2025, 8, 18), DayOfWeek: "Monday", FailedMetrics: "3/8", FailurePercentage: 37.5, Promotion: "No promotion", Severity: domain.SeverityLow},
		{Date: day(2025, 6, 15), DayOfWeek: "Monday", FailedMetrics: "2/8", FailurePercentage: 25.0, Promotion: "Father Day Special 15% OFF", Severity: domain.SeverityLow},
		{Date: day(2025, 9, 1), DayOfWeek: "Tuesday", FailedMetrics: "2/8", FailurePercentage: 25.0, Promotion: "Labor Day Sale", Severity: domain.SeverityLow},
		{Date: day(2025, 7, 20), DayOfWeek: "Monday", FailedMetrics: "1/8", FailurePercentage: 12.5, Promotion: "Summer Clearance 20% OFF", Severity: domain.SeverityLow},
		{Date: day(2025, 8, 24), DayOfWeek: "Sunday", FailedMetrics: "1/8", FailurePercentage: 12.5, Promotion: "Back to School Furniture", Severity: domain.SeverityLow},
		{Date: day(2025, 9, 15), DayOfWeek: "Friday", FailedMetrics: "0/8", FailurePercentage: 0.0, Promotion: "Fall Collection Launch", Severity: domain.SeverityLow},
	}
}

// Promotions returns the promotional calendar used for score adjustments.
func (g *Generator) Promotions() []Promotion {
	return g.promotions
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
