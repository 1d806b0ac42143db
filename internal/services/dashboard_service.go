package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"csatpulse/internal/dataprocessing"
	"csatpulse/internal/generator"
	"csatpulse/internal/infrastructure"
	"csatpulse/internal/store"
	apiv1 "csatpulse/pkg/contracts/api/v1"
	"csatpulse/pkg/contracts/domain"
)

// DashboardService assembles the dashboard views. Each read merges the
// generated baseline with the uploaded overlays and recomputes the view
// from scratch.
type DashboardService struct {
	gen     *generator.Generator
	genCfg  generator.Config
	uploads *store.UploadStore
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(gen *generator.Generator, genCfg generator.Config, uploads *store.UploadStore, metrics *infrastructure.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		gen:     gen,
		genCfg:  genCfg,
		uploads: uploads,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

func (s *DashboardService) countView(view string) {
	s.metrics.ViewsComputed.WithLabelValues(view).Inc()
}

// DailyView is the daily timeline response.
type DailyView struct {
	Records []domain.DailyRecord `json:"records"`
	Summary domain.DailySummary  `json:"summary"`
	Warning string               `json:"warning,omitempty"`
}

// EventsView is the events table response.
type EventsView struct {
	Events           []domain.EventRecord    `json:"events"`
	Summary          domain.EventsSummary    `json:"summary"`
	WeekdayBreakdown []domain.WeekdayFailure `json:"weekday_breakdown"`
	Warning          string                  `json:"warning,omitempty"`
}

// ComparisonView pairs a metric's per-period series with the aggregate
// summary over the selected periods.
type ComparisonView struct {
	Series  domain.MetricSeries  `json:"series"`
	Summary domain.SeriesSummary `json:"summary"`
}

// RiskView pairs one metric's risk profile with its curated notes.
type RiskView struct {
	Profile   domain.RiskProfile        `json:"profile"`
	Catalogue domain.RiskCatalogueEntry `json:"catalogue"`
}

// RiskOverview is the full risk tab response.
type RiskOverview struct {
	Profiles []RiskView               `json:"profiles"`
	Insights domain.EvolutionInsights `json:"insights"`
}

const partialRangeWarning = "both start and end dates are required for date filtering; showing unfiltered data"

// DailyRecords returns the merged daily dataset backing every view.
func (s *DashboardService) DailyRecords(ctx context.Context) []domain.DailyRecord {
	base := s.gen.Daily(s.genCfg)
	return dataprocessing.MergeByDate(base, s.uploads.DailyTables())
}

// EventRecords returns the merged events dataset.
func (s *DashboardService) EventRecords(ctx context.Context) []domain.EventRecord {
	return dataprocessing.MergeByDate(s.gen.Events(), s.uploads.EventTables())
}

// Daily builds the daily timeline view.
func (s *DashboardService) Daily(ctx context.Context, req apiv1.DailyViewRequest) (*DailyView, error) {
	records := s.DailyRecords(ctx)

	s.countView("daily")

	view := &DailyView{}
	dateRange, warning, err := parseDateRange(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	view.Warning = warning

	records, err = dataprocessing.FilterByDateRange(records, dateRange)
	if err != nil {
		return nil, err
	}

	records = dataprocessing.FilterDailyByMonth(records, req.Month)

	view.Records = records
	view.Summary = dataprocessing.SummarizeDaily(records, domain.TargetScore)

	s.logger.DebugContext(ctx, "built daily view",
		slog.Int("records", len(records)),
		slog.String("month", req.Month))

	return view, nil
}

// Events builds the events view.
func (s *DashboardService) Events(ctx context.Context, req apiv1.EventsViewRequest) (*EventsView, error) {
	events := s.EventRecords(ctx)

	s.countView("events")

	view := &EventsView{}
	dateRange, warning, err := parseDateRange(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	view.Warning = warning

	events, err = dataprocessing.FilterByDateRange(events, dateRange)
	if err != nil {
		return nil, err
	}

	filter := dataprocessing.EventFilter{
		MinFailurePct: req.MinFailurePct,
		Promotion:     req.Promotion,
		Severities:    severitySet(req.Severities),
	}
	events = dataprocessing.FilterEvents(events, filter)

	sortKey := domain.EventSortKey(req.SortBy)
	if !sortKey.Valid() {
		sortKey = domain.EventSortDate
	}
	events = dataprocessing.SortEvents(events, sortKey, req.Order != "desc")

	view.Events = events
	view.Summary = dataprocessing.SummarizeEvents(events)
	view.WeekdayBreakdown = dataprocessing.WeekdayFailureBreakdown(events)

	return view, nil
}

// MonthlyComparison builds the per-period comparison for one metric,
// optionally restricted to a subset of the named periods.
func (s *DashboardService) MonthlyComparison(ctx context.Context, req apiv1.MonthlyComparisonRequest) (*ComparisonView, error) {
	metric, err := domain.ParseMetric(req.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, err)
	}

	s.countView("monthly")
	series := dataprocessing.BuildMetricSeries(metric)
	if len(req.Periods) > 0 {
		wanted := make(map[string]bool, len(req.Periods))
		for _, name := range req.Periods {
			wanted[name] = true
		}

		selected := make([]domain.PeriodScore, 0, len(series.Periods))
		for _, ps := range series.Periods {
			if wanted[ps.Period.Name] {
				selected = append(selected, ps)
				delete(wanted, ps.Period.Name)
			}
		}
		for name := range wanted {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
		}
		series.Periods = selected
	}

	return &ComparisonView{
		Series:  series,
		Summary: dataprocessing.SummarizeSeries(series.Periods),
	}, nil
}

// Risk builds the risk view for one metric.
func (s *DashboardService) Risk(ctx context.Context, metricName string) (*RiskView, error) {
	metric, err := domain.ParseMetric(metricName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, err)
	}

	view := &RiskView{Profile: dataprocessing.BuildRiskProfile(metric)}
	if entry, ok := dataprocessing.RiskCatalogue(metric); ok {
		view.Catalogue = entry
	}
	return view, nil
}

// RiskSummary builds the full risk tab: every metric's profile plus the
// evolution insights.
func (s *DashboardService) RiskSummary(ctx context.Context) *RiskOverview {
	s.countView("risk")
	profiles := dataprocessing.AllRiskProfiles()
	overview := &RiskOverview{
		Profiles: make([]RiskView, 0, len(profiles)),
		Insights: dataprocessing.BuildEvolutionInsights(),
	}
	for _, profile := range profiles {
		view := RiskView{Profile: profile}
		if entry, ok := dataprocessing.RiskCatalogue(profile.Metric); ok {
			view.Catalogue = entry
		}
		overview.Profiles = append(overview.Profiles, view)
	}
	return overview
}

// Overview describes the merged dataset currently backing the dashboard.
func (s *DashboardService) Overview(ctx context.Context) domain.DatasetOverview {
	return dataprocessing.BuildOverview(s.DailyRecords(ctx), s.EventRecords(ctx), s.uploads.FileCount())
}

// parseDateRange converts the request bounds. A partial range is a
// warning, never a filter; bound parse failures are validation errors.
func parseDateRange(req apiv1.DateRangeRequest) (dataprocessing.DateRange, string, error) {
	if req.Partial() {
		return dataprocessing.DateRange{}, partialRangeWarning, nil
	}
	if !req.Bounded() {
		return dataprocessing.DateRange{}, "", nil
	}

	start, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return dataprocessing.DateRange{}, "", fmt.Errorf("invalid from date %q: %w", req.From, err)
	}
	end, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return dataprocessing.DateRange{}, "", fmt.Errorf("invalid to date %q: %w", req.To, err)
	}

	return dataprocessing.DateRange{Start: &start, End: &end}, "", nil
}

// severitySet converts the request's severity list. A nil list means
// the client did not filter, so every severity is included; the empty
// set semantics only apply to an explicit empty selection.
func severitySet(names []string) map[domain.Severity]bool {
	if names == nil {
		set := make(map[domain.Severity]bool, 4)
		for _, s := range domain.AllSeverities() {
			set[s] = true
		}
		return set
	}

	set := make(map[domain.Severity]bool, len(names))
	for _, name := range names {
		if severity, err := domain.ParseSeverity(name); err == nil {
			set[severity] = true
		}
	}
	return set
}
