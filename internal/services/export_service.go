package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"csatpulse/internal/dataprocessing"
	"csatpulse/internal/exporter"
	"csatpulse/internal/infrastructure"
)

// ExportService writes the current dashboard datasets to date-stamped
// CSV files in the exports directory.
type ExportService struct {
	dashboard *DashboardService
	daily     *exporter.DailyExporter
	events    *exporter.EventsExporter
	risk      *exporter.RiskExporter
	metrics   *infrastructure.Metrics
	now       func() time.Time
	logger    *slog.Logger
}

// NewExportService creates an export service writing into exportsDir.
func NewExportService(dashboard *DashboardService, exportsDir string, metrics *infrastructure.Metrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		dashboard: dashboard,
		daily:     exporter.NewDailyExporter(exportsDir, logger),
		events:    exporter.NewEventsExporter(exportsDir, logger),
		risk:      exporter.NewRiskExporter(exportsDir, logger),
		metrics:   metrics,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "export_service")),
	}
}

// ExportInfo describes one written export file.
type ExportInfo struct {
	Dataset string `json:"dataset"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
}

// Export writes the named dataset ("daily", "events" or "risk") and
// returns the written file path.
func (s *ExportService) Export(ctx context.Context, dataset string) (*ExportInfo, error) {
	var (
		path string
		rows int
		err  error
	)

	switch dataset {
	case "daily":
		records := s.dashboard.DailyRecords(ctx)
		path, err = s.daily.Export(records, s.now())
		rows = len(records)

	case "events":
		events := s.dashboard.EventRecords(ctx)
		path, err = s.events.Export(events, s.now())
		rows = len(events)

	case "risk":
		profiles := dataprocessing.AllRiskProfiles()
		exportRows := make([]exporter.RiskRow, 0, len(profiles))
		for _, profile := range profiles {
			row := exporter.RiskRow{Profile: profile}
			if entry, ok := dataprocessing.RiskCatalogue(profile.Metric); ok {
				row.BusinessImpact = entry.BusinessImpact
			}
			exportRows = append(exportRows, row)
		}
		path, err = s.risk.Export(exportRows, s.now())
		rows = len(exportRows)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("dataset", dataset),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to export %s dataset: %w", dataset, err)
	}

	s.metrics.ExportsWritten.WithLabelValues(dataset).Inc()
	s.logger.InfoContext(ctx, "wrote export",
		slog.String("dataset", dataset),
		slog.String("path", path),
		slog.Int("rows", rows))

	return &ExportInfo{Dataset: dataset, Path: path, Rows: rows}, nil
}
