package exporter

import (
	"fmt"
	"log/slog"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// RiskExporter generates the per-metric risk analysis CSV export,
// business-impact notes included.
type RiskExporter struct {
	csvWriter *CSVWriter
}

// NewRiskExporter creates a new risk exporter.
func NewRiskExporter(exportsDir string, logger *slog.Logger) *RiskExporter {
	return &RiskExporter{
		csvWriter: NewCSVWriter(exportsDir, logger),
	}
}

// Filename returns the dated export filename for the given day.
func (e *RiskExporter) Filename(now time.Time) string {
	return fmt.Sprintf("risk_analysis_%s.csv", now.Format("20060102"))
}

func (e *RiskExporter) headers() []string {
	return []string{"Metric", "Current_Score", "Target_Score", "Performance_Gap", "Trend_Direction", "Risk_Level", "Business_Impact"}
}

// RiskRow pairs a metric's risk profile with its catalogue notes.
type RiskRow struct {
	Profile        domain.RiskProfile
	BusinessImpact string
}

// Export writes the risk rows into a dated CSV file and returns the
// path written.
func (e *RiskExporter) Export(rows []RiskRow, now time.Time) (string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			string(row.Profile.Metric),
			formatFloat(row.Profile.CurrentScore),
			formatFloat(row.Profile.TargetScore),
			formatFloat(row.Profile.PerformanceGap),
			string(row.Profile.TrendDirection),
			string(row.Profile.RiskLevel),
			row.BusinessImpact,
		})
	}

	filename := e.Filename(now)
	if err := e.csvWriter.WriteSimpleCSV(filename, e.headers(), records); err != nil {
		return "", fmt.Errorf("failed to write risk export: %w", err)
	}

	return e.csvWriter.resolvePath(filename), nil
}
