package exporter

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// DailyExporter generates the daily satisfaction CSV export.
type DailyExporter struct {
	csvWriter *CSVWriter
}

// NewDailyExporter creates a new daily exporter.
func NewDailyExporter(exportsDir string, logger *slog.Logger) *DailyExporter {
	return &DailyExporter{
		csvWriter: NewCSVWriter(exportsDir, logger),
	}
}

// Filename returns the dated export filename for the given day.
func (d *DailyExporter) Filename(now time.Time) string {
	return fmt.Sprintf("satisfaction_data_%s.csv", now.Format("20060102"))
}

func (d *DailyExporter) headers() []string {
	return []string{"Date", "Satisfaction_Score", "Month", "Day_Name", "Is_Weekend", "ISO_Week"}
}

// Export streams the daily records into a dated CSV file and returns
// the path written.
func (d *DailyExporter) Export(records []domain.DailyRecord, now time.Time) (string, error) {
	stream, err := d.csvWriter.CreateStreamWriter(d.Filename(now), d.headers())
	if err != nil {
		return "", fmt.Errorf("failed to create daily export: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Date.Format("2006-01-02"),
			formatScore(record.SatisfactionScore),
			record.Month,
			record.DayName,
			formatBool(record.IsWeekend),
			strconv.Itoa(record.ISOWeek),
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return "", fmt.Errorf("failed to write daily export row: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize daily export: %w", err)
	}

	return stream.Path(), nil
}
