package exporter

import (
	"fmt"
	"log/slog"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// EventsExporter generates the events CSV export.
type EventsExporter struct {
	csvWriter *CSVWriter
}

// NewEventsExporter creates a new events exporter.
func NewEventsExporter(exportsDir string, logger *slog.Logger) *EventsExporter {
	return &EventsExporter{
		csvWriter: NewCSVWriter(exportsDir, logger),
	}
}

// Filename returns the dated export filename for the given day.
func (e *EventsExporter) Filename(now time.Time) string {
	return fmt.Sprintf("events_data_%s.csv", now.Format("20060102"))
}

func (e *EventsExporter) headers() []string {
	return []string{"Date", "Day_Of_Week", "Failed_Metrics", "Failure_Percentage", "Promotion", "Severity"}
}

// Export writes the event records into a dated CSV file and returns the
// path written.
func (e *EventsExporter) Export(events []domain.EventRecord, now time.Time) (string, error) {
	records := make([][]string, 0, len(events))
	for _, event := range events {
		records = append(records, []string{
			event.Date.Format("2006-01-02"),
			event.DayOfWeek,
			event.FailedMetrics,
			formatFloat(event.FailurePercentage),
			event.Promotion,
			string(event.Severity),
		})
	}

	filename := e.Filename(now)
	if err := e.csvWriter.WriteSimpleCSV(filename, e.headers(), records); err != nil {
		return "", fmt.Errorf("failed to write events export: %w", err)
	}

	return e.csvWriter.resolvePath(filename), nil
}
