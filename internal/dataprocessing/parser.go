package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"csatpulse/pkg/contracts/domain"
)

// Sentinel errors surfaced to the ingestion boundary. They are wrapped
// with file context, so callers should match with errors.Is.
var (
	ErrMissingDateColumn = errors.New("missing required 'date' column")
	ErrUnknownDataset    = errors.New("could not determine file type: include 'satisfaction_score' for daily data or 'severity' for events data")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no data rows")
)

// dateLayouts lists the accepted date representations, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// ParseDate coerces a raw cell value to a calendar date, trying each
// accepted layout in order. The time component, if any, is truncated.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// Parser reads uploaded tabular files into tables and coerces them into
// typed daily or event records.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates an upload parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With(slog.String("component", "upload_parser"))}
}

// ParseUpload reads a delimited-text or spreadsheet upload into a Table.
// The format is chosen by file extension: .csv is parsed as delimited
// text, .xlsx/.xls via excelize. The first row is the header row.
func (p *Parser) ParseUpload(filename string, r io.Reader) (*domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return p.parseCSV(filename, r)
	case ".xlsx", ".xls":
		return p.parseExcel(filename, r)
	default:
		return nil, fmt.Errorf("%s: %w (extension %q)", filename, ErrUnsupportedFormat, ext)
	}
}

func (p *Parser) parseCSV(filename string, r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CSV content: %w", filename, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyFile)
	}

	table := &domain.Table{
		Name:    filename,
		Columns: normalizeHeader(rows[0]),
		Rows:    rows[1:],
	}

	p.logger.Debug("parsed CSV upload",
		slog.String("file", filename),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

func (p *Parser) parseExcel(filename string, r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open spreadsheet: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyFile)
	}

	// First sheet with at least a header and one data row wins.
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		table := &domain.Table{
			Name:    filename,
			Columns: normalizeHeader(rows[0]),
			Rows:    rows[1:],
		}

		p.logger.Debug("parsed Excel upload",
			slog.String("file", filename),
			slog.String("sheet", sheet),
			slog.Int("rows", len(table.Rows)),
			slog.Int("columns", len(table.Columns)))

		return table, nil
	}

	return nil, fmt.Errorf("%s: %w", filename, ErrEmptyFile)
}

// normalizeHeader trims surrounding whitespace from column names so
// lookups match regardless of padding in the source file.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}

// Classify determines whether an uploaded table carries daily or event
// data. Decision order, first match wins:
//
//  1. satisfaction_score column or "daily" in the filename → Daily
//  2. severity column or "event" in the filename → Events
//  3. date column and at least 3 columns → Daily (ambiguous fallback)
//  4. otherwise → Unknown
func (p *Parser) Classify(table *domain.Table, filename string) domain.DatasetKind {
	lowerName := strings.ToLower(filename)

	switch {
	case table.HasColumn("satisfaction_score") || strings.Contains(lowerName, "daily"):
		return domain.DatasetDaily
	case table.HasColumn("severity") || strings.Contains(lowerName, "event"):
		return domain.DatasetEvents
	case table.HasColumn("date") && len(table.Columns) >= 3:
		return domain.DatasetDaily
	default:
		return domain.DatasetUnknown
	}
}

// CoerceDaily converts a classified daily table into DailyRecords.
// Rows whose date cannot be parsed are dropped with a warning; other
// columns tolerate absence and malformed values (they become zero
// values). A table without a date column is rejected outright.
func (p *Parser) CoerceDaily(table *domain.Table) ([]domain.DailyRecord, []string, error) {
	if !table.HasColumn("date") {
		return nil, nil, fmt.Errorf("%s: %w", table.Name, ErrMissingDateColumn)
	}

	var (
		records  []domain.DailyRecord
		warnings []string
	)
	for i := range table.Rows {
		date, err := ParseDate(table.Cell(i, "date"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v, row dropped", i+2, err))
			continue
		}

		score := parseFloat(table.Cell(i, "satisfaction_score"))
		records = append(records, domain.NewDailyRecord(date, score))
	}

	if len(warnings) > 0 {
		p.logger.Warn("dropped rows with unparseable dates",
			slog.String("file", table.Name),
			slog.Int("dropped", len(warnings)))
	}

	return records, warnings, nil
}

// CoerceEvents converts a classified events table into EventRecords,
// with the same per-row date policy as CoerceDaily. An unrecognized
// severity value drops the row rather than admitting an open-ended
// string into the closed enum.
func (p *Parser) CoerceEvents(table *domain.Table) ([]domain.EventRecord, []string, error) {
	if !table.HasColumn("date") {
		return nil, nil, fmt.Errorf("%s: %w", table.Name, ErrMissingDateColumn)
	}

	var (
		records  []domain.EventRecord
		warnings []string
	)
	for i := range table.Rows {
		date, err := ParseDate(table.Cell(i, "date"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v, row dropped", i+2, err))
			continue
		}

		severity, err := domain.ParseSeverity(table.Cell(i, "severity"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v, row dropped", i+2, err))
			continue
		}

		dayOfWeek := strings.TrimSpace(table.Cell(i, "day_of_week"))
		if dayOfWeek == "" {
			dayOfWeek = date.Weekday().String()
		}

		promotion := strings.TrimSpace(table.Cell(i, "promotion"))
		if promotion == "" {
			promotion = "No promotion"
		}

		records = append(records, domain.EventRecord{
			Date:              date,
			DayOfWeek:         dayOfWeek,
			FailedMetrics:     strings.TrimSpace(table.Cell(i, "failed_metrics")),
			FailurePercentage: clampPct(parseFloat(table.Cell(i, "failure_percentage"))),
			Promotion:         promotion,
			Severity:          severity,
		})
	}

	if len(warnings) > 0 {
		p.logger.Warn("dropped rows during event coercion",
			slog.String("file", table.Name),
			slog.Int("dropped", len(warnings)))
	}

	return records, warnings, nil
}

func parseFloat(value string) float64 {
	parsed, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
	return parsed
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
