package dataprocessing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csatpulse/pkg/contracts/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "ISO date", input: "2025-08-13", want: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		{name: "ISO datetime truncates time", input: "2025-08-13 14:30:00", want: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		{name: "US slash format", input: "08/13/2025", want: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		{name: "long month name", input: "August 13, 2025", want: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		{name: "padded value", input: "  2025-08-13  ", want: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseUploadCSV(t *testing.T) {
	parser := NewParser(nil)

	csvData := "date,satisfaction_score,month\n2025-08-01,9.1,August 2025\n2025-08-02,8.7,August 2025\n"
	table, err := parser.ParseUpload("daily_update.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "satisfaction_score", "month"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "9.1", table.Cell(0, "satisfaction_score"))
}

func TestParseUploadRejectsUnsupportedExtension(t *testing.T) {
	parser := NewParser(nil)

	_, err := parser.ParseUpload("notes.txt", strings.NewReader("date\n2025-08-01\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseUploadRejectsEmptyCSV(t *testing.T) {
	parser := NewParser(nil)

	_, err := parser.ParseUpload("daily.csv", strings.NewReader("date,satisfaction_score\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestClassifyDataset(t *testing.T) {
	parser := NewParser(nil)

	tests := []struct {
		name     string
		columns  []string
		filename string
		want     domain.DatasetKind
	}{
		{
			name:     "satisfaction_score column wins",
			columns:  []string{"date", "satisfaction_score"},
			filename: "mystery.csv",
			want:     domain.DatasetDaily,
		},
		{
			name:     "daily in filename",
			columns:  []string{"date", "value"},
			filename: "daily_aug.csv",
			want:     domain.DatasetDaily,
		},
		{
			name:     "severity column",
			columns:  []string{"date", "severity", "failure_percentage"},
			filename: "incidents.csv",
			want:     domain.DatasetEvents,
		},
		{
			name:     "event in filename",
			columns:  []string{"date", "notes"},
			filename: "event_log.xlsx",
			want:     domain.DatasetEvents,
		},
		{
			name:     "date plus three columns falls back to daily",
			columns:  []string{"date", "a", "b"},
			filename: "mystery.csv",
			want:     domain.DatasetDaily,
		},
		{
			name:     "date with two columns is unknown",
			columns:  []string{"date", "a"},
			filename: "mystery.csv",
			want:     domain.DatasetUnknown,
		},
		{
			name:     "no signals at all",
			columns:  []string{"foo", "bar"},
			filename: "mystery.csv",
			want:     domain.DatasetUnknown,
		},
		{
			name:     "daily signal beats severity column",
			columns:  []string{"date", "severity", "satisfaction_score"},
			filename: "mixed.csv",
			want:     domain.DatasetDaily,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &domain.Table{Name: tt.filename, Columns: tt.columns}
			assert.Equal(t, tt.want, parser.Classify(table, tt.filename))
		})
	}
}

func TestCoerceDaily(t *testing.T) {
	parser := NewParser(nil)

	table := &domain.Table{
		Name:    "daily.csv",
		Columns: []string{"date", "satisfaction_score"},
		Rows: [][]string{
			{"2025-08-01", "9.1"},
			{"bogus", "8.0"},
			{"2025-08-03", "not-a-number"},
		},
	}

	records, warnings, err := parser.CoerceDaily(table)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 9.1, records[0].SatisfactionScore)
	assert.Equal(t, "August 2025", records[0].Month)
	assert.Equal(t, "Friday", records[0].DayName)

	// Malformed score coerces to zero, malformed date drops the row.
	assert.Equal(t, 0.0, records[1].SatisfactionScore)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "row 3")
	assert.Contains(t, warnings[0], "row dropped")
}

func TestCoerceDailyMissingDateColumn(t *testing.T) {
	parser := NewParser(nil)

	table := &domain.Table{
		Name:    "daily.csv",
		Columns: []string{"satisfaction_score"},
		Rows:    [][]string{{"9.1"}},
	}

	_, _, err := parser.CoerceDaily(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDateColumn)
}

func TestCoerceEvents(t *testing.T) {
	parser := NewParser(nil)

	table := &domain.Table{
		Name:    "events.csv",
		Columns: []string{"date", "severity", "failure_percentage", "promotion", "failed_metrics"},
		Rows: [][]string{
			{"2025-08-11", "critical", "87.5", "Summer Sale", "7/8"},
			{"2025-08-12", "unknown-label", "50", "", ""},
			{"2025-08-13", "Low", "120", "", "1/8"},
		},
	}

	records, warnings, err := parser.CoerceEvents(table)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, domain.SeverityCritical, records[0].Severity)
	assert.Equal(t, 87.5, records[0].FailurePercentage)
	assert.Equal(t, "7/8", records[0].FailedMetrics)

	// Out-of-range percentage clamps, defaults fill in blank cells.
	assert.Equal(t, 100.0, records[1].FailurePercentage)
	assert.Equal(t, "No promotion", records[1].Promotion)
	assert.Equal(t, "Wednesday", records[1].DayOfWeek)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "row 3")
}
