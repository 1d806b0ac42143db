package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csatpulse/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

func dailyAt(d int, score float64) domain.DailyRecord {
	return domain.NewDailyRecord(day(d), score)
}

func TestMergeByDateNoUploadsReturnsBaseUnchanged(t *testing.T) {
	// Base duplicates survive untouched until an upload triggers dedup.
	base := []domain.DailyRecord{
		dailyAt(13, 9.0),
		dailyAt(13, 8.5),
		dailyAt(14, 9.2),
	}

	merged := MergeByDate(base, nil)

	require.Len(t, merged, 3)
	assert.Equal(t, base, merged)
}

func TestMergeByDateUploadOverridesBase(t *testing.T) {
	base := []domain.DailyRecord{
		dailyAt(1, 9.0),
		dailyAt(2, 8.8),
	}
	upload := []domain.DailyRecord{
		dailyAt(2, 7.5),
		dailyAt(3, 9.3),
	}

	merged := MergeByDate(base, [][]domain.DailyRecord{upload})

	require.Len(t, merged, 3)
	assert.Equal(t, 9.0, merged[0].SatisfactionScore)
	assert.Equal(t, 7.5, merged[1].SatisfactionScore, "upload should override base for the same date")
	assert.Equal(t, 9.3, merged[2].SatisfactionScore)
}

func TestMergeByDateLaterUploadWins(t *testing.T) {
	base := []domain.DailyRecord{dailyAt(1, 9.0)}
	first := []domain.DailyRecord{dailyAt(1, 8.0)}
	second := []domain.DailyRecord{dailyAt(1, 7.0)}

	merged := MergeByDate(base, [][]domain.DailyRecord{first, second})

	require.Len(t, merged, 1)
	assert.Equal(t, 7.0, merged[0].SatisfactionScore)
}

func TestMergeByDateSortsAscending(t *testing.T) {
	base := []domain.DailyRecord{
		dailyAt(20, 9.0),
		dailyAt(5, 8.8),
	}
	upload := []domain.DailyRecord{dailyAt(12, 9.1)}

	merged := MergeByDate(base, [][]domain.DailyRecord{upload})

	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.True(t, merged[i-1].Date.Before(merged[i].Date),
			"records must be ordered ascending by date")
	}
}

func TestMergeByDateDeduplicatesBaseOnceUploadsPresent(t *testing.T) {
	base := []domain.DailyRecord{
		dailyAt(13, 9.0),
		dailyAt(13, 8.5),
	}
	upload := []domain.DailyRecord{dailyAt(25, 9.9)}

	merged := MergeByDate(base, [][]domain.DailyRecord{upload})

	require.Len(t, merged, 2)
	assert.Equal(t, 8.5, merged[0].SatisfactionScore, "later base duplicate wins")
	assert.Equal(t, 9.9, merged[1].SatisfactionScore)
}

func TestMergeByDateWorksForEvents(t *testing.T) {
	base := []domain.EventRecord{
		{Date: day(11), Severity: domain.SeverityCritical, FailurePercentage: 87.5},
	}
	upload := []domain.EventRecord{
		{Date: day(11), Severity: domain.SeverityLow, FailurePercentage: 12.5},
	}

	merged := MergeByDate(base, [][]domain.EventRecord{upload})

	require.Len(t, merged, 1)
	assert.Equal(t, domain.SeverityLow, merged[0].Severity)
}
