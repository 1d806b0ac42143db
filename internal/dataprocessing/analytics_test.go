package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csatpulse/pkg/contracts/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		want    domain.Classification
	}{
		{name: "at target", average: 9.0, want: domain.ClassificationExcellent},
		{name: "above target", average: 9.48, want: domain.ClassificationExcellent},
		{name: "half point below", average: 8.5, want: domain.ClassificationGood},
		{name: "just under good band", average: 8.49, want: domain.ClassificationNeedsImprovement},
		{name: "well below", average: 7.0, want: domain.ClassificationNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.average, domain.TargetScore))
		})
	}
}

func TestDaysBelowTarget(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		days    int
		want    int
	}{
		{name: "above target floors at zero", average: 9.48, days: 32, want: 0},
		{name: "at target", average: 9.0, days: 31, want: 0},
		{name: "half point short", average: 8.5, days: 31, want: 7},
		{name: "small shortfall", average: 8.91, days: 31, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBelowTarget(domain.TargetScore, tt.average, tt.days))
		})
	}
}

func TestRiskLevelForGap(t *testing.T) {
	tests := []struct {
		gap  float64
		want domain.RiskLevel
	}{
		{-0.48, domain.RiskLow},
		{0.19, domain.RiskLow},
		{0.2, domain.RiskLow},
		{0.21, domain.RiskMedium},
		{0.5, domain.RiskMedium},
		{0.51, domain.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelForGap(tt.gap), "gap %v", tt.gap)
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   domain.TrendDirection
	}{
		{name: "within deadband", scores: []float64{9.0, 9.1, 9.05}, want: domain.TrendStable},
		{name: "clears upper deadband", scores: []float64{9.0, 8.9, 9.2}, want: domain.TrendImproving},
		{name: "clears lower deadband", scores: []float64{9.2, 9.3, 9.0}, want: domain.TrendDeclining},
		{name: "single score", scores: []float64{9.0}, want: domain.TrendStable},
		{name: "empty", scores: nil, want: domain.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, direction := Trend(tt.scores)
			assert.Equal(t, tt.want, direction)
		})
	}
}

func TestBuildMetricSeries(t *testing.T) {
	// The reference metric carries zero offsets, so its averages equal
	// the period base scores.
	series := BuildMetricSeries(domain.MetricChargesStatedClearly)

	require.Len(t, series.Periods, 4)
	assert.Equal(t, domain.TargetScore, series.TargetScore)

	wantScores := []float64{9.48, 9.22, 9.16, 9.43}
	wantDays := []int{32, 31, 31, 30}
	for i, ps := range series.Periods {
		assert.Equal(t, wantScores[i], ps.AverageScore)
		assert.Equal(t, wantDays[i], ps.Period.Days)
		assert.Equal(t, 0, ps.DaysBelowTarget)
		assert.Equal(t, domain.ClassificationExcellent, ps.Classification)
	}
	assert.Equal(t, "May-June 2025", series.Periods[0].Period.Name)
	assert.Equal(t, "2025-05-30 to 2025-06-30", series.Periods[0].Period.Span)
}

func TestBuildMetricSeriesWithNegativeOffsets(t *testing.T) {
	series := BuildMetricSeries(domain.MetricCheckoutProcess)

	require.Len(t, series.Periods, 4)
	august := series.Periods[2]
	assert.Equal(t, 8.91, august.AverageScore)
	assert.Equal(t, domain.ClassificationGood, august.Classification)
	assert.Equal(t, 1, august.DaysBelowTarget)
	assert.InDelta(t, -0.09, august.PerformanceVsTarget, 1e-9)
}

func TestBuildRiskProfile(t *testing.T) {
	profile := BuildRiskProfile(domain.MetricOverallSatisfaction)

	assert.Equal(t, []float64{9.48, 9.38, 9.36, 9.48}, profile.MonthlyScores)
	assert.Equal(t, 9.48, profile.CurrentScore)
	assert.Equal(t, 9.43, profile.AverageScore)
	assert.InDelta(t, -0.48, profile.PerformanceGap, 1e-9)
	assert.Equal(t, domain.RiskLow, profile.RiskLevel)
	assert.Equal(t, domain.TrendStable, profile.TrendDirection)
}

func TestAllRiskProfilesCoverEveryMetric(t *testing.T) {
	profiles := AllRiskProfiles()

	require.Len(t, profiles, len(domain.AllMetrics()))
	for i, m := range domain.AllMetrics() {
		assert.Equal(t, m, profiles[i].Metric)
		assert.Len(t, profiles[i].MonthlyScores, 4)

		entry, ok := RiskCatalogue(m)
		require.True(t, ok, "metric %s missing catalogue entry", m)
		assert.NotEmpty(t, entry.BusinessImpact)
		assert.NotEmpty(t, entry.RiskFactors)
		assert.NotEmpty(t, entry.Recommendations)
	}
}

func TestBuildEvolutionInsights(t *testing.T) {
	insights := BuildEvolutionInsights()

	assert.Equal(t, domain.MetricSiteDesign, insights.TopPerformer)
	assert.Equal(t, 9.73, insights.TopScore)
	assert.Equal(t, domain.MetricCheckoutProcess, insights.NeedsAttention)
	assert.Equal(t, 9.31, insights.NeedsAttentionScore)
	assert.Contains(t, insights.Improving, domain.MetricLikelihoodToRecommend)
	assert.NotContains(t, insights.Declining, domain.MetricLikelihoodToRecommend)
}

func TestSummarizeDaily(t *testing.T) {
	records := []domain.DailyRecord{
		dailyAt(1, 9.5),
		dailyAt(2, 8.7),
		dailyAt(3, 9.0),
	}

	summary := SummarizeDaily(records, domain.TargetScore)

	assert.Equal(t, 3, summary.Days)
	assert.Equal(t, 9.07, summary.AverageScore)
	assert.Equal(t, 1, summary.DaysBelowTarget, "only strictly-below days count")
	assert.Equal(t, 9.5, summary.BestScore)
	assert.Equal(t, "2025-08-01", summary.BestDate)
	assert.Equal(t, 8.7, summary.WorstScore)
	assert.Equal(t, "2025-08-02", summary.WorstDate)
}

func TestSummarizeDailyEmpty(t *testing.T) {
	summary := SummarizeDaily(nil, domain.TargetScore)
	assert.Equal(t, domain.DailySummary{}, summary)
}

func TestSummarizeEvents(t *testing.T) {
	events := []domain.EventRecord{
		severityEvent(11, domain.SeverityCritical, 87.5, "Summer Sale"),
		severityEvent(12, domain.SeverityLow, 12.5, "No promotion"),
		severityEvent(13, domain.SeverityHigh, 70.0, "No promotion"),
	}

	summary := SummarizeEvents(events)

	assert.Equal(t, 3, summary.Events)
	assert.InDelta(t, 56.67, summary.AverageFailurePct, 1e-9)
	assert.Equal(t, 1, summary.CriticalCount)
	assert.Equal(t, 2, summary.HighRiskDays, "threshold is inclusive at 70")
	assert.Equal(t, 1, summary.PromotionDays)
}

func TestWeekdayFailureBreakdown(t *testing.T) {
	events := []domain.EventRecord{
		severityEvent(11, domain.SeverityHigh, 80, ""), // Monday
		severityEvent(18, domain.SeverityHigh, 60, ""), // Monday
		severityEvent(12, domain.SeverityLow, 50, ""),  // Tuesday
	}

	breakdown := WeekdayFailureBreakdown(events)

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Monday", breakdown[0].DayOfWeek)
	assert.Equal(t, 70.0, breakdown[0].AverageFailurePct)
	assert.Equal(t, 2, breakdown[0].Events)
	assert.Equal(t, "Tuesday", breakdown[1].DayOfWeek)
	assert.Equal(t, 1, breakdown[1].Events)
}

func TestBuildOverview(t *testing.T) {
	daily := []domain.DailyRecord{
		dailyAt(1, 9.0),
		dailyAt(2, 9.1),
		dailyAt(3, 8.8),
	}
	events := []domain.EventRecord{
		severityEvent(2, domain.SeverityLow, 12.5, ""),
	}

	overview := BuildOverview(daily, events, 2)

	assert.Equal(t, day(1), overview.MinDate)
	assert.Equal(t, day(3), overview.MaxDate)
	assert.Equal(t, 3, overview.TotalDays)
	assert.Equal(t, 1, overview.TotalEvents)
	assert.Equal(t, 2, overview.UploadedFiles)
}

func TestSummarizeSeries(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		summary := SummarizeSeries(nil)
		assert.Zero(t, summary.TotalDays)
		assert.Equal(t, domain.TrendStable, summary.TrendDirection)
	})

	t.Run("full checkout process series", func(t *testing.T) {
		series := BuildMetricSeries(domain.MetricCheckoutProcess)
		summary := SummarizeSeries(series.Periods)

		assert.Equal(t, 9.14, summary.AverageScore)
		assert.Equal(t, 3, summary.ExcellentPeriods)
		assert.Equal(t, 1, summary.DaysBelowTarget)
		assert.Equal(t, 124, summary.TotalDays)
		assert.Equal(t, 0.03, summary.TrendDelta)
		assert.Equal(t, domain.TrendStable, summary.TrendDirection)
	})

	t.Run("single period has no trend", func(t *testing.T) {
		series := BuildMetricSeries(domain.MetricOverallSatisfaction)
		summary := SummarizeSeries(series.Periods[:1])

		assert.Equal(t, 9.48, summary.AverageScore)
		assert.Equal(t, domain.TrendStable, summary.TrendDirection)
		assert.Zero(t, summary.TrendDelta)
	})
}
