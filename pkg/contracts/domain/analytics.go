package domain

import (
	"fmt"
	"strings"
)

// TargetScore is the fixed target shared by all satisfaction sub-metrics.
const TargetScore = 9.0

// Metric names one of the eight tracked satisfaction sub-metrics.
type Metric string

const (
	MetricOverallSatisfaction  Metric = "Overall Satisfaction"
	MetricLikelihoodToBuyAgain Metric = "Likelihood to Buy Again"
	MetricLikelihoodToRecommend Metric = "Likelihood to Recommend"
	MetricSiteDesign           Metric = "Site Design"
	MetricEaseOfFinding        Metric = "Ease of Finding"
	MetricProductInfoClarity   Metric = "Product Information Clarity"
	MetricChargesStatedClearly Metric = "Charges Stated Clearly"
	MetricCheckoutProcess      Metric = "Checkout Process"
)

// AllMetrics lists the tracked metrics in their canonical display order.
func AllMetrics() []Metric {
	return []Metric{
		MetricOverallSatisfaction,
		MetricLikelihoodToBuyAgain,
		MetricLikelihoodToRecommend,
		MetricSiteDesign,
		MetricEaseOfFinding,
		MetricProductInfoClarity,
		MetricChargesStatedClearly,
		MetricCheckoutProcess,
	}
}

// ParseMetric resolves a metric name case-insensitively, accepting both
// spaces and hyphens as word separators so the name survives URL paths.
func ParseMetric(value string) (Metric, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "-", " "))
	for _, m := range AllMetrics() {
		if strings.ToLower(string(m)) == normalized {
			return m, nil
		}
	}
	return "", fmt.Errorf("unrecognized metric %q", value)
}

// Classification buckets a period average against the target score.
type Classification string

const (
	ClassificationExcellent        Classification = "Excellent"
	ClassificationGood             Classification = "Good"
	ClassificationNeedsImprovement Classification = "Needs Improvement"
)

// RiskLevel buckets a performance gap via the fixed 0.2/0.5 thresholds.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskHigh   RiskLevel = "High Risk"
)

// TrendDirection labels the change from the first to the last period,
// with a ±0.1 deadband around zero.
type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendDeclining TrendDirection = "Declining"
	TrendStable    TrendDirection = "Stable"
)

// Period is one of the four fixed comparison periods of the reporting
// window.
type Period struct {
	Name string `json:"name"` // e.g. "July 2025"
	Span string `json:"span"` // e.g. "2025-07-01 to 2025-07-31"
	Days int    `json:"days"`
}

// PeriodScore is one period's derived statistics for a single metric.
type PeriodScore struct {
	Period              Period         `json:"period"`
	AverageScore        float64        `json:"average_score"`
	DaysBelowTarget     int            `json:"days_below_target"`
	DaysBelowPercentage float64        `json:"days_below_percentage"`
	PerformanceVsTarget float64        `json:"performance_vs_target"`
	Classification      Classification `json:"classification"`
}

// MetricSeries is the per-period view of a single metric against its
// target. It is derived on every read and never persisted.
type MetricSeries struct {
	Metric      Metric        `json:"metric"`
	TargetScore float64       `json:"target_score"`
	Periods     []PeriodScore `json:"periods"`
}

// SeriesSummary aggregates the selected periods of a metric series:
// mean score, how many periods classified Excellent, summed estimated
// days below target over the total days, and the trend across the
// selection.
type SeriesSummary struct {
	AverageScore     float64        `json:"average_score"`
	ExcellentPeriods int            `json:"excellent_periods"`
	DaysBelowTarget  int            `json:"days_below_target"`
	TotalDays        int            `json:"total_days"`
	TrendDelta       float64        `json:"trend_delta"`
	TrendDirection   TrendDirection `json:"trend_direction"`
}

// RiskProfile is the risk view of a single metric derived from its four
// fixed period scores.
type RiskProfile struct {
	Metric         Metric         `json:"metric"`
	TargetScore    float64        `json:"target_score"`
	MonthlyScores  []float64      `json:"monthly_scores"`
	CurrentScore   float64        `json:"current_score"`
	AverageScore   float64        `json:"average_score"`
	PerformanceGap float64        `json:"performance_gap"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	TrendDelta     float64        `json:"trend_delta"`
	TrendDirection TrendDirection `json:"trend_direction"`
}

// RiskCatalogueEntry carries the curated business-intelligence notes
// attached to each metric's risk profile.
type RiskCatalogueEntry struct {
	Metric          Metric   `json:"metric"`
	RiskFactors     []string `json:"risk_factors"`
	BusinessImpact  string   `json:"business_impact"`
	Recommendations []string `json:"recommendations"`
}

// EvolutionInsights summarizes how the full metric set moved across the
// reporting window.
type EvolutionInsights struct {
	TopPerformer     Metric   `json:"top_performer"`
	TopScore         float64  `json:"top_score"`
	NeedsAttention   Metric   `json:"needs_attention"`
	NeedsAttentionScore float64 `json:"needs_attention_score"`
	Improving        []Metric `json:"improving"`
	Declining        []Metric `json:"declining"`
}
