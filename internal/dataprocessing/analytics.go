package dataprocessing

import (
	"math"
	"time"

	"csatpulse/pkg/contracts/domain"
)

const highRiskFailureThreshold = 70.0

// Classify buckets a period average against the target score:
// Excellent at or above target, Good within half a point below it.
func Classify(average, target float64) domain.Classification {
	switch {
	case average >= target:
		return domain.ClassificationExcellent
	case average >= target-0.5:
		return domain.ClassificationGood
	default:
		return domain.ClassificationNeedsImprovement
	}
}

// DaysBelowTarget estimates how many days of a period fell below the
// target from the period average alone. The estimate is proportional to
// the shortfall and floors at zero when the average meets the target.
func DaysBelowTarget(target, average float64, periodDays int) int {
	below := int(math.Floor((target - average) * float64(periodDays) / 2))
	if below < 0 {
		return 0
	}
	return below
}

// RiskLevelForGap buckets a performance gap. Gaps up to 0.2 inclusive
// are low risk, up to 0.5 inclusive medium, beyond that high.
func RiskLevelForGap(gap float64) domain.RiskLevel {
	switch {
	case gap > 0.5:
		return domain.RiskHigh
	case gap > 0.2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// Trend compares the last period score against the first with a ±0.1
// deadband and returns the delta together with its direction.
func Trend(scores []float64) (float64, domain.TrendDirection) {
	if len(scores) < 2 {
		return 0, domain.TrendStable
	}
	delta := scores[len(scores)-1] - scores[0]
	switch {
	case delta > 0.1:
		return delta, domain.TrendImproving
	case delta < -0.1:
		return delta, domain.TrendDeclining
	default:
		return delta, domain.TrendStable
	}
}

// BuildMetricSeries derives the per-period comparison view for a metric
// from the period base scores and the metric's variation offsets.
func BuildMetricSeries(metric domain.Metric) domain.MetricSeries {
	periods := ReportingPeriods()
	variations, ok := metricVariations[metric]
	if !ok {
		variations = make([]float64, len(periods))
	}
	series := domain.MetricSeries{
		Metric:      metric,
		TargetScore: domain.TargetScore,
		Periods:     make([]domain.PeriodScore, 0, len(periods)),
	}
	for i, p := range periods {
		avg := round2(periodBaseScores[i] + variations[i])
		below := DaysBelowTarget(domain.TargetScore, avg, p.Days)
		series.Periods = append(series.Periods, domain.PeriodScore{
			Period:              p,
			AverageScore:        avg,
			DaysBelowTarget:     below,
			DaysBelowPercentage: round2(float64(below) / float64(p.Days) * 100),
			PerformanceVsTarget: round2(avg - domain.TargetScore),
			Classification:      Classify(avg, domain.TargetScore),
		})
	}
	return series
}

// SummarizeSeries aggregates the periods of a comparison view. The
// trend is computed over the period scores in their given order.
func SummarizeSeries(periods []domain.PeriodScore) domain.SeriesSummary {
	summary := domain.SeriesSummary{TrendDirection: domain.TrendStable}
	if len(periods) == 0 {
		return summary
	}

	scores := make([]float64, 0, len(periods))
	var total float64
	for _, ps := range periods {
		total += ps.AverageScore
		scores = append(scores, ps.AverageScore)
		summary.DaysBelowTarget += ps.DaysBelowTarget
		summary.TotalDays += ps.Period.Days
		if ps.Classification == domain.ClassificationExcellent {
			summary.ExcellentPeriods++
		}
	}

	summary.AverageScore = round2(total / float64(len(periods)))
	delta, direction := Trend(scores)
	summary.TrendDelta = round2(delta)
	summary.TrendDirection = direction
	return summary
}

// BuildRiskProfile derives the risk view for a metric from its observed
// monthly survey scores. Metrics without catalogue scores get a zeroed
// profile so callers can treat the result uniformly.
func BuildRiskProfile(metric domain.Metric) domain.RiskProfile {
	scores := metricMonthlyScores[metric]
	profile := domain.RiskProfile{
		Metric:        metric,
		TargetScore:   domain.TargetScore,
		MonthlyScores: scores,
	}
	if len(scores) == 0 {
		profile.RiskLevel = domain.RiskLow
		profile.TrendDirection = domain.TrendStable
		return profile
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	profile.CurrentScore = scores[len(scores)-1]
	profile.AverageScore = round2(sum / float64(len(scores)))
	profile.PerformanceGap = round2(domain.TargetScore - profile.CurrentScore)
	profile.RiskLevel = RiskLevelForGap(profile.PerformanceGap)
	delta, direction := Trend(scores)
	profile.TrendDelta = round2(delta)
	profile.TrendDirection = direction
	return profile
}

// AllRiskProfiles returns every metric's risk profile in canonical order.
func AllRiskProfiles() []domain.RiskProfile {
	metrics := domain.AllMetrics()
	profiles := make([]domain.RiskProfile, 0, len(metrics))
	for _, m := range metrics {
		profiles = append(profiles, BuildRiskProfile(m))
	}
	return profiles
}

// BuildEvolutionInsights summarizes the whole metric set's movement
// across the reporting window. A metric counts as improving or declining
// only when its first-to-last delta clears ±0.05.
func BuildEvolutionInsights() domain.EvolutionInsights {
	insights := domain.EvolutionInsights{
		TopScore:            math.Inf(-1),
		NeedsAttentionScore: math.Inf(1),
	}
	for _, m := range domain.AllMetrics() {
		scores := metricMonthlyScores[m]
		if len(scores) == 0 {
			continue
		}
		latest := scores[len(scores)-1]
		if latest > insights.TopScore {
			insights.TopScore = latest
			insights.TopPerformer = m
		}
		if latest < insights.NeedsAttentionScore {
			insights.NeedsAttentionScore = latest
			insights.NeedsAttention = m
		}
		delta := latest - scores[0]
		switch {
		case delta > 0.05:
			insights.Improving = append(insights.Improving, m)
		case delta < -0.05:
			insights.Declining = append(insights.Declining, m)
		}
	}
	return insights
}

// SummarizeDaily computes the headline statistics over a filtered daily
// view. Days strictly below the target count toward DaysBelowTarget.
func SummarizeDaily(records []domain.DailyRecord, target float64) domain.DailySummary {
	if len(records) == 0 {
		return domain.DailySummary{}
	}
	summary := domain.DailySummary{
		Days:       len(records),
		BestScore:  math.Inf(-1),
		WorstScore: math.Inf(1),
	}
	var sum float64
	for _, r := range records {
		sum += r.SatisfactionScore
		if r.SatisfactionScore < target {
			summary.DaysBelowTarget++
		}
		if r.SatisfactionScore > summary.BestScore {
			summary.BestScore = r.SatisfactionScore
			summary.BestDate = r.Date.Format("2006-01-02")
		}
		if r.SatisfactionScore < summary.WorstScore {
			summary.WorstScore = r.SatisfactionScore
			summary.WorstDate = r.Date.Format("2006-01-02")
		}
	}
	summary.AverageScore = round2(sum / float64(len(records)))
	return summary
}

// SummarizeEvents computes the headline statistics over a filtered event
// view.
func SummarizeEvents(events []domain.EventRecord) domain.EventsSummary {
	if len(events) == 0 {
		return domain.EventsSummary{}
	}
	summary := domain.EventsSummary{Events: len(events)}
	var sum float64
	for _, e := range events {
		sum += e.FailurePercentage
		if e.Severity == domain.SeverityCritical {
			summary.CriticalCount++
		}
		if e.FailurePercentage >= highRiskFailureThreshold {
			summary.HighRiskDays++
		}
		if IsPromotionDay(e.Promotion) {
			summary.PromotionDays++
		}
	}
	summary.AverageFailurePct = round2(sum / float64(len(events)))
	return summary
}

// WeekdayFailureBreakdown averages event failure percentages per day of
// the week, Monday through Sunday, skipping days without events.
func WeekdayFailureBreakdown(events []domain.EventRecord) []domain.WeekdayFailure {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, e := range events {
		wd := e.Date.Weekday()
		sums[wd] += e.FailurePercentage
		counts[wd]++
	}
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	breakdown := make([]domain.WeekdayFailure, 0, len(order))
	for _, wd := range order {
		n := counts[wd]
		if n == 0 {
			continue
		}
		breakdown = append(breakdown, domain.WeekdayFailure{
			DayOfWeek:         wd.String(),
			AverageFailurePct: round2(sums[wd] / float64(n)),
			Events:            n,
		})
	}
	return breakdown
}

// BuildOverview describes the merged dataset backing the dashboard.
func BuildOverview(daily []domain.DailyRecord, events []domain.EventRecord, uploadedFiles int) domain.DatasetOverview {
	overview := domain.DatasetOverview{
		TotalDays:     len(daily),
		TotalEvents:   len(events),
		UploadedFiles: uploadedFiles,
	}
	if len(daily) > 0 {
		overview.MinDate = daily[0].Date
		overview.MaxDate = daily[len(daily)-1].Date
	}
	return overview
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
