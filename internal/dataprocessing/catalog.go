package dataprocessing

import (
	"csatpulse/pkg/contracts/domain"
)

// The four fixed comparison periods of the reporting window. The first
// period spans late May through June, hence the combined label.
func ReportingPeriods() []domain.Period {
	return []domain.Period{
		{Name: "May-June 2025", Span: "2025-05-30 to 2025-06-30", Days: 32},
		{Name: "July 2025", Span: "2025-07-01 to 2025-07-31", Days: 31},
		{Name: "August 2025", Span: "2025-08-01 to 2025-08-31", Days: 31},
		{Name: "September 2025", Span: "2025-09-01 to 2025-09-30", Days: 30},
	}
}

// periodBaseScores are the survey base scores per period, shared by all
// metrics before the per-metric variation offsets apply.
var periodBaseScores = []float64{9.48, 9.22, 9.16, 9.43}

// metricVariations offsets the period base scores per metric. Charges
// Stated Clearly is the reference metric, so its offsets are zero.
var metricVariations = map[domain.Metric][]float64{
	domain.MetricOverallSatisfaction:   {0, -0.1, -0.2, 0.05},
	domain.MetricLikelihoodToBuyAgain:  {0.1, -0.05, -0.15, 0.08},
	domain.MetricLikelihoodToRecommend: {-0.05, 0.03, -0.1, 0.12},
	domain.MetricSiteDesign:            {0.2, 0.15, 0.1, 0.25},
	domain.MetricEaseOfFinding:         {0.15, 0.08, 0.05, 0.18},
	domain.MetricProductInfoClarity:    {0.12, 0.06, 0.02, 0.15},
	domain.MetricChargesStatedClearly:  {0, 0, 0, 0},
	domain.MetricCheckoutProcess:       {-0.2, -0.15, -0.25, -0.12},
}

// metricMonthlyScores are the observed per-period survey scores backing
// the risk analysis and the evolution view. They come from the survey
// provider and are distinct from the derived monthly-comparison scores.
var metricMonthlyScores = map[domain.Metric][]float64{
	domain.MetricOverallSatisfaction:   {9.48, 9.38, 9.36, 9.48},
	domain.MetricLikelihoodToBuyAgain:  {9.58, 9.33, 9.21, 9.56},
	domain.MetricLikelihoodToRecommend: {9.43, 9.25, 9.06, 9.60},
	domain.MetricSiteDesign:            {9.68, 9.37, 9.26, 9.73},
	domain.MetricEaseOfFinding:         {9.63, 9.30, 9.21, 9.66},
	domain.MetricProductInfoClarity:    {9.60, 9.28, 9.18, 9.63},
	domain.MetricChargesStatedClearly:  {9.48, 9.22, 9.16, 9.43},
	domain.MetricCheckoutProcess:       {9.28, 9.07, 8.91, 9.31},
}

// MonthlyScores returns the observed per-period scores for a metric.
func MonthlyScores(metric domain.Metric) []float64 {
	return metricMonthlyScores[metric]
}

// riskCatalogue carries the curated business-intelligence notes shown
// alongside each metric's risk profile and embedded in the risk export.
var riskCatalogue = map[domain.Metric]domain.RiskCatalogueEntry{
	domain.MetricOverallSatisfaction: {
		Metric:         domain.MetricOverallSatisfaction,
		RiskFactors:    []string{"Service delays", "Product quality issues", "Delivery problems"},
		BusinessImpact: "Directly affects customer loyalty and retention rates. A decline in overall satisfaction can lead to reduced customer lifetime value and negative word-of-mouth marketing.",
		Recommendations: []string{
			"Implement proactive customer service monitoring with real-time alerts",
			"Establish quality control checkpoints throughout the customer journey",
			"Create customer feedback loops for rapid issue identification and resolution",
			"Deploy sentiment analysis tools to monitor customer communications",
		},
	},
	domain.MetricLikelihoodToBuyAgain: {
		Metric:         domain.MetricLikelihoodToBuyAgain,
		RiskFactors:    []string{"Competitive pricing", "Product availability", "Customer service experience"},
		BusinessImpact: "Critical for revenue retention and customer lifetime value. Low scores indicate potential revenue leakage and increased customer acquisition costs.",
		Recommendations: []string{
			"Develop comprehensive customer loyalty programs with personalized incentives",
			"Monitor competitor pricing strategies and implement dynamic pricing models",
			"Improve inventory management systems to reduce stockouts",
			"Create predictive models to identify at-risk customers for proactive retention efforts",
		},
	},
	domain.MetricLikelihoodToRecommend: {
		Metric:         domain.MetricLikelihoodToRecommend,
		RiskFactors:    []string{"Word-of-mouth reputation", "Social media presence", "Customer advocacy"},
		BusinessImpact: "Affects organic growth and brand reputation in the market. Low recommendation scores can significantly impact new customer acquisition through referrals.",
		Recommendations: []string{
			"Create structured referral incentive programs with clear rewards",
			"Monitor and actively respond to online reviews and social media mentions",
			"Develop customer ambassador programs to leverage satisfied customers",
			"Implement Net Promoter Score (NPS) tracking with follow-up actions for detractors",
		},
	},
	domain.MetricSiteDesign: {
		Metric:         domain.MetricSiteDesign,
		RiskFactors:    []string{"User interface complexity", "Mobile responsiveness", "Loading speed"},
		BusinessImpact: "Influences first impressions and user engagement rates. Poor site design can lead to high bounce rates and reduced conversion rates.",
		Recommendations: []string{
			"Conduct regular UX/UI testing with A/B testing for continuous optimization",
			"Implement mobile-first design principles with responsive layouts",
			"Optimize site performance and loading times (target <3 seconds)",
			"Use heatmap analysis to identify user behavior patterns and pain points",
		},
	},
	domain.MetricEaseOfFinding: {
		Metric:         domain.MetricEaseOfFinding,
		RiskFactors:    []string{"Search functionality", "Product categorization", "Navigation structure"},
		BusinessImpact: "Affects conversion rates and user satisfaction during shopping. Poor findability leads to increased cart abandonment and reduced sales.",
		Recommendations: []string{
			"Enhance search algorithm with AI-powered search suggestions and auto-complete",
			"Improve product categorization and tagging with detailed filters",
			"Implement intelligent product recommendations based on user behavior",
			"Add visual search capabilities and improved site navigation structure",
		},
	},
	domain.MetricProductInfoClarity: {
		Metric:         domain.MetricProductInfoClarity,
		RiskFactors:    []string{"Product descriptions accuracy", "Image quality", "Specification completeness"},
		BusinessImpact: "Reduces returns and increases purchase confidence. Clear product information directly correlates with reduced customer service inquiries and returns.",
		Recommendations: []string{
			"Standardize product information templates with consistent formatting",
			"Implement 360-degree product views and high-resolution image galleries",
			"Add customer Q&A sections and user-generated content for each product",
			"Create detailed size guides and compatibility charts for furniture items",
		},
	},
	domain.MetricChargesStatedClearly: {
		Metric:         domain.MetricChargesStatedClearly,
		RiskFactors:    []string{"Hidden fees", "Shipping cost transparency", "Tax calculation accuracy"},
		BusinessImpact: "Critical for trust and completing transactions without abandonment. Unclear pricing is a major cause of cart abandonment and customer complaints.",
		Recommendations: []string{
			"Display all fees upfront in the shopping process with no hidden costs",
			"Implement transparent pricing calculator showing taxes, shipping, and fees",
			"Provide clear breakdown of all charges before checkout with explanations",
			"Add shipping cost estimator on product pages based on customer location",
		},
	},
	domain.MetricCheckoutProcess: {
		Metric:         domain.MetricCheckoutProcess,
		RiskFactors:    []string{"Process complexity", "Payment security", "Guest checkout availability"},
		BusinessImpact: "Directly affects conversion rates and cart abandonment. Complex checkout processes can result in up to 70% cart abandonment rates.",
		Recommendations: []string{
			"Simplify checkout to minimum required steps (target: 3 steps or fewer)",
			"Offer multiple payment options including digital wallets (Apple Pay, Google Pay)",
			"Implement guest checkout and save-for-later options",
			"Add progress indicators and clear security badges to build trust",
		},
	},
}

// RiskCatalogue returns the curated notes for a metric.
func RiskCatalogue(metric domain.Metric) (domain.RiskCatalogueEntry, bool) {
	entry, ok := riskCatalogue[metric]
	return entry, ok
}
