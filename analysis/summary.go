package analysis

import (
	"fmt"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// The priority list is deliberately static: these five actions are the
// standing playbook regardless of what a specific dataset shows.
var priorityActions = []string{
	"Optimize title tags and meta descriptions for top CTR gap keywords",
	"Create dedicated content for striking-distance topic clusters",
	"Audit and fix keyword cannibalization issues",
	"Build backlinks to pages ranking 4-10 for quick-win keywords",
	"Monitor anomalies and investigate traffic drops",
}

// RunStrategicSummary composes the cross-cutting report: headline metrics
// from the parser summary plus quick-win count, rule-based risks, the
// opportunity list with its 60/40 revenue split, anomalies and the funnel
// breakdown, all recomputed fresh from the raw rows.
func RunStrategicSummary(data *gsc.ParsedData, ctx BusinessContext, signals *SignalSet) StrategicSummaryResult {
	signals = orDefault(signals)
	q := data.Queries
	s := data.Summary

	quickWins := FindQuickWins(q)
	striking := FindStrikingDistance(q)

	totalPotentialClicks := 0
	for _, o := range quickWins {
		totalPotentialClicks += o.PotentialClicks
	}
	for _, o := range striking {
		totalPotentialClicks += o.PotentialClicks
	}
	revenueEst := EstimateRevenue(float64(totalPotentialClicks), ctx)

	headlineMetrics := []HeadlineMetric{
		{Label: "Total Clicks", Value: FormatNumber(s.TotalClicks)},
		{Label: "Total Impressions", Value: FormatNumber(s.TotalImpressions)},
		{Label: "Avg CTR", Value: FormatPercent(s.AvgCTR)},
		{Label: "Avg Position", Value: FormatPosition(s.AvgPosition)},
		{Label: "Total Queries", Value: FormatNumber(s.TotalQueries)},
		{Label: "Quick Wins", Value: fmt.Sprintf("%d", len(quickWins))},
	}

	risks := []string{}
	if s.AvgPosition > 15 {
		risks = append(risks, "Average position is outside page 2, a major visibility gap")
	}
	if s.AvgCTR < 0.02 {
		risks = append(risks, "Average CTR below 2%, titles and meta descriptions need improvement")
	}
	if len(quickWins) == 0 && len(striking) == 0 {
		risks = append(risks, "No quick-win opportunities found, may need new content")
	}

	opportunities := []OpportunityLine{
		{
			Label:           fmt.Sprintf("%d quick-win keywords (pos 4-10)", len(quickWins)),
			RevenueEstimate: revenueEst.AnnualRevenue * 0.6,
		},
		{
			Label:           fmt.Sprintf("%d striking-distance keywords (pos 11-20)", len(striking)),
			RevenueEstimate: revenueEst.AnnualRevenue * 0.4,
		},
		{
			Label: fmt.Sprintf("Total potential revenue: %s/yr", FormatCurrency(revenueEst.AnnualRevenue)),
		},
	}

	return StrategicSummaryResult{
		HeadlineMetrics: headlineMetrics,
		Risks:           risks,
		Opportunities:   opportunities,
		Anomalies:       DetectAnomalies(q),
		FunnelBreakdown: BuildFunnelBreakdown(q, signals),
		Priorities:      append([]string{}, priorityActions...),
	}
}
