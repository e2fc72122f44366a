package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

func summaryFixture() *gsc.ParsedData {
	return &gsc.ParsedData{
		Queries: []gsc.QueryRow{
			// Quick win: bucket 6-10, CTR under 0.02, 600*(0.035-0.01)=15.
			{Query: "quick win", Impressions: 600, CTR: 0.01, Position: 7, Clicks: 6},
			// Striking distance: 1000*0.06=60.
			{Query: "page two topic", Impressions: 1000, CTR: 0.005, Position: 13, Clicks: 5},
			{Query: "healthy query", Impressions: 300, CTR: 0.2, Position: 2, Clicks: 60},
		},
		Summary: gsc.Summary{
			TotalQueries:     3,
			TotalClicks:      71,
			TotalImpressions: 1900,
			AvgCTR:           0.037,
			AvgPosition:      7.3,
		},
	}
}

func TestRunStrategicSummaryHeadlines(t *testing.T) {
	result := RunStrategicSummary(summaryFixture(), DefaultBusinessContext(), nil)

	require.Len(t, result.HeadlineMetrics, 6)
	assert.Equal(t, "Total Clicks", result.HeadlineMetrics[0].Label)
	assert.Equal(t, "71", result.HeadlineMetrics[0].Value)
	assert.Equal(t, "Total Impressions", result.HeadlineMetrics[1].Label)
	assert.Equal(t, "1.9K", result.HeadlineMetrics[1].Value)
	assert.Equal(t, "Avg CTR", result.HeadlineMetrics[2].Label)
	assert.Equal(t, "3.7%", result.HeadlineMetrics[2].Value)
	assert.Equal(t, "Avg Position", result.HeadlineMetrics[3].Label)
	assert.Equal(t, "7.3", result.HeadlineMetrics[3].Value)
	assert.Equal(t, "Quick Wins", result.HeadlineMetrics[5].Label)
	assert.Equal(t, "1", result.HeadlineMetrics[5].Value)
}

func TestRunStrategicSummaryRevenueSplit(t *testing.T) {
	result := RunStrategicSummary(summaryFixture(), DefaultBusinessContext(), nil)

	require.Len(t, result.Opportunities, 3)
	assert.Contains(t, result.Opportunities[0].Label, "1 quick-win")
	assert.Contains(t, result.Opportunities[1].Label, "1 striking-distance")
	assert.Contains(t, result.Opportunities[2].Label, "Total potential revenue")

	// The split is 60/40 of the same annual estimate.
	total := result.Opportunities[0].RevenueEstimate + result.Opportunities[1].RevenueEstimate
	if total > 0 {
		assert.InDelta(t, 1.5, result.Opportunities[0].RevenueEstimate/result.Opportunities[1].RevenueEstimate, 1e-9)
	}
}

func TestRunStrategicSummaryRisks(t *testing.T) {
	data := summaryFixture()
	data.Summary.AvgPosition = 18
	data.Summary.AvgCTR = 0.01

	result := RunStrategicSummary(data, DefaultBusinessContext(), nil)

	assert.Contains(t, result.Risks, "Average position is outside page 2, a major visibility gap")
	assert.Contains(t, result.Risks, "Average CTR below 2%, titles and meta descriptions need improvement")
}

func TestRunStrategicSummaryNoOpportunitiesRisk(t *testing.T) {
	data := &gsc.ParsedData{
		Queries: []gsc.QueryRow{
			{Query: "tiny", Impressions: 10, CTR: 0.3, Position: 1, Clicks: 3},
		},
		Summary: gsc.Summary{TotalClicks: 3, AvgCTR: 0.3, AvgPosition: 1},
	}
	result := RunStrategicSummary(data, DefaultBusinessContext(), nil)
	assert.Contains(t, result.Risks, "No quick-win opportunities found, may need new content")
}

func TestRunStrategicSummaryStaticPriorities(t *testing.T) {
	result := RunStrategicSummary(summaryFixture(), DefaultBusinessContext(), nil)

	require.Len(t, result.Priorities, 5)
	assert.Equal(t, "Optimize title tags and meta descriptions for top CTR gap keywords", result.Priorities[0])

	// The returned slice is a copy; mutating it must not leak into the
	// next run.
	result.Priorities[0] = "changed"
	again := RunStrategicSummary(summaryFixture(), DefaultBusinessContext(), nil)
	assert.Equal(t, "Optimize title tags and meta descriptions for top CTR gap keywords", again.Priorities[0])
}

func TestRunStrategicSummaryFunnelConservation(t *testing.T) {
	data := summaryFixture()
	result := RunStrategicSummary(data, DefaultBusinessContext(), nil)

	total := 0
	for _, q := range data.Queries {
		total += q.Clicks
	}
	fb := result.FunnelBreakdown
	assert.Equal(t, total, fb.Tofu+fb.Mofu+fb.Bofu)
}
