package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

func TestFindQuestionOpportunities(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "how to export data", Impressions: 300},
		{Query: "how to export reports quickly", Impressions: 200},
		{Query: "what is data export", Impressions: 100},
		{Query: "export data fast", Impressions: 500},
	}

	out := FindQuestionOpportunities(queries, nil)

	require.Len(t, out, 2)
	labels := []string{out[0].Label, out[1].Label}
	assert.Contains(t, labels, "how to export")
	assert.Contains(t, labels, "what is data")

	for _, o := range out {
		assert.Equal(t, ContentQuestion, o.Type)
		if o.Label == "how to export" {
			assert.Len(t, o.Queries, 2)
			assert.Equal(t, 500, o.TotalImpressions)
			// Members sorted by impressions inside the cluster.
			assert.Equal(t, "how to export data", o.Queries[0].Query)
		}
	}
}

func TestFindComparisonGapsVsPatternKey(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "asana vs trello", Impressions: 400},
		{Query: "Asana  vs  Trello", Impressions: 100},
		{Query: "best project tool", Impressions: 200},
		{Query: "plain informational query", Impressions: 900},
	}

	out := FindComparisonGaps(queries, nil)

	var vsCluster *ContentOpportunity
	for i := range out {
		if out[i].Label == "asana vs trello" {
			vsCluster = &out[i]
		}
	}
	require.NotNil(t, vsCluster, "expected an 'asana vs trello' cluster")
	// Case and spacing variants collapse onto the explicit X-vs-Y key.
	assert.Len(t, vsCluster.Queries, 2)

	for _, o := range out {
		assert.Equal(t, ContentComparison, o.Type)
		for _, q := range o.Queries {
			assert.NotEqual(t, "plain informational query", q.Query)
		}
	}
}

func TestFindTopicGaps(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "invoice templates free", Impressions: 300},
		{Query: "invoice templates word", Impressions: 200},
		{Query: "invoice templates excel download", Impressions: 150},
		// Two members only, never a gap.
		{Query: "payroll software small", Impressions: 5000},
		{Query: "payroll software review", Impressions: 5000},
		// Three members but too few impressions.
		{Query: "niche topic one", Impressions: 100},
		{Query: "niche topic two", Impressions: 100},
		{Query: "niche topic three", Impressions: 100},
	}

	out := FindTopicGaps(queries, nil)

	require.Len(t, out, 1)
	gap := out[0]
	assert.Equal(t, "invoice templates", gap.Label)
	assert.Equal(t, ContentTopicGap, gap.Type)
	assert.Len(t, gap.Queries, 3)
	assert.Equal(t, 650, gap.TotalImpressions)
}

func TestScoreClusterSteps(t *testing.T) {
	// Crossing the 500-impression step lifts the volume sub-score from 3
	// to 5 and the composite by 0.8.
	low := scoreCluster([]gsc.QueryRow{{Query: "plain words", Impressions: 400, Position: 25}}, DefaultSignals())
	high := scoreCluster([]gsc.QueryRow{{Query: "plain words", Impressions: 600, Position: 25}}, DefaultSignals())
	assert.InDelta(t, 0.8, high-low, 1e-9)

	// Commercial intent in any member lifts the intent sub-score.
	noIntent := scoreCluster([]gsc.QueryRow{{Query: "plain words", Impressions: 400, Position: 25}}, DefaultSignals())
	withIntent := scoreCluster([]gsc.QueryRow{{Query: "buy plain words", Impressions: 400, Position: 25}}, DefaultSignals())
	assert.Greater(t, withIntent, noIntent)
}

func TestBuildFunnelBreakdownConservesClicks(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "crm pricing", Clicks: 10},
		{Query: "best crm", Clicks: 20},
		{Query: "what is a crm", Clicks: 30},
		{Query: "unclassifiable gibberish", Clicks: 5},
		{Query: "acme brand thing", Clicks: 7, IsBrand: boolPtr(true)},
	}

	fb := BuildFunnelBreakdown(queries, nil)

	total := 0
	for _, q := range queries {
		total += q.Clicks
	}
	assert.Equal(t, total, fb.Tofu+fb.Mofu+fb.Bofu)
	// Brand clicks always land in bofu.
	assert.GreaterOrEqual(t, fb.Bofu, 17)
	assert.Equal(t, 20, fb.Mofu)
	assert.Equal(t, 35, fb.Tofu)
}

func TestRunContentAnalysisDeterministic(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "how to export data", Impressions: 300, Clicks: 3},
		{Query: "how to export reports", Impressions: 200, Clicks: 2},
		{Query: "asana vs trello", Impressions: 400, Clicks: 4},
		{Query: "invoice templates free", Impressions: 300},
		{Query: "invoice templates word", Impressions: 200},
		{Query: "invoice templates excel", Impressions: 150},
	}
	first := RunContentAnalysis(queries, nil)
	second := RunContentAnalysis(queries, nil)
	assert.Equal(t, first, second)
}
