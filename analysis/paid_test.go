package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

func TestFindNonRankingHighIntent(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "buy crm software", Impressions: 500, Position: 35},
		{Query: "buy crm software", Impressions: 500, Position: 15},
		{Query: "what is a crm", Impressions: 500, Position: 35},
		{Query: "buy widgets", Impressions: 100, Position: 35},
	}

	out := FindNonRankingHighIntent(queries, nil)

	require.Len(t, out, 1)
	o := out[0]
	assert.Equal(t, CampaignNonRanking, o.CampaignType)
	assert.Equal(t, IntentHigh, o.IntentLevel)
	assert.Equal(t, 35.0, o.Position)
	assert.Equal(t, "Aggressive bid, no organic presence", o.BidStrategy)
}

func TestFindSerpDomination(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "crm pricing", Impressions: 1000, Position: 2},
		{Query: "crm pricing", Impressions: 1000, Position: 8},
		{Query: "how to use a crm", Impressions: 1000, Position: 2},
		{Query: "best crm", Impressions: 200, Position: 2},
	}

	out := FindSerpDomination(queries, nil)

	require.Len(t, out, 1)
	assert.Equal(t, CampaignSerpDomination, out[0].CampaignType)
	assert.Equal(t, 2.0, out[0].Position)
	assert.Equal(t, "Medium bid, complement organic ranking", out[0].BidStrategy)
}

func TestFindCompetitorConquesting(t *testing.T) {
	queries := []gsc.QueryRow{
		{Query: "switch from asana", Impressions: 50, Position: 40},
		{Query: "acme competitor analysis", Impressions: 10, Position: 2},
		{Query: "crm tutorial", Impressions: 10000, Position: 1},
	}

	out := FindCompetitorConquesting(queries, nil)

	require.Len(t, out, 2)
	for _, o := range out {
		assert.Equal(t, CampaignCompetitorConquesting, o.CampaignType)
		assert.Equal(t, "Strategic bid, capture competitor traffic", o.BidStrategy)
	}
	// Sorted by impressions.
	assert.Equal(t, "switch from asana", out[0].Query)
}

func TestPaidPassesAreNotExclusive(t *testing.T) {
	// A competitor query ranking deep with volume lands in both the
	// non-ranking and conquesting sets.
	queries := []gsc.QueryRow{
		{Query: "asana alternative", Impressions: 500, Position: 30},
	}

	result := RunPaidSearchAnalysis(queries, nil)

	assert.Len(t, result.NonRanking, 1)
	assert.Len(t, result.CompetitorConquesting, 1)
	assert.Empty(t, result.SerpDomination)
}
