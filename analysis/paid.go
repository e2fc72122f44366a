package analysis

import (
	"sort"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// FindNonRankingHighIntent returns commercial queries the site does not
// rank for at all (position beyond 20): paid is the only way to show up.
func FindNonRankingHighIntent(queries []gsc.QueryRow, signals *SignalSet) []PaidSearchOpportunity {
	signals = orDefault(signals)
	out := []PaidSearchOpportunity{}
	for _, q := range queries {
		intent := signals.ClassifyIntent(q.Query)
		if q.Position <= 20 || intent == IntentLow || q.Impressions <= 100 {
			continue
		}
		out = append(out, PaidSearchOpportunity{
			QueryRow:     q,
			CampaignType: CampaignNonRanking,
			IntentLevel:  intent,
			BidStrategy:  "Aggressive bid, no organic presence",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out
}

// FindSerpDomination returns commercial queries already ranking top 5
// where an ad on top of the organic result locks down the SERP.
func FindSerpDomination(queries []gsc.QueryRow, signals *SignalSet) []PaidSearchOpportunity {
	signals = orDefault(signals)
	out := []PaidSearchOpportunity{}
	for _, q := range queries {
		intent := signals.ClassifyIntent(q.Query)
		if q.Position > 5 || intent == IntentLow || q.Impressions <= 200 {
			continue
		}
		out = append(out, PaidSearchOpportunity{
			QueryRow:     q,
			CampaignType: CampaignSerpDomination,
			IntentLevel:  intent,
			BidStrategy:  "Medium bid, complement organic ranking",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out
}

// FindCompetitorConquesting returns queries carrying a competitor signal,
// regardless of position or volume.
func FindCompetitorConquesting(queries []gsc.QueryRow, signals *SignalSet) []PaidSearchOpportunity {
	signals = orDefault(signals)
	out := []PaidSearchOpportunity{}
	for _, q := range queries {
		if !containsAny(strings.ToLower(q.Query), signals.CompetitorSignals) {
			continue
		}
		out = append(out, PaidSearchOpportunity{
			QueryRow:     q,
			CampaignType: CampaignCompetitorConquesting,
			IntentLevel:  signals.ClassifyIntent(q.Query),
			BidStrategy:  "Strategic bid, capture competitor traffic",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out
}

// RunPaidSearchAnalysis runs the three paid-search passes. The passes are
// not mutually exclusive; a row may appear in more than one set.
func RunPaidSearchAnalysis(queries []gsc.QueryRow, signals *SignalSet) PaidSearchResult {
	signals = orDefault(signals)
	return PaidSearchResult{
		NonRanking:            FindNonRankingHighIntent(queries, signals),
		SerpDomination:        FindSerpDomination(queries, signals),
		CompetitorConquesting: FindCompetitorConquesting(queries, signals),
	}
}
