package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// FindQuickWins returns queries already ranking moderately well (position
// 4-10) with meaningful volume but a CTR below their bucket's threshold.
// PotentialClicks is the gap to the bucket benchmark, in clicks.
func FindQuickWins(queries []gsc.QueryRow) []SeoOpportunity {
	out := []SeoOpportunity{}
	for _, q := range queries {
		if q.Position < 4 || q.Position > 10 || q.Impressions <= 500 {
			continue
		}
		bucket := GetPositionBucket(q.Position)
		if q.CTR >= BelowAverageCTR(bucket) {
			continue
		}
		expected := BenchmarkCTR(bucket)
		out = append(out, SeoOpportunity{
			QueryRow:        q,
			OpportunityType: OpportunityQuickWin,
			ExpectedCTR:     expected,
			CTRGap:          expected - q.CTR,
			PotentialClicks: int(math.Round(float64(q.Impressions) * (expected - q.CTR))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PotentialClicks > out[j].PotentialClicks })
	return out
}

// FindStrikingDistance returns queries just outside page 1 (position
// 11-20). The 6% capture rate is a fixed assumption for moving onto page
// 1, not benchmark-relative.
func FindStrikingDistance(queries []gsc.QueryRow) []SeoOpportunity {
	out := []SeoOpportunity{}
	for _, q := range queries {
		if q.Position < 11 || q.Position > 20 || q.Impressions <= 200 {
			continue
		}
		out = append(out, SeoOpportunity{
			QueryRow:        q,
			OpportunityType: OpportunityStrikingDistance,
			PotentialClicks: int(math.Round(float64(q.Impressions) * 0.06)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out
}

// FindHighVolumeUnderperformers returns high-impression queries stuck
// beyond position 5 with a very low CTR.
func FindHighVolumeUnderperformers(queries []gsc.QueryRow) []SeoOpportunity {
	out := []SeoOpportunity{}
	for _, q := range queries {
		if q.Impressions <= 1000 || q.Position <= 5 || q.CTR >= 0.02 {
			continue
		}
		out = append(out, SeoOpportunity{
			QueryRow:        q,
			OpportunityType: OpportunityHighVolumeUnderperform,
			PotentialClicks: int(math.Round(float64(q.Impressions) * 0.05)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out
}

// FindCTROptimizations returns top-5 queries whose CTR trails their
// bucket threshold, with the same gap-based estimate as quick wins.
func FindCTROptimizations(queries []gsc.QueryRow) []SeoOpportunity {
	out := []SeoOpportunity{}
	for _, q := range queries {
		if q.Position > 5 || q.Impressions <= 100 {
			continue
		}
		bucket := GetPositionBucket(q.Position)
		if q.CTR >= BelowAverageCTR(bucket) {
			continue
		}
		expected := BenchmarkCTR(bucket)
		out = append(out, SeoOpportunity{
			QueryRow:        q,
			OpportunityType: OpportunityCTROptimization,
			ExpectedCTR:     expected,
			CTRGap:          expected - q.CTR,
			PotentialClicks: int(math.Round(float64(q.Impressions) * (expected - q.CTR))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PotentialClicks > out[j].PotentialClicks })
	return out
}

// DetectCannibalization groups rows by lowercased query text and reports
// every query that appears on two or more distinct pages, with the page
// list and summed clicks and impressions.
func DetectCannibalization(queries []gsc.QueryRow) []CannibalizationIssue {
	type queryGroup struct {
		pages       []string
		pageSeen    map[string]struct{}
		clicks      int
		impressions int
	}

	groups := make(map[string]*queryGroup)
	var order []string
	for _, q := range queries {
		if q.Page == "" {
			continue
		}
		key := strings.ToLower(q.Query)
		g, ok := groups[key]
		if !ok {
			g = &queryGroup{pageSeen: make(map[string]struct{})}
			groups[key] = g
			order = append(order, key)
		}
		if _, dup := g.pageSeen[q.Page]; !dup {
			g.pageSeen[q.Page] = struct{}{}
			g.pages = append(g.pages, q.Page)
		}
		g.clicks += q.Clicks
		g.impressions += q.Impressions
	}

	issues := []CannibalizationIssue{}
	for _, key := range order {
		g := groups[key]
		if len(g.pages) < 2 {
			continue
		}
		issues = append(issues, CannibalizationIssue{
			Query:       key,
			Pages:       g.pages,
			Clicks:      g.clicks,
			Impressions: g.impressions,
		})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Impressions > issues[j].Impressions })
	return issues
}

// RunSeoAnalysis runs all five SEO filters. They are independent; no
// filter's output affects another's.
func RunSeoAnalysis(queries []gsc.QueryRow) SeoAnalysisResult {
	return SeoAnalysisResult{
		QuickWins:                 FindQuickWins(queries),
		StrikingDistance:          FindStrikingDistance(queries),
		HighVolumeUnderperformers: FindHighVolumeUnderperformers(queries),
		CTROptimizations:          FindCTROptimizations(queries),
		Cannibalization:           DetectCannibalization(queries),
	}
}
