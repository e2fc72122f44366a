package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// Brand candidate thresholds. A query the user typed knowing the brand
// converts extremely well from a top position; these cutoffs encode that
// navigational pattern. Tunable, but kept as calibrated.
const (
	candidateMinCTR      = 0.25
	candidateMaxPosition = 2.5
	candidateMinClicks   = 100
	maxCandidates        = 20
	maxScanRows          = 200
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// DetectBrandTerms heuristically proposes brand terms from traffic
// patterns, with no prior confirmed list. Hints are added as roots
// unconditionally. Returns the proposed queries split by confidence plus
// the root words, so the caller can present them for editing.
func DetectBrandTerms(queries []gsc.QueryRow, hints []string) BrandDetectionResult {
	result := BrandDetectionResult{
		LikelyBrand:   []string{},
		Uncertain:     []string{},
		DetectedRoots: []string{},
	}
	if len(queries) == 0 {
		return result
	}

	sorted := make([]gsc.QueryRow, len(queries))
	copy(sorted, queries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Clicks > sorted[j].Clicks })

	var candidates []gsc.QueryRow
	for _, q := range sorted {
		if q.CTR > candidateMinCTR && q.Position < candidateMaxPosition && q.Clicks > candidateMinClicks {
			candidates = append(candidates, q)
			if len(candidates) == maxCandidates {
				break
			}
		}
	}

	stopWords := englishSignals.StopWords
	rootCounts := make(map[string]int)
	var rootOrder []string
	for _, q := range candidates {
		for _, word := range whitespaceRe.Split(strings.ToLower(q.Query), -1) {
			if len(word) <= 2 {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			if rootCounts[word] == 0 {
				rootOrder = append(rootOrder, word)
			}
			rootCounts[word]++
		}
	}

	roots := make(map[string]struct{})
	for _, word := range rootOrder {
		// With very few candidates there is too little data to require
		// repetition across them.
		if rootCounts[word] >= 2 || len(candidates) <= 3 {
			roots[word] = struct{}{}
			result.DetectedRoots = append(result.DetectedRoots, word)
		}
	}
	for _, h := range hints {
		h = strings.ToLower(h)
		if _, ok := roots[h]; !ok {
			roots[h] = struct{}{}
			result.DetectedRoots = append(result.DetectedRoots, h)
		}
	}

	seen := make(map[string]struct{})
	scan := sorted
	if len(scan) > maxScanRows {
		scan = scan[:maxScanRows]
	}
	for _, q := range scan {
		text := strings.ToLower(q.Query)
		matched := false
		for root := range roots {
			if strings.Contains(text, root) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}

		if q.CTR > 0.15 && q.Position < 3 {
			result.LikelyBrand = append(result.LikelyBrand, q.Query)
		} else {
			result.Uncertain = append(result.Uncertain, q.Query)
		}
	}

	return result
}

// brandPattern compiles a single case-insensitive alternation over all
// confirmed terms. Whitespace inside a term matches across spaces,
// underscores, hyphens and periods, so "acme corp" also hits "acme-corp".
func brandPattern(terms []string) *regexp.Regexp {
	patterns := make([]string, 0, len(terms))
	for _, term := range terms {
		escaped := regexp.QuoteMeta(strings.ToLower(term))
		patterns = append(patterns, whitespaceRe.ReplaceAllString(escaped, `[\s._-]*`))
	}
	return regexp.MustCompile(`(?i)` + strings.Join(patterns, "|"))
}

// ClassifyWithBrandTerms partitions every row against a confirmed term
// list. The partition is total: each input row appears in exactly one
// side, as a copy stamped with its IsBrand flag; input rows are never
// mutated. An empty term list classifies everything as non-brand, since
// brand detection must be explicit.
func ClassifyWithBrandTerms(queries []gsc.QueryRow, brandTerms []string) BrandClassification {
	out := BrandClassification{Brand: []gsc.QueryRow{}, NonBrand: []gsc.QueryRow{}}
	if len(brandTerms) == 0 {
		out.NonBrand = make([]gsc.QueryRow, len(queries))
		copy(out.NonBrand, queries)
		return out
	}

	re := brandPattern(brandTerms)
	for _, q := range queries {
		stamped := q
		isBrand := re.MatchString(q.Query)
		stamped.IsBrand = &isBrand
		if isBrand {
			out.Brand = append(out.Brand, stamped)
		} else {
			out.NonBrand = append(out.NonBrand, stamped)
		}
	}
	return out
}

// StampBrandTerms classifies like ClassifyWithBrandTerms but returns all
// rows in their original order, each stamped with its IsBrand flag.
func StampBrandTerms(queries []gsc.QueryRow, brandTerms []string) []gsc.QueryRow {
	out := make([]gsc.QueryRow, len(queries))
	if len(brandTerms) == 0 {
		copy(out, queries)
		return out
	}
	re := brandPattern(brandTerms)
	for i, q := range queries {
		isBrand := re.MatchString(q.Query)
		q.IsBrand = &isBrand
		out[i] = q
	}
	return out
}

func buildBrandSummary(rows []gsc.QueryRow, totalClicks int) gsc.BrandSummary {
	var clicks, impressions int
	var positionSum float64
	for _, r := range rows {
		clicks += r.Clicks
		impressions += r.Impressions
		positionSum += r.Position
	}

	s := gsc.BrandSummary{
		QueryCount:  len(rows),
		Clicks:      clicks,
		Impressions: impressions,
	}
	if impressions > 0 {
		s.AvgCTR = float64(clicks) / float64(impressions)
	}
	if len(rows) > 0 {
		s.AvgPosition = positionSum / float64(len(rows))
	}
	if totalClicks > 0 {
		s.ClickShare = float64(clicks) / float64(totalClicks)
	}
	return s
}

func topByClicks(rows []gsc.QueryRow, n int) []gsc.QueryRow {
	sorted := make([]gsc.QueryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Clicks > sorted[j].Clicks })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// RunBrandAnalysis produces the brand-dependency report for a confirmed
// term list: composition summaries, dependency score in percent of total
// clicks, health grading and rule-based risks and recommendations.
func RunBrandAnalysis(queries []gsc.QueryRow, brandTerms []string) BrandAnalysisResult {
	partition := ClassifyWithBrandTerms(queries, brandTerms)

	totalClicks := 0
	for _, q := range queries {
		totalClicks += q.Clicks
	}

	brandSummary := buildBrandSummary(partition.Brand, totalClicks)
	nonBrandSummary := buildBrandSummary(partition.NonBrand, totalClicks)
	dependencyScore := brandSummary.ClickShare * 100
	healthLevel := BrandHealthLevel(dependencyScore)

	risks := []string{}
	recommendations := []string{}

	switch healthLevel {
	case HealthCritical:
		risks = append(risks, fmt.Sprintf("Brand traffic is %.0f%% of total clicks, a high dependency risk", dependencyScore))
		recommendations = append(recommendations, "Invest heavily in non-brand content and SEO to diversify traffic sources")
	case HealthWarning:
		risks = append(risks, fmt.Sprintf("Brand traffic at %.0f%%, approaching unhealthy dependency", dependencyScore))
		recommendations = append(recommendations, "Start building non-brand content pipeline to reduce brand dependency")
	}

	if nonBrandSummary.AvgCTR < 0.02 {
		risks = append(risks, "Non-brand CTR is below 2%, titles and meta descriptions may need optimization")
		recommendations = append(recommendations, "Audit title tags and meta descriptions for top non-brand queries")
	}
	if nonBrandSummary.AvgPosition > 10 {
		risks = append(risks, "Average non-brand position is outside page 1")
		recommendations = append(recommendations, "Focus on content quality and backlinks for core non-brand keywords")
	}

	result := BrandAnalysisResult{
		DependencyScore:     dependencyScore,
		HealthLevel:         healthLevel,
		TopBrandKeywords:    topByClicks(partition.Brand, 20),
		TopNonBrandKeywords: topByClicks(partition.NonBrand, 20),
		Risks:               risks,
		Recommendations:     recommendations,
	}
	result.Composition.Brand = brandSummary
	result.Composition.NonBrand = nonBrandSummary
	return result
}
