package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

var vsPatternRe = regexp.MustCompile(`(.+?)\s+vs\s+(.+)`)

// scoreCluster computes the composite opportunity score. Each sub-score is
// a step function; the weights and steps are calibrated values kept as-is.
func scoreCluster(queries []gsc.QueryRow, signals *SignalSet) float64 {
	var totalImp int
	var posSum float64
	hasCommercial := false
	for _, q := range queries {
		totalImp += q.Impressions
		posSum += q.Position
		if !hasCommercial && signals.ClassifyIntent(q.Query) == IntentHigh {
			hasCommercial = true
		}
	}
	count := len(queries)
	avgPos := 0.0
	if count > 0 {
		avgPos = posSum / float64(count)
	}

	impScore := 3.0
	switch {
	case totalImp > 5000:
		impScore = 10
	case totalImp > 1000:
		impScore = 7
	case totalImp > 500:
		impScore = 5
	}
	posScore := 5.0
	switch {
	case avgPos < 20:
		posScore = 10
	case avgPos < 30:
		posScore = 7
	}
	countScore := 5.0
	switch {
	case count > 10:
		countScore = 10
	case count > 5:
		countScore = 7
	}
	intentScore := 5.0
	if hasCommercial {
		intentScore = 10
	}

	return impScore*0.4 + posScore*0.3 + countScore*0.2 + intentScore*0.1
}

func buildOpportunity(kind ContentType, label string, queries []gsc.QueryRow, signals *SignalSet) ContentOpportunity {
	sorted := make([]gsc.QueryRow, len(queries))
	copy(sorted, queries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Impressions > sorted[j].Impressions })

	var totalImp int
	var posSum float64
	for _, q := range queries {
		totalImp += q.Impressions
		posSum += q.Position
	}
	avgPos := 0.0
	if len(queries) > 0 {
		avgPos = posSum / float64(len(queries))
	}

	return ContentOpportunity{
		Type:             kind,
		Queries:          sorted,
		TotalImpressions: totalImp,
		AvgPosition:      avgPos,
		Score:            scoreCluster(queries, signals),
		Label:            label,
	}
}

type clusterMap struct {
	groups map[string][]gsc.QueryRow
	order  []string
}

func newClusterMap() *clusterMap {
	return &clusterMap{groups: make(map[string][]gsc.QueryRow)}
}

func (c *clusterMap) add(key string, q gsc.QueryRow) {
	if _, ok := c.groups[key]; !ok {
		c.order = append(c.order, key)
	}
	c.groups[key] = append(c.groups[key], q)
}

func prefixKey(query string, words int) string {
	fields := whitespaceRe.Split(strings.ToLower(query), -1)
	if len(fields) > words {
		fields = fields[:words]
	}
	return strings.Join(fields, " ")
}

// FindQuestionOpportunities clusters question-form queries (first word is
// a question word) by their first three words.
func FindQuestionOpportunities(queries []gsc.QueryRow, signals *SignalSet) []ContentOpportunity {
	signals = orDefault(signals)

	clusters := newClusterMap()
	for _, q := range queries {
		first := whitespaceRe.Split(strings.ToLower(q.Query), -1)[0]
		isQuestion := false
		for _, prefix := range signals.QuestionPrefixes {
			if first == prefix {
				isQuestion = true
				break
			}
		}
		if !isQuestion {
			continue
		}
		clusters.add(prefixKey(q.Query, 3), q)
	}

	out := []ContentOpportunity{}
	for _, label := range clusters.order {
		out = append(out, buildOpportunity(ContentQuestion, label, clusters.groups[label], signals))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// FindComparisonGaps clusters comparison queries, keyed by the two sides
// of an explicit "X vs Y" pattern when present, otherwise by the first
// four words.
func FindComparisonGaps(queries []gsc.QueryRow, signals *SignalSet) []ContentOpportunity {
	signals = orDefault(signals)

	clusters := newClusterMap()
	for _, q := range queries {
		lower := strings.ToLower(q.Query)
		if !containsAny(lower, signals.ComparisonSignals) {
			continue
		}
		key := prefixKey(q.Query, 4)
		if m := vsPatternRe.FindStringSubmatch(lower); m != nil {
			key = strings.TrimSpace(m[1]) + " vs " + strings.TrimSpace(m[2])
		}
		clusters.add(key, q)
	}

	out := []ContentOpportunity{}
	for _, label := range clusters.order {
		out = append(out, buildOpportunity(ContentComparison, label, clusters.groups[label], signals))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// FindTopicGaps clusters all queries by their first two significant words
// (words over two characters). Only clusters with at least three members
// and over 500 combined impressions survive; capped to the top 50.
func FindTopicGaps(queries []gsc.QueryRow, signals *SignalSet) []ContentOpportunity {
	signals = orDefault(signals)

	clusters := newClusterMap()
	for _, q := range queries {
		var words []string
		for _, w := range whitespaceRe.Split(strings.ToLower(q.Query), -1) {
			if len(w) > 2 {
				words = append(words, w)
			}
		}
		if len(words) < 2 {
			continue
		}
		clusters.add(words[0]+" "+words[1], q)
	}

	out := []ContentOpportunity{}
	for _, label := range clusters.order {
		members := clusters.groups[label]
		if len(members) < 3 {
			continue
		}
		totalImp := 0
		for _, q := range members {
			totalImp += q.Impressions
		}
		if totalImp <= 500 {
			continue
		}
		out = append(out, buildOpportunity(ContentTopicGap, label, members, signals))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

// BuildFunnelBreakdown sums clicks per funnel stage across the whole row
// set. Every row's clicks land in exactly one stage, so the three buckets
// always add up to the total clicks.
func BuildFunnelBreakdown(queries []gsc.QueryRow, signals *SignalSet) FunnelBreakdown {
	signals = orDefault(signals)
	var fb FunnelBreakdown
	for _, q := range queries {
		switch signals.ClassifyFunnelStage(q.Query, q.IsBrand) {
		case StageTofu:
			fb.Tofu += q.Clicks
		case StageMofu:
			fb.Mofu += q.Clicks
		default:
			fb.Bofu += q.Clicks
		}
	}
	return fb
}

// RunContentAnalysis runs the three clustering analyses plus the funnel
// breakdown, which is independent of clustering.
func RunContentAnalysis(queries []gsc.QueryRow, signals *SignalSet) ContentAnalysisResult {
	signals = orDefault(signals)
	return ContentAnalysisResult{
		QuestionOpportunities: FindQuestionOpportunities(queries, signals),
		ComparisonGaps:        FindComparisonGaps(queries, signals),
		TopicGaps:             FindTopicGaps(queries, signals),
		FunnelBreakdown:       BuildFunnelBreakdown(queries, signals),
	}
}
