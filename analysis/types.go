// Package analysis is the strategic analysis engine. Every function in it
// is a pure, stateless transformation over a slice of query rows plus
// optional configuration: nothing here performs I/O, keeps cross-call
// state, or mutates its input (classification returns stamped copies).
package analysis

import "github.com/MarcinG1922/gsc-analyzer/gsc"

// IntentLevel is the commercial intent of a query.
type IntentLevel string

const (
	IntentHigh   IntentLevel = "high"
	IntentMedium IntentLevel = "medium"
	IntentLow    IntentLevel = "low"
)

// FunnelStage is the marketing-funnel stage of a query.
type FunnelStage string

const (
	StageTofu FunnelStage = "tofu"
	StageMofu FunnelStage = "mofu"
	StageBofu FunnelStage = "bofu"
)

// OpportunityType tags an SEO opportunity with the filter that found it.
type OpportunityType string

const (
	OpportunityQuickWin               OpportunityType = "quick_win"
	OpportunityStrikingDistance       OpportunityType = "striking_distance"
	OpportunityHighVolumeUnderperform OpportunityType = "high_volume_underperformer"
	OpportunityCTROptimization        OpportunityType = "ctr_optimization"
)

// CampaignType tags a paid-search opportunity.
type CampaignType string

const (
	CampaignNonRanking            CampaignType = "non_ranking"
	CampaignSerpDomination        CampaignType = "serp_domination"
	CampaignCompetitorConquesting CampaignType = "competitor_conquesting"
)

// ContentType tags a content cluster.
type ContentType string

const (
	ContentQuestion   ContentType = "question"
	ContentComparison ContentType = "comparison"
	ContentTopicGap   ContentType = "topic_gap"
)

// Severity grades an anomaly.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// HealthLevel grades brand dependency.
type HealthLevel string

const (
	HealthHealthy  HealthLevel = "healthy"
	HealthWarning  HealthLevel = "warning"
	HealthCritical HealthLevel = "critical"
)

// SeoOpportunity is a query row extended with the finder's verdict.
// ExpectedCTR and CTRGap are only set by the benchmark-relative finders.
type SeoOpportunity struct {
	gsc.QueryRow
	OpportunityType OpportunityType `json:"opportunityType"`
	PotentialClicks int             `json:"potentialClicks"`
	ExpectedCTR     float64         `json:"expectedCtr,omitempty"`
	CTRGap          float64         `json:"ctrGap,omitempty"`
}

// CannibalizationIssue is one query competing across multiple pages.
type CannibalizationIssue struct {
	Query       string   `json:"query"`
	Pages       []string `json:"pages"`
	Clicks      int      `json:"clicks"`
	Impressions int      `json:"impressions"`
}

// SeoAnalysisResult combines the five independent SEO filters.
type SeoAnalysisResult struct {
	QuickWins                 []SeoOpportunity       `json:"quickWins"`
	StrikingDistance          []SeoOpportunity       `json:"strikingDistance"`
	HighVolumeUnderperformers []SeoOpportunity       `json:"highVolumeUnderperformers"`
	CTROptimizations          []SeoOpportunity       `json:"ctrOptimizations"`
	Cannibalization           []CannibalizationIssue `json:"cannibalization"`
}

// ContentOpportunity is one content cluster with its composite score.
// Clusters are recomputed fully on each run; no identity persists.
type ContentOpportunity struct {
	Type             ContentType    `json:"type"`
	Queries          []gsc.QueryRow `json:"queries"`
	TotalImpressions int            `json:"totalImpressions"`
	AvgPosition      float64        `json:"avgPosition"`
	Score            float64        `json:"score"`
	Label            string         `json:"label"`
}

// FunnelBreakdown sums clicks per funnel stage over a whole row set.
type FunnelBreakdown struct {
	Tofu int `json:"tofu"`
	Mofu int `json:"mofu"`
	Bofu int `json:"bofu"`
}

// ContentAnalysisResult combines the three clustering analyses.
type ContentAnalysisResult struct {
	QuestionOpportunities []ContentOpportunity `json:"questionOpportunities"`
	ComparisonGaps        []ContentOpportunity `json:"comparisonGaps"`
	TopicGaps             []ContentOpportunity `json:"topicGaps"`
	FunnelBreakdown       FunnelBreakdown      `json:"funnelBreakdown"`
}

// PaidSearchOpportunity is a query row tagged for a paid campaign. A row
// may appear in more than one campaign set.
type PaidSearchOpportunity struct {
	gsc.QueryRow
	CampaignType CampaignType `json:"campaignType"`
	IntentLevel  IntentLevel  `json:"intentLevel"`
	BidStrategy  string       `json:"bidStrategy"`
}

// PaidSearchResult combines the three paid-search passes.
type PaidSearchResult struct {
	NonRanking            []PaidSearchOpportunity `json:"nonRanking"`
	SerpDomination        []PaidSearchOpportunity `json:"serpDomination"`
	CompetitorConquesting []PaidSearchOpportunity `json:"competitorConquesting"`
}

// Anomaly is one per-row irregularity worth investigating.
type Anomaly struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Query    string   `json:"query,omitempty"`
	Page     string   `json:"page,omitempty"`
	Detail   string   `json:"detail"`
}

// BrandAnalysisResult is the full brand-dependency report.
type BrandAnalysisResult struct {
	Composition struct {
		Brand    gsc.BrandSummary `json:"brand"`
		NonBrand gsc.BrandSummary `json:"nonBrand"`
	} `json:"composition"`
	DependencyScore     float64        `json:"dependencyScore"`
	HealthLevel         HealthLevel    `json:"healthLevel"`
	TopBrandKeywords    []gsc.QueryRow `json:"topBrandKeywords"`
	TopNonBrandKeywords []gsc.QueryRow `json:"topNonBrandKeywords"`
	Risks               []string       `json:"risks"`
	Recommendations     []string       `json:"recommendations"`
}

// BrandDetectionResult is the heuristic brand-term proposal, returned for
// the user to confirm or edit before classification runs.
type BrandDetectionResult struct {
	LikelyBrand   []string `json:"likelyBrand"`
	Uncertain     []string `json:"uncertain"`
	DetectedRoots []string `json:"detectedRoots"`
}

// BrandClassification is a total partition of the input rows: every row
// lands in exactly one side, stamped with its IsBrand flag.
type BrandClassification struct {
	Brand    []gsc.QueryRow `json:"brand"`
	NonBrand []gsc.QueryRow `json:"nonBrand"`
}

// HeadlineMetric is one formatted figure for the summary header.
type HeadlineMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend,omitempty"`
}

// OpportunityLine is one entry in the summary's opportunity list.
type OpportunityLine struct {
	Label           string  `json:"label"`
	RevenueEstimate float64 `json:"revenueEstimate,omitempty"`
}

// StrategicSummaryResult is the cross-cutting report composed from every
// other analyzer.
type StrategicSummaryResult struct {
	HeadlineMetrics []HeadlineMetric  `json:"headlineMetrics"`
	Risks           []string          `json:"risks"`
	Opportunities   []OpportunityLine `json:"opportunities"`
	Anomalies       []Anomaly         `json:"anomalies"`
	FunnelBreakdown FunnelBreakdown   `json:"funnelBreakdown"`
	Priorities      []string          `json:"priorities"`
}
