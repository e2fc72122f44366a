// Package gsc defines the data contract for Google Search Console
// performance exports: one record per (query, page) combination plus the
// aggregate summary computed over a full export. These types carry no
// behavior; the parsing layer produces them and the analysis layer
// consumes them.
package gsc

// Row is one record from any GSC export dimension (pages, countries,
// devices, dates). Numeric fields default to zero when the export omits
// them; clicks <= impressions is expected but never enforced.
type Row struct {
	Query       string  `json:"query,omitempty"`
	Page        string  `json:"page,omitempty"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Country     string  `json:"country,omitempty"`
	Device      string  `json:"device,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// QueryRow is a Row with a guaranteed non-empty Query. IsBrand is
// tri-state: nil until the brand classifier has run.
type QueryRow struct {
	Query       string  `json:"query"`
	Page        string  `json:"page,omitempty"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Country     string  `json:"country,omitempty"`
	Device      string  `json:"device,omitempty"`
	Date        string  `json:"date,omitempty"`
	IsBrand     *bool   `json:"isBrand,omitempty"`
}

// QueryRowFrom promotes a generic Row to a QueryRow. The caller is
// responsible for checking that r.Query is non-empty.
func QueryRowFrom(r Row) QueryRow {
	return QueryRow{
		Query:       r.Query,
		Page:        r.Page,
		Clicks:      r.Clicks,
		Impressions: r.Impressions,
		CTR:         r.CTR,
		Position:    r.Position,
		Country:     r.Country,
		Device:      r.Device,
		Date:        r.Date,
	}
}

// Summary aggregates a full query export. It is computed once by the
// parser; analyzers recompute whatever slices they need from the raw rows.
type Summary struct {
	TotalQueries          int     `json:"totalQueries"`
	TotalPages            int     `json:"totalPages"`
	TotalClicks           int     `json:"totalClicks"`
	TotalImpressions      int     `json:"totalImpressions"`
	AvgCTR                float64 `json:"avgCtr"`
	AvgPosition           float64 `json:"avgPosition"`
	QueriesInTop3         int     `json:"queriesInTop3"`
	QueriesPosition4To10  int     `json:"queriesPosition4To10"`
	QueriesPosition11To20 int     `json:"queriesPosition11To20"`
}

// Metadata records where a parsed dataset came from.
type Metadata struct {
	SourceFile string   `json:"sourceFile"`
	FilesFound []string `json:"filesFound"`
}

// ParsedData is the complete output of the parsing layer for one upload.
type ParsedData struct {
	Queries   []QueryRow `json:"queries"`
	Pages     []Row      `json:"pages"`
	Countries []Row      `json:"countries"`
	Devices   []Row      `json:"devices"`
	Dates     []Row      `json:"dates"`
	Metadata  Metadata   `json:"metadata"`
	Summary   Summary    `json:"summary"`
}

// BrandSummary aggregates one side of a brand / non-brand partition.
type BrandSummary struct {
	QueryCount  int     `json:"queryCount"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	ClickShare  float64 `json:"clickShare"`
	AvgCTR      float64 `json:"avgCtr"`
	AvgPosition float64 `json:"avgPosition"`
}
