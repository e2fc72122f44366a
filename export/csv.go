// Package export flattens analysis result lists into CSV, one column per
// scalar field with a human-readable label.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/analysis"
)

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// WriteSeoOpportunities exports one SEO opportunity list.
func WriteSeoOpportunities(w io.Writer, opportunities []analysis.SeoOpportunity) error {
	header := []string{
		"Query", "Page", "Clicks", "Impressions", "CTR", "Position",
		"Opportunity Type", "Potential Clicks", "Expected CTR", "CTR Gap",
	}
	rows := make([][]string, 0, len(opportunities))
	for _, o := range opportunities {
		rows = append(rows, []string{
			o.Query,
			o.Page,
			fmt.Sprintf("%d", o.Clicks),
			fmt.Sprintf("%d", o.Impressions),
			formatFloat(o.CTR),
			fmt.Sprintf("%.1f", o.Position),
			string(o.OpportunityType),
			fmt.Sprintf("%d", o.PotentialClicks),
			formatFloat(o.ExpectedCTR),
			formatFloat(o.CTRGap),
		})
	}
	return writeAll(w, header, rows)
}

// WriteCannibalization exports cannibalization issues; the page list is
// joined into one cell.
func WriteCannibalization(w io.Writer, issues []analysis.CannibalizationIssue) error {
	header := []string{"Query", "Pages", "Page Count", "Clicks", "Impressions"}
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			issue.Query,
			strings.Join(issue.Pages, " | "),
			fmt.Sprintf("%d", len(issue.Pages)),
			fmt.Sprintf("%d", issue.Clicks),
			fmt.Sprintf("%d", issue.Impressions),
		})
	}
	return writeAll(w, header, rows)
}

// WriteContentOpportunities exports content clusters, one row per
// cluster.
func WriteContentOpportunities(w io.Writer, opportunities []analysis.ContentOpportunity) error {
	header := []string{
		"Label", "Type", "Queries", "Total Impressions", "Avg Position", "Score",
	}
	rows := make([][]string, 0, len(opportunities))
	for _, o := range opportunities {
		rows = append(rows, []string{
			o.Label,
			string(o.Type),
			fmt.Sprintf("%d", len(o.Queries)),
			fmt.Sprintf("%d", o.TotalImpressions),
			fmt.Sprintf("%.1f", o.AvgPosition),
			fmt.Sprintf("%.2f", o.Score),
		})
	}
	return writeAll(w, header, rows)
}

// WritePaidOpportunities exports one paid-search opportunity list.
func WritePaidOpportunities(w io.Writer, opportunities []analysis.PaidSearchOpportunity) error {
	header := []string{
		"Query", "Clicks", "Impressions", "CTR", "Position",
		"Campaign Type", "Intent Level", "Bid Strategy",
	}
	rows := make([][]string, 0, len(opportunities))
	for _, o := range opportunities {
		rows = append(rows, []string{
			o.Query,
			fmt.Sprintf("%d", o.Clicks),
			fmt.Sprintf("%d", o.Impressions),
			formatFloat(o.CTR),
			fmt.Sprintf("%.1f", o.Position),
			string(o.CampaignType),
			string(o.IntentLevel),
			o.BidStrategy,
		})
	}
	return writeAll(w, header, rows)
}

// WriteAnomalies exports the anomaly list.
func WriteAnomalies(w io.Writer, anomalies []analysis.Anomaly) error {
	header := []string{"Type", "Severity", "Query", "Page", "Detail"}
	rows := make([][]string, 0, len(anomalies))
	for _, a := range anomalies {
		rows = append(rows, []string{
			a.Type,
			string(a.Severity),
			a.Query,
			a.Page,
			a.Detail,
		})
	}
	return writeAll(w, header, rows)
}
