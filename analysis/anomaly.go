package analysis

import (
	"fmt"
	"sort"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

const maxAnomalies = 50

// DetectAnomalies runs two independent per-row checks; a row can trigger
// both. High-severity findings sort before the rest (stable partition, so
// the output is deterministic for a given input), capped to the first 50.
func DetectAnomalies(queries []gsc.QueryRow) []Anomaly {
	anomalies := []Anomaly{}

	for _, q := range queries {
		// High volume with almost no clicks.
		if q.Impressions > 1000 && q.CTR < 0.005 {
			anomalies = append(anomalies, Anomaly{
				Type:     "ctr_anomaly",
				Severity: SeverityWarning,
				Query:    q.Query,
				Detail:   fmt.Sprintf("%d impressions but only %.2f%% CTR", q.Impressions, q.CTR*100),
			})
		}

		// Top-3 ranking that barely gets clicked, usually a title/meta issue.
		if q.Position <= 3 && q.CTR < 0.10 && q.Impressions > 500 {
			anomalies = append(anomalies, Anomaly{
				Type:     "low_ctr_top_position",
				Severity: SeverityHigh,
				Query:    q.Query,
				Detail:   fmt.Sprintf("Position %.1f but CTR only %.1f%%, title or meta description likely needs work", q.Position, q.CTR*100),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Severity == SeverityHigh && anomalies[j].Severity != SeverityHigh
	})
	if len(anomalies) > maxAnomalies {
		anomalies = anomalies[:maxAnomalies]
	}
	return anomalies
}
