// Package metrics exposes the Prometheus instrumentation for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsc_uploads_total",
			Help: "Total number of dataset uploads by outcome",
		},
		[]string{"outcome"},
	)

	UploadRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gsc_upload_query_rows",
			Help:    "Query rows per successful upload",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	AnalysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsc_analysis_runs_total",
			Help: "Total number of analysis runs by mode",
		},
		[]string{"mode"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gsc_analysis_duration_seconds",
			Help: "Duration of analysis runs in seconds",
		},
		[]string{"mode"},
	)
)
