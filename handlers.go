package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MarcinG1922/gsc-analyzer/analysis"
	"github.com/MarcinG1922/gsc-analyzer/export"
	"github.com/MarcinG1922/gsc-analyzer/gsc"
	"github.com/MarcinG1922/gsc-analyzer/gscparse"
	"github.com/MarcinG1922/gsc-analyzer/metrics"
	"github.com/MarcinG1922/gsc-analyzer/session"
)

func (a *app) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"dataLoaded":    a.sess.Data() != nil,
		"setupComplete": a.sess.SetupComplete(),
	})
}

// handleUpload accepts one or more GSC export files under the "files"
// multipart field. A .zip is unpacked and every CSV inside it parsed;
// loose .csv files are parsed directly. All files of one request land in
// a single dataset that replaces the session's previous one.
func (a *app) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form upload: " + err.Error()})
		return
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided under field 'files'"})
		return
	}

	data, err := a.parseUploads(uploads)
	if err != nil {
		if errors.Is(err, gscparse.ErrNoQueryData) {
			metrics.UploadsTotal.WithLabelValues("no_query_data").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		metrics.UploadsTotal.WithLabelValues("parse_error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.sess.SetData(data)
	a.stats.RecordUpload()
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadRows.Observe(float64(len(data.Queries)))
	a.log.Info("dataset uploaded", map[string]interface{}{
		"queries": len(data.Queries),
		"files":   data.Metadata.FilesFound,
	})

	c.JSON(http.StatusOK, gin.H{
		"summary":  data.Summary,
		"metadata": data.Metadata,
	})
}

func (a *app) parseUploads(uploads []*multipart.FileHeader) (*gsc.ParsedData, error) {
	var zipHeader *multipart.FileHeader
	var csvFiles []gscparse.File
	var openReaders []multipart.File

	defer func() {
		for _, r := range openReaders {
			r.Close()
		}
	}()

	for _, fh := range uploads {
		name := strings.ToLower(fh.Filename)
		switch {
		case strings.HasSuffix(name, ".zip"):
			zipHeader = fh
		case strings.HasSuffix(name, ".csv"):
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
			}
			openReaders = append(openReaders, f)
			csvFiles = append(csvFiles, gscparse.File{Name: fh.Filename, Reader: f})
		}
	}

	if zipHeader != nil {
		f, err := zipHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", zipHeader.Filename, err)
		}
		defer f.Close()
		buf, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", zipHeader.Filename, err)
		}
		return gscparse.ParseZip(zipHeader.Filename, bytes.NewReader(buf), int64(len(buf)))
	}

	if len(csvFiles) == 0 {
		return nil, fmt.Errorf("no .zip or .csv files in upload")
	}
	return gscparse.ParseFiles(csvFiles)
}

func (a *app) handleReset(c *gin.Context) {
	a.sess.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// requireData fetches the session dataset or answers 409 when nothing
// has been uploaded yet.
func (a *app) requireData(c *gin.Context) (*gsc.ParsedData, bool) {
	data := a.sess.Data()
	if data == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no dataset loaded, upload a GSC export first"})
		return nil, false
	}
	return data, true
}

// requireSetup additionally demands confirmed brand terms, since the
// downstream analyses lean on the brand flag.
func (a *app) requireSetup(c *gin.Context) (*gsc.ParsedData, bool) {
	data, ok := a.requireData(c)
	if !ok {
		return nil, false
	}
	if !a.sess.SetupComplete() {
		c.JSON(http.StatusConflict, gin.H{"error": "brand terms not confirmed, call /api/brand/confirm first"})
		return nil, false
	}
	return data, true
}

func (a *app) handleBrandDetect(c *gin.Context) {
	data, ok := a.requireData(c)
	if !ok {
		return
	}
	var req struct {
		Hints []string `json:"hints"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, analysis.DetectBrandTerms(data.Queries, req.Hints))
}

func (a *app) handleBrandConfirm(c *gin.Context) {
	if _, ok := a.requireData(c); !ok {
		return
	}
	var req struct {
		Terms []string `json:"terms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	a.sess.ConfirmBrandTerms(req.Terms)
	a.log.Info("brand terms confirmed", map[string]interface{}{"terms": len(req.Terms)})
	c.JSON(http.StatusOK, gin.H{"brandTerms": a.sess.BrandTerms()})
}

func (a *app) handleBusinessContext(c *gin.Context) {
	var req analysis.BusinessContext
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.ConversionRate <= 0 || req.ConversionRate > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversionRate must be in (0, 1]"})
		return
	}
	if req.TrialToPaidRate <= 0 || req.TrialToPaidRate > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trialToPaidRate must be in (0, 1]"})
		return
	}
	if req.ACV <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acv must be positive"})
		return
	}
	a.sess.SetBusinessContext(req)
	c.JSON(http.StatusOK, gin.H{"businessContext": a.sess.BusinessContext()})
}

// runAnalysis wraps one analysis invocation with a run ID, duration
// metrics and usage accounting, and writes the JSON envelope.
func (a *app) runAnalysis(c *gin.Context, mode string, run func() interface{}) {
	runID := session.NewRunID()
	start := time.Now()

	result := run()

	elapsed := time.Since(start)
	metrics.AnalysisRunsTotal.WithLabelValues(mode).Inc()
	metrics.AnalysisDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	a.stats.RecordAnalysis()
	a.log.Info("analysis run", map[string]interface{}{
		"mode":     mode,
		"runId":    runID,
		"duration": elapsed.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"runId":  runID,
		"mode":   mode,
		"result": result,
	})
}

func (a *app) handleBrandAnalysis(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	terms := a.sess.BrandTerms()
	a.runAnalysis(c, "brand", func() interface{} {
		return analysis.RunBrandAnalysis(data.Queries, terms)
	})
}

func (a *app) handleSeoAnalysis(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	a.runAnalysis(c, "seo", func() interface{} {
		return analysis.RunSeoAnalysis(data.Queries)
	})
}

func (a *app) handleContentAnalysis(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	a.runAnalysis(c, "content", func() interface{} {
		return analysis.RunContentAnalysis(data.Queries, a.signals)
	})
}

func (a *app) handlePaidAnalysis(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	a.runAnalysis(c, "paid", func() interface{} {
		return analysis.RunPaidSearchAnalysis(data.Queries, a.signals)
	})
}

func (a *app) handleAnomalies(c *gin.Context) {
	data, ok := a.requireData(c)
	if !ok {
		return
	}
	a.runAnalysis(c, "anomalies", func() interface{} {
		return analysis.DetectAnomalies(data.Queries)
	})
}

func (a *app) handleSummary(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	business := a.sess.BusinessContext()
	a.runAnalysis(c, "summary", func() interface{} {
		return analysis.RunStrategicSummary(data, business, a.signals)
	})
}

// handleExport streams one opportunity list as a CSV attachment. The
// :kind parameter selects the list.
func (a *app) handleExport(c *gin.Context) {
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}
	kind := c.Param("kind")

	var buf bytes.Buffer
	var err error
	switch kind {
	case "quick-wins":
		err = export.WriteSeoOpportunities(&buf, analysis.FindQuickWins(data.Queries))
	case "striking-distance":
		err = export.WriteSeoOpportunities(&buf, analysis.FindStrikingDistance(data.Queries))
	case "underperformers":
		err = export.WriteSeoOpportunities(&buf, analysis.FindHighVolumeUnderperformers(data.Queries))
	case "ctr-optimizations":
		err = export.WriteSeoOpportunities(&buf, analysis.FindCTROptimizations(data.Queries))
	case "cannibalization":
		err = export.WriteCannibalization(&buf, analysis.DetectCannibalization(data.Queries))
	case "content":
		result := analysis.RunContentAnalysis(data.Queries, a.signals)
		all := append(append(result.QuestionOpportunities, result.ComparisonGaps...), result.TopicGaps...)
		err = export.WriteContentOpportunities(&buf, all)
	case "paid":
		result := analysis.RunPaidSearchAnalysis(data.Queries, a.signals)
		all := append(append(result.NonRanking, result.SerpDomination...), result.CompetitorConquesting...)
		err = export.WritePaidOpportunities(&buf, all)
	case "anomalies":
		err = export.WriteAnomalies(&buf, analysis.DetectAnomalies(data.Queries))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export kind: " + kind})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}

	a.stats.RecordExport()
	filename := fmt.Sprintf("gsc-%s-%s.csv", kind, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// handleQuickWinAudit fetches the pages behind the current quick wins
// and reports title and meta description issues.
func (a *app) handleQuickWinAudit(c *gin.Context) {
	if a.auditor == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "page audit is disabled"})
		return
	}
	data, ok := a.requireSetup(c)
	if !ok {
		return
	}

	var urls []string
	for _, o := range analysis.FindQuickWins(data.Queries) {
		if o.Page != "" {
			urls = append(urls, o.Page)
		}
	}
	if len(urls) == 0 {
		c.JSON(http.StatusOK, gin.H{"audits": []interface{}{}})
		return
	}

	audits := a.auditor.Audit(c.Request.Context(), urls)
	c.JSON(http.StatusOK, gin.H{"audits": audits})
}

func (a *app) handleStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"current": a.stats.CurrentStats(),
		"months":  a.stats.Months(),
	})
}
