package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarcinG1922/gsc-analyzer/analysis"
	"github.com/MarcinG1922/gsc-analyzer/config"
	"github.com/MarcinG1922/gsc-analyzer/logger"
	"github.com/MarcinG1922/gsc-analyzer/middleware"
	"github.com/MarcinG1922/gsc-analyzer/pageaudit"
	"github.com/MarcinG1922/gsc-analyzer/session"
	"github.com/MarcinG1922/gsc-analyzer/stats"
)

// app wires the configuration, session state and supporting services
// behind the HTTP handlers.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	sess    *session.Session
	stats   *stats.Storage
	auditor *pageaudit.Auditor
	signals *analysis.SignalSet
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	statsStorage, err := stats.NewStorage(cfg.Stats.DataDir)
	if err != nil {
		log.Fatalf("init stats storage: %v", err)
	}

	business := analysis.DefaultBusinessContext()
	if cfg.Analysis.Business.ConversionRate > 0 {
		business.ConversionRate = cfg.Analysis.Business.ConversionRate
	}
	if cfg.Analysis.Business.TrialToPaidRate > 0 {
		business.TrialToPaidRate = cfg.Analysis.Business.TrialToPaidRate
	}
	if cfg.Analysis.Business.ACV > 0 {
		business.ACV = cfg.Analysis.Business.ACV
	}
	business.CompanyName = cfg.Analysis.Business.CompanyName

	a := &app{
		cfg:     cfg,
		log:     appLog,
		sess:    session.New(business),
		stats:   statsStorage,
		signals: analysis.SignalsForLocale(cfg.Analysis.SignalLocale),
	}
	if cfg.Audit.Enabled {
		a.auditor = pageaudit.New(appLog, time.Duration(cfg.Audit.TimeoutSeconds)*time.Second, cfg.Audit.MaxPages)
	}

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(appLog))
	r.Use(middleware.NewRateLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst).RateLimit())
	r.Use(middleware.CORS())
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	a.registerRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		appLog.Info("server starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down", nil)
	if err := statsStorage.Shutdown(); err != nil {
		appLog.WithError(err).Warn("stats shutdown", nil)
	}
}

func (a *app) registerRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", a.handleHealth)
		api.POST("/upload", a.handleUpload)
		api.POST("/reset", a.handleReset)

		api.POST("/brand/detect", a.handleBrandDetect)
		api.POST("/brand/confirm", a.handleBrandConfirm)
		api.POST("/context", a.handleBusinessContext)

		an := api.Group("/analysis")
		{
			an.GET("/brand", a.handleBrandAnalysis)
			an.GET("/seo", a.handleSeoAnalysis)
			an.GET("/content", a.handleContentAnalysis)
			an.GET("/paid", a.handlePaidAnalysis)
			an.GET("/anomalies", a.handleAnomalies)
			an.GET("/summary", a.handleSummary)
		}

		api.GET("/export/:kind", a.handleExport)
		api.GET("/audit/quick-wins", a.handleQuickWinAudit)
		api.GET("/statistics", a.handleStatistics)
	}
}
