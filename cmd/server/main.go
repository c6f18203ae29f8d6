package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cropadvisor/config"
	"cropadvisor/database"
	"cropadvisor/pkg/catalog"
	"cropadvisor/pkg/logging"
	"cropadvisor/pkg/metrics"
	"cropadvisor/pkg/scoring"
	"cropadvisor/router"

	authCtrlImp "cropadvisor/pkg/auth/controllerImp"
	healthCtrlImp "cropadvisor/pkg/health/controllerImp"
	recCtrlImp "cropadvisor/pkg/recommendation/controllerImp"
	recRepoImp "cropadvisor/pkg/recommendation/repositoryImp"
	recSvcImp "cropadvisor/pkg/recommendation/serviceImp"
)

func main() {
	// 1) Config + logger
	cfg, warns := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	for _, w := range warns {
		logger.Warn("config", zap.String("detail", w))
	}

	// 2) Crop catalog
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("crops", cat.Len()), zap.String("path", cfg.CatalogPath))

	// 3) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database", zap.String("path", cfg.DBPath), zap.Error(err))
	}

	// 4) Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	var metricsHandler http.Handler
	if cfg.EnableMetrics {
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	// 5) Service + controllers
	svc := recSvcImp.New(scoring.NewRanker(cat), cat, recRepoImp.New(db), logger, m, recSvcImp.Options{
		Delay: cfg.ProcessingDelay,
		TTL:   cfg.CacheTTL,
	})
	rCtrl := recCtrlImp.New(svc, logger)
	aCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db, cat)

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	r := router.New(e, rCtrl, aCtrl, hCtrl, metricsHandler)

	// 7) Start + graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFromFile(path)
}
