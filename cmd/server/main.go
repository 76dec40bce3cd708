package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/internal/infrastructure/config"
	"paxfusion-service/internal/infrastructure/oauth"
	"paxfusion-service/internal/infrastructure/persistence"
	"paxfusion-service/internal/infrastructure/router"
	"paxfusion-service/internal/interface/drive"
	"paxfusion-service/internal/interface/httpapi"
	repo "paxfusion-service/internal/interface/repository"
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
	"paxfusion-service/pkg/metrics"
	"paxfusion-service/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting PaxFusion Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	fusionMetrics := metrics.NewMetrics("paxfusion", registry)

	// Airline and airport directory (optional)
	var airlineRepository repository.AirlineRepository
	var airportRepository repository.AirportRepository
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		defer func() {
			if err := persistence.ClosePostgresDB(gormDB); err != nil {
				log.Error("PostgreSQL close error", "error", err)
			}
		}()
		airlineRepository = repo.NewGormAirlineRepository(gormDB)
		airportRepository = repo.NewGormAirportRepository(gormDB)
	}

	// Forum profile store (optional)
	var forumRepository repository.ForumProfileRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, log)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}()
		forumRepository = repo.NewMongoForumProfileRepository(persistence.GetDatabase(mongoClient, cfg.MongoDB))
	}

	// Remote extract folder (optional)
	var fetcher repository.ExtractFetcher
	if cfg.DriveEnabled() {
		driveOAuth := oauth.NewDriveOAuth(cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveRefreshToken, log)
		fetcher, err = drive.NewDriveExtractFetcher(ctx, driveOAuth.GetTokenSource(ctx), cfg.DriveFolderID, log)
		if err != nil {
			log.Fatal("Failed to create Drive fetcher", "error", err)
		}
	}

	// Snapshot export (optional)
	var exporter repository.SnapshotExporter
	if cfg.S3Enabled() {
		s3Client, err := repo.NewS3Client(ctx, repo.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			log.Fatal("Failed to create S3 client", "error", err)
		}
		exporter = repo.NewS3SnapshotExporter(s3Client, cfg.S3Bucket, cfg.S3Prefix, log)
	}

	// Visualization hand-off (optional)
	var publisher repository.ResultPublisher
	if cfg.VisualizationURL != "" {
		publisher = repo.NewVisualizationPublisher(cfg.VisualizationURL, cfg.VisualizationToken, log)
	}

	// Extract routing
	sourceRouter := router.NewSourceRouter(log)
	usecase.RegisterDefaultHandlers(sourceRouter, utils.NewExtractParser(log), cfg.ExtractPatterns())
	extractRepository := repo.NewFileExtractRepository(cfg.ExtractDir, sourceRouter, fetcher, forumRepository, log)

	// Fusion
	processor := usecase.NewFusionProcessor(airlineRepository, log, fusionMetrics, cfg.SuspiciousRatio)
	store := usecase.NewResultStore()
	orchestrator := usecase.NewFusionOrchestrator(extractRepository, processor, store, publisher, exporter, log)

	runFusion := func() {
		result, err := orchestrator.RunOnce(ctx)
		if errors.Is(err, usecase.ErrRunInProgress) {
			log.Warn("Skipping scheduled fusion run", "reason", err)
			return
		}
		if err != nil {
			log.Error("Fusion run failed", "error", err)
			return
		}
		log.Info("Fusion run finished", "runID", result.RunID, "history", len(result.History))
	}

	go runFusion()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.FusionSchedule, runFusion); err != nil {
		log.Fatal("Invalid fusion schedule", "schedule", cfg.FusionSchedule, "error", err)
	}
	scheduler.Start()

	// Set up HTTP server
	handler := httpapi.NewHandler(store, usecase.NewFlightGraphBuilder(airportRepository, log), orchestrator, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler, registry),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop a run in flight
	<-scheduler.Stop().Done()

	log.Info("PaxFusion Service stopped")
}
