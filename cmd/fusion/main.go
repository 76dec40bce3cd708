// Command fusion runs one identity and flight fusion over a directory of extracts
// and writes every result table as a JSON file.
//
// Usage:
//
//	fusion -dir ./data -out ./out
//	fusion -dir ./data -out ./out -ratio 1.5   # stricter suspicious-row rejection
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/infrastructure/config"
	"paxfusion-service/internal/infrastructure/router"
	repo "paxfusion-service/internal/interface/repository"
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
	"paxfusion-service/pkg/metrics"
	"paxfusion-service/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	dir := flag.String("dir", cfg.ExtractDir, "directory holding the extract files")
	out := flag.String("out", "./out", "directory receiving the result tables")
	ratio := flag.Float64("ratio", cfg.SuspiciousRatio, "frequent/suspicious row ratio required to drop suspicious rows")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := cfg.LogLevel
	if *debug {
		level = "debug"
	}
	log := logger.NewLogger(level)

	if *ratio <= 0 {
		log.Fatal("Ratio must be positive", "ratio", *ratio)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	fusionMetrics := metrics.NewMetrics("paxfusion", registry)

	sourceRouter := router.NewSourceRouter(log)
	usecase.RegisterDefaultHandlers(sourceRouter, utils.NewExtractParser(log), cfg.ExtractPatterns())
	extractRepository := repo.NewFileExtractRepository(*dir, sourceRouter, nil, nil, log)

	snapshot, err := extractRepository.LoadSnapshot(ctx)
	if err != nil {
		log.Fatal("Failed to load extracts", "dir", *dir, "error", err)
	}

	processor := usecase.NewFusionProcessor(nil, log, fusionMetrics, *ratio)
	result, err := processor.Run(ctx, snapshot)
	if err != nil {
		log.Fatal("Fusion failed", "error", err)
	}

	files, err := writeTables(*out, result)
	if err != nil {
		log.Fatal("Failed to write result tables", "error", err)
	}
	log.Info("Wrote result tables", "runID", result.RunID, "dir", *out, "files", len(files))

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
		location, err := repo.NewS3SnapshotExporter(s3Client, cfg.S3Bucket, cfg.S3Prefix, log).Export(ctx, result)
		if err != nil {
			log.Fatal("Failed to export result", "error", err)
		}
		log.Info("Exported result", "location", location)
	}

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, registry); err != nil {
			log.Error("Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
}

// writeTables writes one JSON file per result table and returns their paths
func writeTables(dir string, result *entity.FusionResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	tables := []struct {
		name string
		rows any
	}{
		{"document_links", result.DocumentLinks},
		{"document_conflicts", result.DocumentConflicts},
		{"document_chains", result.DocumentChains},
		{"suspicious_legs", result.SuspiciousLegs},
		{"legs", result.Legs},
		{"ambiguous_tickets", result.AmbiguousTickets},
		{"identities", result.Identities},
		{"conflicted_keys", result.ConflictedKeys},
		{"nickname_conflicts", result.NicknameConflicts},
		{"ffkey_document_conflicts", result.FFKeyDocumentConflicts},
		{"history", result.History},
	}

	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		data, err := json.MarshalIndent(table.rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", table.name, err)
		}
		if string(data) == "null" {
			data = []byte("[]")
		}
		path := filepath.Join(dir, table.name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", table.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
