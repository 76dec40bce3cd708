package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"
)

// ErrRunInProgress is returned when a fusion run is requested while another is active
var ErrRunInProgress = errors.New("fusion run already in progress")

// ResultStore holds the latest successful fusion result
type ResultStore struct {
	mu       sync.RWMutex
	result   *entity.FusionResult
	finished time.Time
}

// NewResultStore creates an empty result store
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Set replaces the stored result
func (s *ResultStore) Set(result *entity.FusionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.finished = time.Now()
}

// Latest returns the stored result and when it was produced
func (s *ResultStore) Latest() (*entity.FusionResult, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.finished, s.result != nil
}

// FusionOrchestrator loads extracts, runs the fusion and hands the result on
type FusionOrchestrator struct {
	extractRepo repository.ExtractRepository
	processor   *FusionProcessor
	store       *ResultStore
	publisher   repository.ResultPublisher
	exporter    repository.SnapshotExporter
	logger      logger.Logger
	running     atomic.Bool
}

// NewFusionOrchestrator creates a new fusion orchestrator.
// publisher and exporter may be nil.
func NewFusionOrchestrator(
	extractRepo repository.ExtractRepository,
	processor *FusionProcessor,
	store *ResultStore,
	publisher repository.ResultPublisher,
	exporter repository.SnapshotExporter,
	logger logger.Logger,
) *FusionOrchestrator {
	return &FusionOrchestrator{
		extractRepo: extractRepo,
		processor:   processor,
		store:       store,
		publisher:   publisher,
		exporter:    exporter,
		logger:      logger,
	}
}

// RunOnce performs one full fusion run. Publishing and export failures are
// logged; the result is still stored.
func (o *FusionOrchestrator) RunOnce(ctx context.Context) (*entity.FusionResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer o.running.Store(false)

	snapshot, err := o.extractRepo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	result, err := o.processor.Run(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	o.store.Set(result)

	if o.exporter != nil {
		location, err := o.exporter.Export(ctx, result)
		if err != nil {
			o.logger.Error("Failed to export fusion result", "runID", result.RunID, "error", err)
		} else {
			o.logger.Info("Exported fusion result", "runID", result.RunID, "location", location)
		}
	}

	if o.publisher != nil {
		if err := o.publisher.Publish(ctx, result); err != nil {
			o.logger.Error("Failed to publish fusion result", "runID", result.RunID, "error", err)
		}
	}

	return result, nil
}
