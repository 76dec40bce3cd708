package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/logger"
)

type stubExtractRepo struct {
	snapshot *entity.Snapshot
	err      error
	block    chan struct{}
}

func (s *stubExtractRepo) LoadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	if s.block != nil {
		<-s.block
	}
	return s.snapshot, s.err
}

type recordingPublisher struct {
	published []*entity.FusionResult
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, result *entity.FusionResult) error {
	p.published = append(p.published, result)
	return p.err
}

type recordingExporter struct {
	exported int
}

func (e *recordingExporter) Export(ctx context.Context, result *entity.FusionResult) (string, error) {
	e.exported++
	return "s3://bucket/" + result.RunID + ".json", nil
}

func TestFusionOrchestrator_RunOnce(t *testing.T) {
	store := NewResultStore()
	publisher := &recordingPublisher{err: errors.New("visualization down")}
	exporter := &recordingExporter{}
	o := NewFusionOrchestrator(
		&stubExtractRepo{snapshot: testSnapshot()},
		NewFusionProcessor(nil, logger.NewNop(), nil, 1),
		store, publisher, exporter, logger.NewNop(),
	)

	result, err := o.RunOnce(context.Background())
	require.NoError(t, err)

	latest, _, ok := store.Latest()
	require.True(t, ok)
	assert.Same(t, result, latest)
	assert.Len(t, publisher.published, 1)
	assert.Equal(t, 1, exporter.exported)
}

func TestFusionOrchestrator_LoadFailureKeepsPreviousResult(t *testing.T) {
	store := NewResultStore()
	previous := &entity.FusionResult{RunID: "previous"}
	store.Set(previous)

	o := NewFusionOrchestrator(
		&stubExtractRepo{err: entity.ErrMissingColumn},
		NewFusionProcessor(nil, logger.NewNop(), nil, 1),
		store, nil, nil, logger.NewNop(),
	)

	_, err := o.RunOnce(context.Background())
	assert.ErrorIs(t, err, entity.ErrMalformedInput)

	latest, _, _ := store.Latest()
	assert.Same(t, previous, latest)
}

func TestFusionOrchestrator_RejectsOverlappingRuns(t *testing.T) {
	repo := &stubExtractRepo{snapshot: testSnapshot(), block: make(chan struct{})}
	o := NewFusionOrchestrator(repo, NewFusionProcessor(nil, logger.NewNop(), nil, 1), NewResultStore(), nil, nil, logger.NewNop())

	done := make(chan error)
	go func() {
		_, err := o.RunOnce(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return o.running.Load() }, time.Second, time.Millisecond)
	_, err := o.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(repo.block)
	assert.NoError(t, <-done)
}
