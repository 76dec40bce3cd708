package repository

import (
	"context"

	"paxfusion-service/internal/domain/entity"
)

// ResultPublisher hands a finished fusion result to a downstream consumer
type ResultPublisher interface {
	Publish(ctx context.Context, result *entity.FusionResult) error
}

// SnapshotExporter archives a finished fusion result
type SnapshotExporter interface {
	Export(ctx context.Context, result *entity.FusionResult) (string, error)
}
