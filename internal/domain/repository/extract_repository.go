package repository

import (
	"context"

	"paxfusion-service/internal/domain/entity"
)

// ExtractRepository loads one snapshot of all source extracts
type ExtractRepository interface {
	LoadSnapshot(ctx context.Context) (*entity.Snapshot, error)
}

// ExtractFetcher mirrors remote extract files into a local directory
type ExtractFetcher interface {
	Fetch(ctx context.Context, dir string) ([]string, error)
}
