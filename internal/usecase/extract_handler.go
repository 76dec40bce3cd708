package usecase

import (
	"context"
	"io"

	"paxfusion-service/internal/domain/entity"
)

// ExtractHandler defines the interface for extract file handlers
type ExtractHandler interface {
	// CanHandle determines if this handler can load the given file
	CanHandle(filename string) bool

	// Source reports which extract the handler produces
	Source() entity.Source

	// Load parses the file and appends its rows to the snapshot
	Load(ctx context.Context, r io.Reader, snapshot *entity.Snapshot) error
}

// SourceRouter routes extract files to the appropriate handler based on file name
type SourceRouter interface {
	// Register registers a handler for specific file name patterns
	Register(handler ExtractHandler)

	// GetHandler returns the appropriate handler for a given file name
	GetHandler(filename string) ExtractHandler
}
