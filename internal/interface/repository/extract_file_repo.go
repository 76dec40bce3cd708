package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
)

// FileExtractRepository loads extract files from a local directory
type FileExtractRepository struct {
	dir       string
	router    usecase.SourceRouter
	fetcher   repository.ExtractFetcher
	forumRepo repository.ForumProfileRepository
	logger    logger.Logger
}

// NewFileExtractRepository creates a new file extract repository.
// fetcher and forumRepo may be nil.
func NewFileExtractRepository(
	dir string,
	router usecase.SourceRouter,
	fetcher repository.ExtractFetcher,
	forumRepo repository.ForumProfileRepository,
	logger logger.Logger,
) *FileExtractRepository {
	return &FileExtractRepository{
		dir:       dir,
		router:    router,
		fetcher:   fetcher,
		forumRepo: forumRepo,
		logger:    logger,
	}
}

// LoadSnapshot reads every recognised file in the directory. When a forum
// profile store is configured, loaded profiles are written to it, and the store
// is used instead when no forum file is present.
func (r *FileExtractRepository) LoadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	if r.fetcher != nil {
		files, err := r.fetcher.Fetch(ctx, r.dir)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch extracts: %w", err)
		}
		r.logger.Info("Fetched remote extracts", "count", len(files))
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extract dir: %w", err)
	}

	snapshot := &entity.Snapshot{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		handler := r.router.GetHandler(e.Name())
		if handler == nil {
			r.logger.Debug("No handler found for file", "file", e.Name())
			continue
		}
		if err := r.loadFile(ctx, handler, filepath.Join(r.dir, e.Name()), snapshot); err != nil {
			return nil, err
		}
		r.logger.Info("Loaded extract", "file", e.Name(), "source", handler.Source())
	}

	if r.forumRepo != nil {
		if err := r.syncForum(ctx, snapshot); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}

func (r *FileExtractRepository) loadFile(ctx context.Context, handler usecase.ExtractHandler, path string, snapshot *entity.Snapshot) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := handler.Load(ctx, f, snapshot); err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (r *FileExtractRepository) syncForum(ctx context.Context, snapshot *entity.Snapshot) error {
	if len(snapshot.Forum) > 0 {
		if err := r.forumRepo.UpsertMany(ctx, snapshot.Forum); err != nil {
			return err
		}
		r.logger.Info("Stored forum profiles", "count", len(snapshot.Forum))
		return nil
	}
	profiles, err := r.forumRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	snapshot.Forum = profiles
	r.logger.Info("Loaded forum profiles from store", "count", len(profiles))
	return nil
}
