package repository

import (
	"context"

	"paxfusion-service/internal/domain/entity"
)

// ForumProfileRepository defines the interface for the forum profile store
type ForumProfileRepository interface {
	FindAll(ctx context.Context) ([]entity.ForumProfile, error)
	UpsertMany(ctx context.Context, profiles []entity.ForumProfile) error
}
