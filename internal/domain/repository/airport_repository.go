package repository

import (
	"context"

	"paxfusion-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport directory lookups
type AirportRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error)
}
