package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airportlist GORM model for database mapping
type Airportlist struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityCode    string         `gorm:"column:citycode"`
	CityName    string         `gorm:"column:cityname"`
	TzName      string         `gorm:"column:tzname"`
	Latitude    *float64       `gorm:"column:latitude"`
	Longitude   *float64       `gorm:"column:longitude"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Airportlist) TableName() string {
	return "m_timezone_list"
}

// GetByAirportCode finds an airport by its IATA code
func (r *GormAirportRepository) GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airportlist
	result := r.db.WithContext(ctx).Where("airportcode = ?", code).First(&airport)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("airport %s: %w", code, entity.ErrNotFound)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get airport %s: %w", code, result.Error)
	}

	return &entity.Airport{
		ID:          airport.ID,
		AirportCode: airport.AirportCode,
		AirportName: airport.AirportName,
		CityCode:    airport.CityCode,
		CityName:    airport.CityName,
		TzName:      airport.TzName,
		Latitude:    airport.Latitude,
		Longitude:   airport.Longitude,
	}, nil
}
