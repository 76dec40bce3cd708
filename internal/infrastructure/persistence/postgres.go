package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"paxfusion-service/pkg/logger"
)

// NewPostgresDB opens the airline and airport directory database
func NewPostgresDB(ctx context.Context, uri string, log logger.Logger) (*gorm.DB, error) {
	db, err := retry.DoWithData(
		func() (*gorm.DB, error) {
			return gorm.Open(postgres.Open(uri), &gorm.Config{
				Logger: gormlogger.Default.LogMode(gormlogger.Silent),
			})
		},
		retry.Context(ctx),
		retry.Attempts(ConnectAttempts),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("Retrying PostgreSQL connection", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// ClosePostgresDB releases the underlying connection pool
func ClosePostgresDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
