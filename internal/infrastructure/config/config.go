// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"paxfusion-service/internal/domain/entity"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// Server
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// Extracts
	ExtractDir      string `envconfig:"EXTRACT_DIR" default:"./data"`
	ReservationFile string `envconfig:"RESERVATION_FILE" default:"Sirena-export"`
	BoardingFile    string `envconfig:"BOARDING_FILE" default:"BoardingData"`
	ExchangeFile    string `envconfig:"EXCHANGE_FILE" default:"PointzAggregator"`
	ClubFile        string `envconfig:"CLUB_FILE" default:"SkyTeam"`
	ForumFile       string `envconfig:"FORUM_FILE" default:"FrequentFlyerForum"`

	// Fusion
	SuspiciousRatio float64 `envconfig:"SUSPICIOUS_RATIO" default:"1.0"`
	FusionSchedule  string  `envconfig:"FUSION_SCHEDULE" default:"@hourly"`

	// PostgreSQL airline and airport directory
	PostgresURI string `envconfig:"POSTGRES_URI"`

	// MongoDB forum profile store
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDB       string `envconfig:"MONGO_DB" default:"paxfusion"`
	MongoUser     string `envconfig:"MONGO_USER"`
	MongoPassword string `envconfig:"MONGO_PASSWORD"`

	// Google Drive extract folder
	DriveClientID     string `envconfig:"DRIVE_CLIENT_ID"`
	DriveClientSecret string `envconfig:"DRIVE_CLIENT_SECRET"`
	DriveRefreshToken string `envconfig:"DRIVE_REFRESH_TOKEN"`
	DriveFolderID     string `envconfig:"DRIVE_FOLDER_ID"`

	// S3 snapshot export
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3Prefix    string `envconfig:"S3_PREFIX" default:"fusion"`

	// Visualization hand-off
	VisualizationURL   string `envconfig:"VISUALIZATION_URL"`
	VisualizationToken string `envconfig:"VISUALIZATION_TOKEN"`

	// Batch metrics dump
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// LoadConfig loads configuration from the .env file, if any, and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.SuspiciousRatio <= 0 {
		return nil, fmt.Errorf("SUSPICIOUS_RATIO must be positive, got %v", c.SuspiciousRatio)
	}
	return &c, nil
}

// ExtractPatterns maps each extract to the file name fragments that identify it
func (c *Config) ExtractPatterns() map[entity.Source][]string {
	return map[entity.Source][]string{
		entity.SourceReservation: {c.ReservationFile},
		entity.SourceBoarding:    {c.BoardingFile},
		entity.SourceExchange:    {c.ExchangeFile},
		entity.SourceClub:        {c.ClubFile},
		entity.SourceForum:       {c.ForumFile},
	}
}

// DriveEnabled reports whether remote extracts should be fetched
func (c *Config) DriveEnabled() bool {
	return c.DriveFolderID != "" && c.DriveRefreshToken != ""
}

// S3Enabled reports whether results should be exported
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}
