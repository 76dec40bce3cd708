package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paxfusion-service/pkg/logger"
)

// ConnectAttempts is how many times a store connection is tried at startup
const ConnectAttempts = 5

// NewMongoClient connects to MongoDB and pings it, retrying while the server comes up
func NewMongoClient(ctx context.Context, uri, username, password string, log logger.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if username != "" && password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: username,
			Password: password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return client.Ping(pingCtx, nil)
		},
		retry.Context(ctx),
		retry.Attempts(ConnectAttempts),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("Retrying MongoDB ping", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// GetDatabase gets a database from the client
func GetDatabase(client *mongo.Client, name string) *mongo.Database {
	return client.Database(name)
}
