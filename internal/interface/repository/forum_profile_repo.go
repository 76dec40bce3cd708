package repository

import (
	"context"
	"fmt"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoForumProfileRepository implements ForumProfileRepository
type MongoForumProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoForumProfileRepository creates a new forum profile repository
func NewMongoForumProfileRepository(db *mongo.Database) repository.ForumProfileRepository {
	collection := db.Collection("forum_profiles")

	// Create unique index on nickName
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"nickName": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoForumProfileRepository{
		collection: collection,
	}
}

// FindAll returns every stored profile in insertion order
func (r *MongoForumProfileRepository) FindAll(ctx context.Context) ([]entity.ForumProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find forum profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []entity.ForumProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode forum profiles: %w", err)
	}
	return profiles, nil
}

// UpsertMany replaces stored profiles by nickname, inserting new ones
func (r *MongoForumProfileRepository) UpsertMany(ctx context.Context, profiles []entity.ForumProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(profiles))
	for _, profile := range profiles {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"nickName": profile.NickName}).
			SetReplacement(profile).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(true)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to upsert forum profiles: %w", err)
	}
	return nil
}
