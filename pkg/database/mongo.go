package database

import (
	"context"
	"fmt"

	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDB connects to MongoDB and returns the configured database.
func NewMongoDB(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Database.MongoURI).
		SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns)).
		SetAppName(cfg.App.Name)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, client.Database(cfg.Database.Name), nil
}

// activeOnly limits an index to documents that are not soft-deleted.
var activeOnly = bson.M{"delete_at": bson.M{"$type": "null"}}

// EnsureMongoIndexes creates the uniqueness and lookup indexes. It is
// idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	categories := db.Collection(model.Category{}.TableName())
	_, err := categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().
				SetName("idx_categories_slug_active").
				SetUnique(true).
				SetPartialFilterExpression(activeOnly),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
			Options: options.Index().
				SetName("idx_categories_name_active").
				SetUnique(true).
				SetPartialFilterExpression(activeOnly),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_categories_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	parameters := db.Collection(model.Parameter{}.TableName())
	_, err = parameters.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_parameters_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_parameters_category_created_at"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_parameters_name"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create parameter indexes: %w", err)
	}

	return nil
}
