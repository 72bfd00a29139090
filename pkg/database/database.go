package database

import (
	"context"
	"fmt"

	"github.com/paramreg/registry/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Store is an open connection to the configured backend. Exactly one of
// Gorm and Mongo is set.
type Store struct {
	Driver string
	Gorm   *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// Open connects to the backend selected by DB_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	store := &Store{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, db, err := NewMongoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store.mongoClient = client
		store.Mongo = db
	case config.DriverPostgres:
		db, err := NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		store.Gorm = db
	case config.DriverSQLite:
		db, err := NewSQLiteDB(cfg.Database.SQLitePath, cfg.App.Environment)
		if err != nil {
			return nil, err
		}
		store.Gorm = db
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return store, nil
}

// Migrate brings the schema (or the Mongo indexes) up to date.
func (s *Store) Migrate(ctx context.Context) error {
	if s.Mongo != nil {
		return EnsureMongoIndexes(ctx, s.Mongo)
	}
	return AutoMigrate(s.Gorm.WithContext(ctx))
}

// Ping checks that the backend answers.
func (s *Store) Ping(ctx context.Context) error {
	if s.mongoClient != nil {
		return s.mongoClient.Ping(ctx, readpref.Primary())
	}
	sqlDB, err := s.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.mongoClient != nil {
		return s.mongoClient.Disconnect(ctx)
	}
	return CloseDB(s.Gorm)
}
