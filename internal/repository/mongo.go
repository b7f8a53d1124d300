package repository

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore is the schema-less key-value sink for extracted metadata.
type DocumentStore interface {
	SaveMetadata(ctx context.Context, metadata map[string]any) error
	GetMetadata(ctx context.Context, fileName string) (map[string]any, error)
}

type mongoStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

const (
	mongoDatabase   = "document_db"
	mongoCollection = "metadata"
)

// NewMongoStore connects to MongoDB and returns the store plus a disconnect
// func for shutdown.
func NewMongoStore(ctx context.Context, uri string, logger *slog.Logger) (DocumentStore, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to mongodb", "uri", uri)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	store := &mongoStore{
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
		logger: logger,
	}
	return store, client.Disconnect, nil
}

func (s *mongoStore) SaveMetadata(ctx context.Context, metadata map[string]any) error {
	if _, err := s.coll.InsertOne(ctx, bson.M(metadata)); err != nil {
		s.logger.Error("failed to insert metadata document", "error", err)
		return err
	}
	return nil
}

func (s *mongoStore) GetMetadata(ctx context.Context, fileName string) (map[string]any, error) {
	var out bson.M
	if err := s.coll.FindOne(ctx, bson.M{"file_name": fileName}).Decode(&out); err != nil {
		return nil, err
	}
	return map[string]any(out), nil
}
