// internal/database/indexes.go
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func (m *MongoDB) CreateIndexes(ctx context.Context) error {
	m.logger.Debug("Creating database indexes")

	if err := m.createUsersIndexes(ctx, m.GetCollection(UsersCollection)); err != nil {
		return err
	}

	if err := m.createGenerationsIndexes(ctx, m.GetCollection(GenerationsCollection)); err != nil {
		return err
	}

	m.logger.Info("Database indexes created")
	return nil
}

func (m *MongoDB) createUsersIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}

	m.logger.Debug("Index ready", zap.String("collection", UsersCollection))
	return nil
}

// History is always read per user, newest first.
func (m *MongoDB) createGenerationsIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}

	m.logger.Debug("Index ready", zap.String("collection", GenerationsCollection))
	return nil
}
