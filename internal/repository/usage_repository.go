// internal/repository/usage_repository.go
package repository

import (
	"context"
	"time"

	"imagify-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type usageRepository struct {
	collection *mongo.Collection
}

func NewUsageRepository(collection *mongo.Collection) UsageRepository {
	return &usageRepository{
		collection: collection,
	}
}

func (r *usageRepository) CreateRecord(ctx context.Context, record *models.GenerationRecord) error {
	stampRecord(record)

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *usageRepository) GetUserHistory(ctx context.Context, userID string, limit int) ([]models.GenerationRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.GenerationRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// stampRecord assigns the id and creation time shared by both stores.
func stampRecord(record *models.GenerationRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
}
