// internal/repository/user_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"imagify-backend/internal/models"
	apperrors "imagify-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) UserRepository {
	return &userRepository{
		collection: collection,
	}
}

// userKeyFilter matches a document whose _id is either the ObjectID spelled
// by id or the literal string id.
func userKeyFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// userDocument maps a hex id back to an ObjectID so keys this store issues
// keep their native type.
func userDocument(user *models.User) bson.M {
	var id interface{} = user.ID
	if oid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
		id = oid
	}
	doc := bson.M{
		"_id":           id,
		"name":          user.Name,
		"creditBalance": user.CreditBalance,
		"createdAt":     user.CreatedAt,
		"updatedAt":     user.UpdatedAt,
	}
	if user.Email != "" {
		doc["email"] = user.Email
	}
	return doc
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	stampUser(user)

	_, err := r.collection.InsertOne(ctx, userDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.NewUserAlreadyExistsError()
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, apperrors.NewUserNotFoundError()
	}
	return r.findOne(ctx, userKeyFilter(id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.NewUserNotFoundError()
	}
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUserNotFoundError()
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateCreditBalance(ctx context.Context, id string, balance int) (*models.User, error) {
	if id == "" {
		return nil, apperrors.NewUserNotFoundError()
	}

	update := bson.M{"$set": bson.M{
		"creditBalance": balance,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, userKeyFilter(id), update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUserNotFoundError()
		}
		return nil, err
	}
	return &user, nil
}

func stampUser(user *models.User) {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
}
