// internal/repository/interfaces.go
package repository

import (
	"context"

	"imagify-backend/internal/models"
)

// UserRepository is the user store. Lookups return apperrors USER_NOT_FOUND
// when no record matches. Ids are opaque; callers pass back whatever the
// store returned in User.ID.
type UserRepository interface {
	// Create assigns an id when user.ID is empty and fills the timestamps.
	// A taken email yields USER_ALREADY_EXISTS.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateCreditBalance overwrites the balance and returns the record as
	// stored after the update.
	UpdateCreditBalance(ctx context.Context, id string, balance int) (*models.User, error)
}

type UsageRepository interface {
	CreateRecord(ctx context.Context, record *models.GenerationRecord) error
	GetUserHistory(ctx context.Context, userID string, limit int) ([]models.GenerationRecord, error)
}
