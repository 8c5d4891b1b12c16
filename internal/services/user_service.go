// internal/services/user_service.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"imagify-backend/internal/models"
	"imagify-backend/internal/repository"
	apperrors "imagify-backend/pkg/errors"
)

type UserService interface {
	GetCredits(ctx context.Context, userID string) (*models.CreditsResponse, error)
	// EnsureUser returns the user registered under email, creating it with
	// credits when absent. created reports whether a record was written.
	EnsureUser(ctx context.Context, name, email string, credits int) (user *models.User, created bool, err error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetCredits(ctx context.Context, userID string) (*models.CreditsResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CreditsResponse{
		Success: true,
		Credits: user.CreditBalance,
		User:    models.UserSummary{Name: user.Name},
	}, nil
}

func (s *userService) EnsureUser(ctx context.Context, name, email string, credits int) (*models.User, bool, error) {
	if email == "" {
		return nil, false, apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !apperrors.IsErrorType(err, apperrors.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &models.User{
		Name:          name,
		Email:         email,
		CreditBalance: credits,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}
