// internal/services/usage_service.go
package services

import (
	"context"

	"imagify-backend/internal/models"
	"imagify-backend/internal/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type UsageService interface {
	GetUserHistory(ctx context.Context, userID string, limit int) (*models.GenerationHistoryResponse, error)
}

type usageService struct {
	usageRepo repository.UsageRepository
}

func NewUsageService(usageRepo repository.UsageRepository) UsageService {
	return &usageService{
		usageRepo: usageRepo,
	}
}

// GetUserHistory returns the newest records first. limit falls back to
// DefaultHistoryLimit when not positive and is capped at MaxHistoryLimit.
func (s *usageService) GetUserHistory(ctx context.Context, userID string, limit int) (*models.GenerationHistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.usageRepo.GetUserHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return &models.GenerationHistoryResponse{
		Success: true,
		History: records,
	}, nil
}
