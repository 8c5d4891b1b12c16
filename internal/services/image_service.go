// internal/services/image_service.go
package services

import (
	"context"
	"encoding/base64"
	"time"

	"imagify-backend/internal/models"
	"imagify-backend/internal/repository"
	apperrors "imagify-backend/pkg/errors"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	pngDataURIPrefix = "data:image/png;base64,"

	creditsPerImage       = 1
	maxRecordedPromptSize = 200
)

// ImageService charges a user one credit per produced image. Business
// failures come back as a response with Success false; the error return is
// reserved for store failures.
type ImageService interface {
	GenerateImage(ctx context.Context, req *models.GenerateImageRequest) (*models.GenerateImageResponse, error)
}

type imageService struct {
	userRepo    repository.UserRepository
	usageRepo   repository.UsageRepository
	generator   ImageGenerationService
	placeholder *PlaceholderRenderer
	logger      *zap.Logger
}

// NewImageService wires the generate-image flow. usageRepo may be nil, in
// which case outcomes are not recorded.
func NewImageService(
	userRepo repository.UserRepository,
	usageRepo repository.UsageRepository,
	generator ImageGenerationService,
	placeholder *PlaceholderRenderer,
	logger *zap.Logger,
) ImageService {
	if placeholder == nil {
		placeholder = NewPlaceholderRenderer(nil)
	}
	return &imageService{
		userRepo:    userRepo,
		usageRepo:   usageRepo,
		generator:   generator,
		placeholder: placeholder,
		logger:      logger,
	}
}

func (s *imageService) GenerateImage(ctx context.Context, req *models.GenerateImageRequest) (*models.GenerateImageResponse, error) {
	startTime := time.Now()
	// Once started the request runs to completion, even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(
		zap.String("user_id", req.UserID),
		zap.String("request_id", middleware.GetReqID(ctx)),
	)

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil && !apperrors.IsErrorType(err, apperrors.ErrUserNotFound) {
		log.Error("Image generation failed", zap.String("stage", "user_lookup"), zap.Error(err))
		s.trackUsage(ctx, req, "", false, apperrors.GetMessage(err), 0, startTime)
		return nil, err
	}

	if user == nil || req.Prompt == "" {
		log.Info("Missing details",
			zap.Bool("user_found", user != nil),
			zap.Bool("prompt_present", req.Prompt != ""))
		s.trackUsage(ctx, req, "", false, models.MessageMissingDetails, 0, startTime)
		return &models.GenerateImageResponse{
			Success: false,
			Message: models.MessageMissingDetails,
		}, nil
	}

	if user.CreditBalance <= 0 {
		log.Info("No credit balance", zap.Int("credit_balance", user.CreditBalance))
		s.trackUsage(ctx, req, "", false, models.MessageNoCreditBalance, 0, startTime)
		balance := user.CreditBalance
		return &models.GenerateImageResponse{
			Success:       false,
			Message:       models.MessageNoCreditBalance,
			CreditBalance: &balance,
		}, nil
	}

	resultImage, source := s.acquireImage(ctx, log, req.Prompt)

	// Charged whether the image is real or a placeholder.
	updated, err := s.userRepo.UpdateCreditBalance(ctx, user.ID, user.CreditBalance-creditsPerImage)
	if err != nil {
		log.Error("Image generation failed", zap.String("stage", "credit_deduction"), zap.Error(err))
		s.trackUsage(ctx, req, source, false, apperrors.GetMessage(err), 0, startTime)
		return nil, err
	}

	log.Info("Image generated",
		zap.String("source", source),
		zap.Int("credit_balance", updated.CreditBalance),
		zap.Duration("elapsed", time.Since(startTime)))
	s.trackUsage(ctx, req, source, true, models.MessageImageGenerated, creditsPerImage, startTime)

	balance := updated.CreditBalance
	return &models.GenerateImageResponse{
		Success:       true,
		Message:       models.MessageImageGenerated,
		ResultImage:   resultImage,
		CreditBalance: &balance,
	}, nil
}

// acquireImage makes the single remote attempt and substitutes the
// placeholder on any failure.
func (s *imageService) acquireImage(ctx context.Context, log *zap.Logger, prompt string) (string, string) {
	data, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Warn("ClipDrop generation failed, using placeholder",
			zap.Int("status", apperrors.GetStatusCode(err)),
			zap.Error(err))
		return s.placeholder.Render(prompt), models.ImageSourcePlaceholder
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(data), models.ImageSourceClipDrop
}

func (s *imageService) trackUsage(ctx context.Context, req *models.GenerateImageRequest, source string, success bool, message string, credits int, startTime time.Time) {
	if s.usageRepo == nil {
		return
	}

	record := &models.GenerationRecord{
		UserID:      req.UserID,
		Prompt:      truncatePrompt(req.Prompt, maxRecordedPromptSize),
		Source:      source,
		Success:     success,
		Message:     message,
		CreditsUsed: credits,
		RequestID:   middleware.GetReqID(ctx),
		ProcessTime: time.Since(startTime).Milliseconds(),
	}

	if err := s.usageRepo.CreateRecord(ctx, record); err != nil {
		s.logger.Warn("Failed to record generation",
			zap.String("user_id", req.UserID),
			zap.Error(err))
	}
}
