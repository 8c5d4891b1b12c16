// internal/services/clipdrop_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"imagify-backend/internal/config"
	apperrors "imagify-backend/pkg/errors"

	"go.uber.org/zap"
)

const (
	// Upper bound on how much of an error body ends up in the returned error.
	maxErrorBodyExcerpt = 512
	maxImageBytes       = 20 << 20
)

// ImageGenerationService turns a text prompt into raw image bytes.
type ImageGenerationService interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type clipDropService struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	maxBytes   int64
	logger     *zap.Logger
}

// NewClipDropService builds the ClipDrop text-to-image client. Each call makes
// a single attempt bounded by cfg.Timeout.
func NewClipDropService(cfg config.ClipDropConfig, logger *zap.Logger) ImageGenerationService {
	return &clipDropService{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiURL:   cfg.APIURL,
		apiKey:   cfg.APIKey,
		maxBytes: maxImageBytes,
		logger:   logger,
	}
}

func (s *clipDropService) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, apperrors.NewExternalAPIError(http.StatusServiceUnavailable, "clipdrop api key is not configured")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("failed to write prompt field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("x-api-key", s.apiKey)

	s.logger.Debug("Calling ClipDrop API",
		zap.String("url", s.apiURL),
		zap.Int("prompt_length", len(prompt)))

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call clipdrop API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read clipdrop response: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.NewExternalAPIError(http.StatusBadGateway,
			fmt.Sprintf("clipdrop response exceeds %d bytes", s.maxBytes))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := data
		if len(excerpt) > maxErrorBodyExcerpt {
			excerpt = excerpt[:maxErrorBodyExcerpt]
		}
		return nil, apperrors.NewExternalAPIError(
			resp.StatusCode,
			fmt.Sprintf("clipdrop returned status %d", resp.StatusCode),
			string(excerpt),
		)
	}

	if len(data) == 0 {
		return nil, apperrors.NewExternalAPIError(http.StatusBadGateway, "clipdrop returned an empty image")
	}

	s.logger.Debug("ClipDrop response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.String("remaining_credits", resp.Header.Get("x-remaining-credits")))

	return data, nil
}
