// internal/handlers/image.go
package handlers

import (
	"net/http"

	"imagify-backend/internal/middleware"
	"imagify-backend/internal/models"
	"imagify-backend/internal/services"
	apperrors "imagify-backend/pkg/errors"
	"imagify-backend/pkg/utils"
)

type ImageHandler struct {
	imageService services.ImageService
}

func NewImageHandler(imageService services.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// GenerateImage always answers HTTP 200; success is carried in the body.
func (h *ImageHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateImageRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(apperrors.GetMessage(err)))
		return
	}

	// An authenticated caller can only spend their own credits
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		req.UserID = userID
	}

	response, err := h.imageService.GenerateImage(r.Context(), &req)
	if err != nil {
		utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(apperrors.GetMessage(err)))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}
