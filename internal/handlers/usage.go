// internal/handlers/usage.go
package handlers

import (
	"net/http"
	"strconv"

	"imagify-backend/internal/middleware"
	"imagify-backend/internal/models"
	"imagify-backend/internal/services"
	apperrors "imagify-backend/pkg/errors"
	"imagify-backend/pkg/utils"
)

type UsageHandler struct {
	usageService services.UsageService
}

func NewUsageHandler(usageService services.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

func (h *UsageHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(models.MessageMissingDetails))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse("limit must be a number"))
			return
		}
		limit = parsed
	}

	response, err := h.usageService.GetUserHistory(r.Context(), userID, limit)
	if err != nil {
		utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(apperrors.GetMessage(err)))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}

// requestUserID prefers the id from a verified token over the query string.
func requestUserID(r *http.Request) string {
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return userID
	}
	return r.URL.Query().Get("userId")
}
