// internal/handlers/user.go
package handlers

import (
	"net/http"

	"imagify-backend/internal/models"
	"imagify-backend/internal/services"
	apperrors "imagify-backend/pkg/errors"
	"imagify-backend/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	response, err := h.userService.GetCredits(r.Context(), requestUserID(r))
	if err != nil {
		utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(apperrors.GetMessage(err)))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}
