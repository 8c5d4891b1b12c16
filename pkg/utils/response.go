// pkg/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	apperrors "imagify-backend/pkg/errors"
)

// SendJSONResponse sends a JSON response with proper error handling
func SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Marshal first so an encoding failure can still produce a valid body
	jsonData, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("Error marshaling JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "failed to encode response",
		})
		return
	}

	w.WriteHeader(statusCode)

	if _, writeErr := w.Write(jsonData); writeErr != nil {
		zap.L().Warn("Error writing response", zap.Error(writeErr))
		return
	}

	zap.L().Debug("Response sent",
		zap.Int("status", statusCode),
		zap.Int("size", len(jsonData)))
}

// DecodeJSONBody decodes the request body into dst.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "request body is empty")
	}
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "invalid JSON format", err.Error())
	}
	return nil
}
