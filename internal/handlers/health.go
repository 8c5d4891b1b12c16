// internal/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"imagify-backend/internal/models"
	"imagify-backend/pkg/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.SendJSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status:  "unhealthy",
			Message: "store unreachable: " + err.Error(),
		})
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "Server is running and connected to the store",
	})
}
