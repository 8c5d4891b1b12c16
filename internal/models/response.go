// internal/models/response.go
package models

// StatusResponse is the failure envelope shared by the JSON endpoints. It
// is always sent with HTTP 200.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewFailureResponse(message string) *StatusResponse {
	return &StatusResponse{Success: false, Message: message}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
