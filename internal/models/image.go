// internal/models/image.go
package models

const (
	MessageMissingDetails  = "Missing Details"
	MessageNoCreditBalance = "No Credit Balance"
	MessageImageGenerated  = "Image Generated"
)

// Where the returned image came from.
const (
	ImageSourceClipDrop    = "clipdrop"
	ImageSourcePlaceholder = "placeholder"
)

type GenerateImageRequest struct {
	UserID string `json:"userId"`
	Prompt string `json:"prompt"`
}

// GenerateImageResponse is the body of every generate-image reply. Business
// failures keep Success false; CreditBalance is set on success and on the
// balance check failure.
type GenerateImageResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ResultImage   string `json:"resultImage,omitempty"`
	CreditBalance *int   `json:"creditBalance,omitempty"`
}
