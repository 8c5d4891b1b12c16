// internal/models/credits.go
package models

type UserSummary struct {
	Name string `json:"name"`
}

type CreditsResponse struct {
	Success bool        `json:"success"`
	Credits int         `json:"credits"`
	User    UserSummary `json:"user"`
}
