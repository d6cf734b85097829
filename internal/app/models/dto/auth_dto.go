package dto

import "github.com/lams-capstone/lams-admin/internal/app/models"

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int          `json:"expiresIn"`
	User        *models.User `json:"user"`
}
