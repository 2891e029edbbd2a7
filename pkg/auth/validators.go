package auth

import "github.com/libooktrac/libooktrac/pkg/models"

// LoginPayload represents the login request body.
type LoginPayload struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

// MeResponse represents the current member response.
type MeResponse struct {
	ID       string              `json:"user_id"`
	Username string              `json:"username"`
	Email    string              `json:"email"`
	Category models.UserCategory `json:"user_category"`
}
