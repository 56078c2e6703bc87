package dto

import "time"

// RegisterRequest opens an account together with its login credential.
type RegisterRequest struct {
	HolderName string `json:"holderName" binding:"required"`
	Username   string `json:"username" binding:"required,alphanum,min=3,max=64"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries credentials and, when enabled, a one-time code.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	OTP      string `json:"otp"`
}

// LoginResponse defines the structure for the login API response
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	AccountID string    `json:"accountID"`
}
