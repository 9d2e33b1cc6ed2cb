package models

import "time"

// User is a portal profile keyed by wallet address. It is created lazily on
// the first profile fetch for an unseen address.
type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Name          *string   `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

// UpdateProfileRequest is the PATCH /profile body. Name is the only mutable
// profile field.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserResponse wraps a user the way the API returns it.
type UserResponse struct {
	User *User `json:"user"`
}

// ErrorResponse documents the error body shape for swagger.
type ErrorResponse struct {
	Error string `json:"error"`
}
