package models

import "time"

// Session grants API access for one wallet address, identified by an opaque
// token. There is nothing to decode inside the token.
type Session struct {
	ID        string    `json:"-"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginRequest struct {
	Address string `json:"address" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionResponse struct {
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
