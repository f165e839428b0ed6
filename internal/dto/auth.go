package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT. The registered ID claim
// doubles as the blacklist key for refresh tokens.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for creating a new account.
type RegisterRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResponse is a generic detail message.
type MessageResponse struct {
	Detail string `json:"detail"`
}

// LoginResponse is returned on successful login alongside the auth cookies.
type LoginResponse struct {
	Detail string       `json:"detail"`
	User   UserResponse `json:"user"`
}
